package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
	"lendhub.backend/internal/interfaces/http/response"
	"lendhub.backend/internal/usecases"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	usecase  *usecases.AdminUsecase
	userRepo domainRepos.UserRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(usecase *usecases.AdminUsecase, userRepo domainRepos.UserRepository) *AdminHandler {
	return &AdminHandler{usecase: usecase, userRepo: userRepo}
}

// VerifyKYC marks a user's KYC as verified
// POST /api/v1/admin/kyc/:userId/verify
func (h *AdminHandler) VerifyKYC(c *gin.Context) {
	actor, err := resolveActor(c, h.userRepo)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	if err := h.usecase.VerifyKYC(c.Request.Context(), actor, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "KYC verified"})
}

// ListLoanRequests lists every loan request on the platform
// GET /api/v1/admin/requests
func (h *AdminHandler) ListLoanRequests(c *gin.Context) {
	actor, err := resolveActor(c, h.userRepo)
	if err != nil {
		response.Error(c, err)
		return
	}

	loans, err := h.usecase.ListLoanRequests(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

// ListUsers lists users with an optional ?search= filter
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, err := resolveActor(c, h.userRepo)
	if err != nil {
		response.Error(c, err)
		return
	}

	users, err := h.usecase.ListUsers(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// FlagForReview pulls a loan request into admin review
// PUT /api/v1/admin/requests/:id/review
func (h *AdminHandler) FlagForReview(c *gin.Context) {
	actor, err := resolveActor(c, h.userRepo)
	if err != nil {
		response.Error(c, err)
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid loan id"))
		return
	}

	loan, err := h.usecase.FlagForReview(c.Request.Context(), actor, loanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loan": loan})
}
