package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
	"lendhub.backend/internal/interfaces/http/response"
	"lendhub.backend/internal/usecases"
)

// LoanHandler handles loan request endpoints
type LoanHandler struct {
	usecase  *usecases.LoanUsecase
	userRepo domainRepos.UserRepository
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(usecase *usecases.LoanUsecase, userRepo domainRepos.UserRepository) *LoanHandler {
	return &LoanHandler{usecase: usecase, userRepo: userRepo}
}

// Create opens a new loan request for the acting borrower
// POST /api/v1/loans
func (h *LoanHandler) Create(c *gin.Context) {
	actor, err := resolveActor(c, h.userRepo)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreateLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.usecase.Create(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListOpen returns the open loan pool
// GET /api/v1/loans/open
func (h *LoanHandler) ListOpen(c *gin.Context) {
	actor, err := resolveActor(c, h.userRepo)
	if err != nil {
		response.Error(c, err)
		return
	}

	loans, err := h.usecase.ListOpen(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

// Get returns a single loan request
// GET /api/v1/loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
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

	loan, err := h.usecase.Get(c.Request.Context(), actor, loanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loan": loan})
}

// ExpressInterest claims an open loan for the acting lender
// POST /api/v1/loans/:id/interest
func (h *LoanHandler) ExpressInterest(c *gin.Context) {
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

	loan, err := h.usecase.ExpressInterest(c.Request.Context(), actor, loanID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loan": loan})
}

// Respond records an accept or reject from one side of a match
// POST /api/v1/loans/:id/respond
func (h *LoanHandler) Respond(c *gin.Context) {
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

	var input entities.RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	loan, err := h.usecase.Respond(c.Request.Context(), actor, loanID, input.Action)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loan": loan})
}

// ListByBorrower returns a user's loans as borrower
// GET /api/v1/loans/borrower/:userId
func (h *LoanHandler) ListByBorrower(c *gin.Context) {
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

	loans, err := h.usecase.ListByBorrower(c.Request.Context(), actor, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}

// ListByLender returns a user's matched loans as lender
// GET /api/v1/loans/lender/:userId
func (h *LoanHandler) ListByLender(c *gin.Context) {
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

	loans, err := h.usecase.ListByLender(c.Request.Context(), actor, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"loans": loans})
}
