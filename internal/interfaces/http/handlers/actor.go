package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"lendhub.backend/internal/domain/entities"
	domainerrors "lendhub.backend/internal/domain/errors"
	domainRepos "lendhub.backend/internal/domain/repositories"
	"lendhub.backend/internal/interfaces/http/middleware"
)

// resolveActor loads the authenticated user behind the bearer token.
// The auth middleware guarantees a user ID in the context; a missing
// directory record still maps to 401, not 404, because the credential
// no longer names anyone.
func resolveActor(c *gin.Context, userRepo domainRepos.UserRepository) (*entities.User, error) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return nil, domainerrors.Unauthorized("unauthorized")
	}
	actor, err := userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("unknown user")
		}
		return nil, err
	}
	return actor, nil
}
