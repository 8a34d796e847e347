package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "team-hub.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, mapping domain sentinels to HTTP statuses.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyMember):
		return domainerrors.NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, domainerrors.ErrAlreadyExists), errors.Is(err, domainerrors.ErrConflict):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidCredentials), errors.Is(err, domainerrors.ErrUnauthorized), errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
