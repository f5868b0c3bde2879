package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/pkg/response"
	"github.com/oksasatya/quiz-history-api/pkg/validation"
)

// writeError maps application errors onto HTTP statuses.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, app.ErrUnauthenticated):
		response.Abort(c, http.StatusUnauthorized, "not logged in", "unauthenticated", nil)
	case errors.Is(err, app.ErrInvalidCredentials):
		response.Abort(c, http.StatusUnauthorized, "incorrect credentials", "invalid_credentials", nil)
	case errors.Is(err, app.ErrDuplicateAccount):
		response.Abort(c, http.StatusConflict, "email already registered", "duplicate_account", nil)
	case errors.Is(err, app.ErrUserNotFound):
		response.Abort(c, http.StatusNotFound, "user not found", "user_not_found", nil)
	case errors.Is(err, app.ErrInvalidPassword):
		response.Abort(c, http.StatusBadRequest, "invalid payload", "validation", map[string]string{"password": "must be 8 to 72 bytes long"})
	case errors.Is(err, app.ErrStorageNotConfigured):
		response.Abort(c, http.StatusServiceUnavailable, "audio storage unavailable", "storage_unavailable", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Abort(c, http.StatusInternalServerError, "internal error", "internal", nil)
	}
}

func badRequest(c *gin.Context, err error) {
	response.Abort(c, http.StatusBadRequest, "invalid payload", "validation", validation.ToDetails(err))
}

// idParam binds :id, which must be a UUID.
type idParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}
