package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/internal/interface/middleware"
	"github.com/oksasatya/quiz-history-api/pkg/response"
)

type UserHandler struct {
	Session *app.SessionService
	Query   *app.QueryService
	Logger  *logrus.Logger
}

func NewUserHandler(session *app.SessionService, query *app.QueryService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Session: session, Query: query, Logger: logger}
}

// Only these fields are accepted; anything else is rejected by the decoder.
type updateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
}

// Me GET /api/me
func (h *UserHandler) Me(c *gin.Context) {
	res, err := h.Query.CurrentUser(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, currentUserView{userView: toUserView(res.User), QuizSets: res.QuizSets}, "current user")
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Session.UpdateProfile(c.Request.Context(), p, app.UpdateProfileInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserView(u), "profile updated")
}
