package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/internal/interface/middleware"
	"github.com/oksasatya/quiz-history-api/pkg/response"
)

type QuizHandler struct {
	Owner  *app.OwnershipService
	Query  *app.QueryService
	Logger *logrus.Logger
}

func NewQuizHandler(owner *app.OwnershipService, query *app.QueryService, logger *logrus.Logger) *QuizHandler {
	return &QuizHandler{Owner: owner, Query: query, Logger: logger}
}

type appendResultRequest struct {
	QuizTaken  string `json:"quiz_taken" binding:"required"`
	QuizAnswer string `json:"quiz_answer" binding:"required"`
}

// Get GET /api/quiz-sets/:id. A missing set is data: null.
func (h *QuizHandler) Get(c *gin.Context) {
	var uri idParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	qs, err := h.Query.QuizSet(c.Request.Context(), middleware.PrincipalFrom(c), uri.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, qs, "quiz set")
}

// Create POST /api/quiz-sets
func (h *QuizHandler) Create(c *gin.Context) {
	qs, err := h.Owner.CreateQuizSet(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, qs, "quiz set created")
}

// AppendResult POST /api/quiz-sets/:id/results
func (h *QuizHandler) AppendResult(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var uri idParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var req appendResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	qs, err := h.Owner.AppendQuizResult(c.Request.Context(), p, uri.ID, req.QuizTaken, req.QuizAnswer)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, qs, "quiz result added")
}

// Delete DELETE /api/quiz-sets/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if _, err := app.Require(p); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	var uri idParam
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	qs, err := h.Owner.DeleteQuizSet(c.Request.Context(), p, uri.ID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, qs, "quiz set removed")
}
