package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/quiz-history-api/internal/interface/http"
)

type QuizModule struct {
	Handler *handlers.QuizHandler
}

func NewQuizModule(h *handlers.QuizHandler) *QuizModule {
	return &QuizModule{Handler: h}
}

func (m *QuizModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/quiz-sets")
	g.POST("", m.Handler.Create)
	g.GET("/:id", m.Handler.Get)
	g.POST("/:id/results", m.Handler.AppendResult)
	g.DELETE("/:id", m.Handler.Delete)
}
