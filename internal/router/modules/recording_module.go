package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/quiz-history-api/internal/interface/http"
)

type RecordingModule struct {
	Handler *handlers.RecordingHandler
}

func NewRecordingModule(h *handlers.RecordingHandler) *RecordingModule {
	return &RecordingModule{Handler: h}
}

func (m *RecordingModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/recordings")
	g.POST("", m.Handler.Create)
	g.POST("/audio", m.Handler.UploadAudio)
	g.GET("/search", m.Handler.Search)
	g.GET("/:id", m.Handler.Get)
	g.DELETE("/:id", m.Handler.Delete)
}
