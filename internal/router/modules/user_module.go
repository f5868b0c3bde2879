package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/quiz-history-api/internal/interface/http"
)

// UserModule wires the current-user routes
// GET /me, PUT /profile
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/me", m.Handler.Me)
	rg.PUT("/profile", m.Handler.UpdateProfile)
}
