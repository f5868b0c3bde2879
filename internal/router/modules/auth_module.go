package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/quiz-history-api/internal/interface/http"
)

// AuthModule: POST /signup, /login, /logout. No identity required.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Handler.Signup)
	rg.POST("/login", m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)
}
