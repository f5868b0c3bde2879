package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/quiz-history-api/pkg/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthModule: GET /health reports whether the store answers.
type HealthModule struct {
	Driver string
	DB     Pinger // nil for the memory store
}

func NewHealthModule(driver string, db Pinger) *HealthModule {
	return &HealthModule{Driver: driver, DB: db}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.check)
}

func (m *HealthModule) check(c *gin.Context) {
	if m.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := m.DB.Ping(ctx); err != nil {
			response.Abort(c, http.StatusServiceUnavailable, "store unavailable", "store_unavailable", nil)
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok", "store": m.Driver}, "healthy")
}
