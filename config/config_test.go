package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "quiz-history-api", cfg.AppName)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.StrictOwnership)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, "recordings", cfg.ESRecordingsIndex)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("STRICT_OWNERSHIP", "true")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("QUIZ_SET_CACHE_TTL", "1m")

	cfg := Load()

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.StrictOwnership)
	assert.Equal(t, int32(25), cfg.DBMaxConns)
	assert.Equal(t, time.Minute, cfg.QuizSetCacheTTL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	t.Setenv("STRICT_OWNERSHIP", "maybe")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.StrictOwnership)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, (&Config{}).ESAddrs())
}
