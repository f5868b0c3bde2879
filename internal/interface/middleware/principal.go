package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

const CtxPrincipalKey = "principal"

// TokenParser verifies a session token. *application.CredentialService satisfies it.
type TokenParser interface {
	ParseToken(token string) (*entity.Principal, error)
}

// Principal resolves the caller from "Authorization: Bearer <token>" or the
// access_token cookie. It never rejects: a missing or invalid token simply
// leaves no principal, and guarded operations answer Unauthenticated.
func Principal(tp TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if p, err := tp.ParseToken(token); err == nil {
				c.Set(CtxPrincipalKey, p)
			}
		}
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if tok, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return tok
	}
	return ""
}

// PrincipalFrom returns the principal set by Principal, or nil.
func PrincipalFrom(c *gin.Context) *entity.Principal {
	if v, ok := c.Get(CtxPrincipalKey); ok {
		if p, ok := v.(*entity.Principal); ok {
			return p
		}
	}
	return nil
}
