package application

import (
	"errors"
	"time"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

// CredentialService hashes passwords and issues/parses session tokens.
type CredentialService struct {
	JWT *helpers.JWTManager
}

func NewCredentialService(jwt *helpers.JWTManager) *CredentialService {
	return &CredentialService{JWT: jwt}
}

func (c *CredentialService) Hash(plain string) (string, error) {
	hash, err := helpers.HashPassword(plain)
	if errors.Is(err, helpers.ErrEmptyPassword) || errors.Is(err, helpers.ErrPasswordTooLong) {
		return "", ErrInvalidPassword
	}
	return hash, err
}

// Verify never errors: a malformed hash is a mismatch.
func (c *CredentialService) Verify(plain, hash string) bool {
	return helpers.CompareHashAndPassword(hash, plain)
}

func (c *CredentialService) IssueToken(p entity.Principal) (string, time.Time, error) {
	return c.JWT.GenerateToken(p.UserID, p.Email)
}

// ParseToken verifies signature and expiry and rebuilds the principal.
func (c *CredentialService) ParseToken(token string) (*entity.Principal, error) {
	claims, err := c.JWT.ParseToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return &entity.Principal{UserID: claims.UserID, Email: claims.Email}, nil
}
