package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	repo "github.com/oksasatya/quiz-history-api/internal/domain/repository"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

// SessionService handles signup, login and profile updates.
type SessionService struct {
	Users    repo.UserRepository
	Creds    *CredentialService
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewSessionService(users repo.UserRepository, creds *CredentialService, notifier Notifier, logger *logrus.Logger) *SessionService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &SessionService{Users: users, Creds: creds, Notifier: notifier, Logger: logger}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateProfileInput lists the profile fields a caller may change. Nil means unchanged.
type UpdateProfileInput struct {
	Email    *string
	Password *string
	Name     *string
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *SessionService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	hash, err := s.Creds.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Email:    normalizeEmail(in.Email),
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		if nErr := s.Notifier.Welcome(ctx, u); nErr != nil {
			s.Logger.WithError(nErr).WithField("user_id", u.ID).Warn("queue welcome email failed")
		}
	}
	return res, nil
}

// Login does not reveal whether the email exists.
func (s *SessionService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !s.Creds.Verify(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *SessionService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.Creds.IssueToken(entity.Principal{UserID: u.ID, Email: u.Email})
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// UpdateProfile changes the caller's own record; the target id always comes from p.
func (s *SessionService) UpdateProfile(ctx context.Context, p *entity.Principal, in UpdateProfileInput) (*entity.User, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	var changes []string
	if in.Email != nil {
		if email := normalizeEmail(*in.Email); email != u.Email {
			u.Email = email
			changes = append(changes, "email")
		}
	}
	if in.Password != nil {
		hash, err := s.Creds.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
		changes = append(changes, "password")
	}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != u.Name {
			u.Name = name
			changes = append(changes, "name")
		}
	}
	if len(changes) == 0 {
		return u, nil
	}

	if err := s.Users.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrDuplicateAccount
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.Notifier != nil {
		if nErr := s.Notifier.ProfileUpdated(ctx, u, changes); nErr != nil {
			s.Logger.WithError(nErr).WithField("user_id", u.ID).Warn("queue profile email failed")
		}
	}
	return u, nil
}
