package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	repo "github.com/oksasatya/quiz-history-api/internal/domain/repository"
)

// owns loads the user and applies pred. A missing user owns nothing.
func owns(ctx context.Context, users repo.UserRepository, userID string, pred func(*entity.User) bool) (bool, error) {
	u, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load owner: %w", err)
	}
	return pred(u), nil
}

func ownsQuizSet(id string) func(*entity.User) bool {
	return func(u *entity.User) bool { return u.OwnsQuizSet(id) }
}

func ownsRecording(id string) func(*entity.User) bool {
	return func(u *entity.User) bool { return u.OwnsRecording(id) }
}

func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}
