package repository

import (
	"context"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
//
// The Add*/Remove* methods mutate the owned sets in place on the stored
// document and return the updated user, or nil when the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error

	AddQuizSet(ctx context.Context, userID, quizSetID string) (*entity.User, error)
	RemoveQuizSet(ctx context.Context, userID, quizSetID string) (*entity.User, error)
	AddRecording(ctx context.Context, userID, recordingID string) (*entity.User, error)
	RemoveRecording(ctx context.Context, userID, recordingID string) (*entity.User, error)
}
