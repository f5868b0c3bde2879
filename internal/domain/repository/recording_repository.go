package repository

import (
	"context"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
)

// RecordingRepository persists recordings. Delete returns nil, nil when the
// recording does not exist.
type RecordingRepository interface {
	Create(ctx context.Context, r *entity.Recording) error
	GetByID(ctx context.Context, id string) (*entity.Recording, error)
	Delete(ctx context.Context, id string) (*entity.Recording, error)
}
