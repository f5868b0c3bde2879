package repository

import (
	"context"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
)

// QuizSetRepository persists quiz sets with their embedded results.
// AppendResult and Delete return nil, nil when the set does not exist.
type QuizSetRepository interface {
	Create(ctx context.Context, qs *entity.QuizSet) error
	GetByID(ctx context.Context, id string) (*entity.QuizSet, error)
	AppendResult(ctx context.Context, id string, r entity.QuizResult) (*entity.QuizSet, error)
	Delete(ctx context.Context, id string) (*entity.QuizSet, error)
}
