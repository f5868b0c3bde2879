package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/internal/domain/repository"
)

const quizSetColumns = `id::text, date_taken, quiz_results`

type QuizSetRepository struct {
	db DB
}

func NewQuizSetRepository(db DB) *QuizSetRepository {
	return &QuizSetRepository{db: db}
}

func scanQuizSet(row pgx.Row) (*entity.QuizSet, error) {
	qs := &entity.QuizSet{}
	var raw []byte
	if err := row.Scan(&qs.ID, &qs.DateTaken, &raw); err != nil {
		return nil, err
	}
	qs.Results = []entity.QuizResult{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &qs.Results); err != nil {
			return nil, fmt.Errorf("decode quiz results: %w", err)
		}
	}
	return qs, nil
}

func (r *QuizSetRepository) Create(ctx context.Context, qs *entity.QuizSet) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO quiz_sets DEFAULT VALUES
		RETURNING `+quizSetColumns)

	created, err := scanQuizSet(row)
	if err != nil {
		return fmt.Errorf("insert quiz set: %w", err)
	}
	*qs = *created
	return nil
}

func (r *QuizSetRepository) GetByID(ctx context.Context, id string) (*entity.QuizSet, error) {
	qs, err := scanQuizSet(r.db.QueryRow(ctx, `SELECT `+quizSetColumns+` FROM quiz_sets WHERE id = $1`, id))
	if err != nil {
		if isAbsent(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return qs, nil
}

// AppendResult pushes one result onto the embedded jsonb array.
func (r *QuizSetRepository) AppendResult(ctx context.Context, id string, res entity.QuizResult) (*entity.QuizSet, error) {
	b, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	qs, err := scanQuizSet(r.db.QueryRow(ctx, `
		UPDATE quiz_sets
		SET quiz_results = quiz_results || jsonb_build_array($2::jsonb)
		WHERE id = $1
		RETURNING `+quizSetColumns, id, string(b)))
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return qs, nil
}

func (r *QuizSetRepository) Delete(ctx context.Context, id string) (*entity.QuizSet, error) {
	qs, err := scanQuizSet(r.db.QueryRow(ctx, `DELETE FROM quiz_sets WHERE id = $1 RETURNING `+quizSetColumns, id))
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return qs, nil
}

var _ repository.QuizSetRepository = (*QuizSetRepository)(nil)
