package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/internal/domain/repository"
)

const recordingColumns = `id::text, audio, title, created_at`

type RecordingRepository struct {
	db DB
}

func NewRecordingRepository(db DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

func scanRecording(row pgx.Row) (*entity.Recording, error) {
	rec := &entity.Recording{}
	if err := row.Scan(&rec.ID, &rec.Audio, &rec.Title, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecordingRepository) Create(ctx context.Context, rec *entity.Recording) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO recordings (audio, title)
		VALUES ($1, $2)
		RETURNING id::text, created_at
	`, rec.Audio, rec.Title)

	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("insert recording: %w", err)
	}
	return nil
}

func (r *RecordingRepository) GetByID(ctx context.Context, id string) (*entity.Recording, error) {
	rec, err := scanRecording(r.db.QueryRow(ctx, `SELECT `+recordingColumns+` FROM recordings WHERE id = $1`, id))
	if err != nil {
		if isAbsent(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecordingRepository) Delete(ctx context.Context, id string) (*entity.Recording, error) {
	rec, err := scanRecording(r.db.QueryRow(ctx, `DELETE FROM recordings WHERE id = $1 RETURNING `+recordingColumns, id))
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

var _ repository.RecordingRepository = (*RecordingRepository)(nil)
