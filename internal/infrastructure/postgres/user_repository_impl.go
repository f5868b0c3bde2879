package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/internal/domain/repository"
)

const userColumns = `id::text, email, password_hash, name, quiz_set_ids::text[], recording_ids::text[], created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.QuizSetIDs, &u.RecordingIDs,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id::text, quiz_set_ids::text[], recording_ids::text[], created_at, updated_at
	`, u.Email, u.Password, u.Name)

	if err := row.Scan(&u.ID, &u.QuizSetIDs, &u.RecordingIDs, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isAbsent(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if isAbsent(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// Update writes the profile columns only. Owned sets are changed exclusively
// through the Add*/Remove* methods so a stale copy cannot overwrite them.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, updated_at = $4
		WHERE id = $5
	`, u.Email, u.Password, u.Name, u.UpdatedAt, u.ID)
	if err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return repository.ErrDuplicateEmail
		}
		if isAbsent(err) {
			return repository.ErrNotFound
		}
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) AddQuizSet(ctx context.Context, userID, quizSetID string) (*entity.User, error) {
	return r.modify(ctx, `
		UPDATE users
		SET quiz_set_ids = CASE WHEN $2::uuid = ANY(quiz_set_ids) THEN quiz_set_ids
		                        ELSE array_append(quiz_set_ids, $2::uuid) END,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, userID, quizSetID)
}

func (r *UserRepository) RemoveQuizSet(ctx context.Context, userID, quizSetID string) (*entity.User, error) {
	return r.modify(ctx, `
		UPDATE users
		SET quiz_set_ids = array_remove(quiz_set_ids, $2::uuid), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, userID, quizSetID)
}

func (r *UserRepository) AddRecording(ctx context.Context, userID, recordingID string) (*entity.User, error) {
	return r.modify(ctx, `
		UPDATE users
		SET recording_ids = array_append(recording_ids, $2::uuid), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, userID, recordingID)
}

func (r *UserRepository) RemoveRecording(ctx context.Context, userID, recordingID string) (*entity.User, error) {
	return r.modify(ctx, `
		UPDATE users
		SET recording_ids = array_remove(recording_ids, $2::uuid), updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns, userID, recordingID)
}

// modify runs a single-row find-and-update. The array change happens inside
// one statement so concurrent updates to the same user serialize on the row.
func (r *UserRepository) modify(ctx context.Context, sql string, userID, refID string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, sql, userID, refID))
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
