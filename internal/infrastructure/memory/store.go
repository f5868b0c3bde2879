// Package memory provides process-local implementations of the repositories.
// Every method is atomic for the single document it touches, which matches
// what the Postgres implementation guarantees per row.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/internal/domain/repository"
)

// Store holds all three collections behind one mutex.
type Store struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	emails     map[string]string
	quizSets   map[string]*entity.QuizSet
	recordings map[string]*entity.Recording
}

func NewStore() *Store {
	return &Store{
		users:      map[string]*entity.User{},
		emails:     map[string]string{},
		quizSets:   map[string]*entity.QuizSet{},
		recordings: map[string]*entity.Recording{},
	}
}

// Users returns the store's UserRepository view.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// QuizSets returns the store's QuizSetRepository view.
func (s *Store) QuizSets() repository.QuizSetRepository { return (*quizSetRepo)(s) }

// Recordings returns the store's RecordingRepository view.
func (s *Store) Recordings() repository.RecordingRepository { return (*recordingRepo)(s) }

func copyUser(u *entity.User) *entity.User {
	c := *u
	c.QuizSetIDs = append([]string{}, u.QuizSetIDs...)
	c.RecordingIDs = append([]string{}, u.RecordingIDs...)
	return &c
}

func copyQuizSet(qs *entity.QuizSet) *entity.QuizSet {
	c := *qs
	c.Results = append([]entity.QuizResult{}, qs.Results...)
	return &c
}

func copyRecording(r *entity.Recording) *entity.Recording {
	c := *r
	return &c
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[u.Email]; taken {
		return repository.ErrDuplicateEmail
	}
	now := time.Now()
	u.ID = uuid.NewString()
	u.QuizSetIDs = []string{}
	u.RecordingIDs = []string{}
	u.CreatedAt, u.UpdatedAt = now, now

	r.users[u.ID] = copyUser(u)
	r.emails[u.Email] = u.ID
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(r.users[id]), nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if owner, taken := r.emails[u.Email]; taken && owner != u.ID {
		return repository.ErrDuplicateEmail
	}
	delete(r.emails, stored.Email)
	r.emails[u.Email] = u.ID

	u.UpdatedAt = time.Now()
	stored.Email = u.Email
	stored.Password = u.Password
	stored.Name = u.Name
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *userRepo) AddQuizSet(_ context.Context, userID, quizSetID string) (*entity.User, error) {
	return r.modify(userID, func(u *entity.User) {
		if !u.OwnsQuizSet(quizSetID) {
			u.QuizSetIDs = append(u.QuizSetIDs, quizSetID)
		}
	})
}

func (r *userRepo) RemoveQuizSet(_ context.Context, userID, quizSetID string) (*entity.User, error) {
	return r.modify(userID, func(u *entity.User) {
		u.QuizSetIDs = without(u.QuizSetIDs, quizSetID)
	})
}

func (r *userRepo) AddRecording(_ context.Context, userID, recordingID string) (*entity.User, error) {
	return r.modify(userID, func(u *entity.User) {
		u.RecordingIDs = append(u.RecordingIDs, recordingID)
	})
}

func (r *userRepo) RemoveRecording(_ context.Context, userID, recordingID string) (*entity.User, error) {
	return r.modify(userID, func(u *entity.User) {
		u.RecordingIDs = without(u.RecordingIDs, recordingID)
	})
}

func (r *userRepo) modify(userID string, fn func(u *entity.User)) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return copyUser(u), nil
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type quizSetRepo Store

func (r *quizSetRepo) Create(_ context.Context, qs *entity.QuizSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs.ID = uuid.NewString()
	qs.DateTaken = time.Now()
	qs.Results = []entity.QuizResult{}
	r.quizSets[qs.ID] = copyQuizSet(qs)
	return nil
}

func (r *quizSetRepo) GetByID(_ context.Context, id string) (*entity.QuizSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, ok := r.quizSets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyQuizSet(qs), nil
}

func (r *quizSetRepo) AppendResult(_ context.Context, id string, res entity.QuizResult) (*entity.QuizSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, ok := r.quizSets[id]
	if !ok {
		return nil, nil
	}
	qs.Results = append(qs.Results, res)
	return copyQuizSet(qs), nil
}

func (r *quizSetRepo) Delete(_ context.Context, id string) (*entity.QuizSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	qs, ok := r.quizSets[id]
	if !ok {
		return nil, nil
	}
	delete(r.quizSets, id)
	return qs, nil
}

type recordingRepo Store

func (r *recordingRepo) Create(_ context.Context, rec *entity.Recording) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	r.recordings[rec.ID] = copyRecording(rec)
	return nil
}

func (r *recordingRepo) GetByID(_ context.Context, id string) (*entity.Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recordings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRecording(rec), nil
}

func (r *recordingRepo) Delete(_ context.Context, id string) (*entity.Recording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recordings[id]
	if !ok {
		return nil, nil
	}
	delete(r.recordings, id)
	return rec, nil
}
