package application

import (
	"context"
	"io"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
)

// QuizSetCache is a read-through cache in front of the quiz-set store.
// Implementations report a miss as (nil, false, nil).
//
// Readers Fill, which never replaces an existing entry, so a copy loaded
// before a concurrent append cannot overwrite the copy the append Set.
// A reader that fills after a delete's Invalidate can still cache the
// deleted set; that entry lives until the TTL expires.
type QuizSetCache interface {
	Get(ctx context.Context, id string) (*entity.QuizSet, bool, error)
	Fill(ctx context.Context, qs *entity.QuizSet) error
	Set(ctx context.Context, qs *entity.QuizSet) error
	Invalidate(ctx context.Context, id string) error
}

// RecordingIndex keeps a searchable copy of recording titles.
type RecordingIndex interface {
	Index(ctx context.Context, userID string, rec *entity.Recording) error
	Remove(ctx context.Context, id string) error
	// Search returns matching recording ids owned by userID, best match first.
	Search(ctx context.Context, userID, q string, size int) ([]string, error)
}

// AudioStorage stores recording audio and returns a URL usable as Recording.Audio.
type AudioStorage interface {
	Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error)
}

// Notifier queues account emails.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.User) error
	ProfileUpdated(ctx context.Context, u *entity.User, changes []string) error
}
