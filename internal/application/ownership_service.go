package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	repo "github.com/oksasatya/quiz-history-api/internal/domain/repository"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

// OwnershipService creates and deletes owned records and keeps the owner's
// reference sets in step with them.
//
// Create-then-link and delete-then-unlink are two separate store calls with
// no transaction around them. A failure between the two leaves an unlinked
// record or a dangling reference.
type OwnershipService struct {
	Users      repo.UserRepository
	QuizSets   repo.QuizSetRepository
	Recordings repo.RecordingRepository

	Cache   QuizSetCache   // optional
	Index   RecordingIndex // optional
	Storage AudioStorage   // optional

	// StrictOwnership limits append and delete to records in the caller's owned sets.
	StrictOwnership bool
	Logger          *logrus.Logger
}

type OwnershipDeps struct {
	Users      repo.UserRepository
	QuizSets   repo.QuizSetRepository
	Recordings repo.RecordingRepository
	Cache      QuizSetCache
	Index      RecordingIndex
	Storage    AudioStorage
}

func NewOwnershipService(d OwnershipDeps, strict bool, logger *logrus.Logger) *OwnershipService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &OwnershipService{
		Users:           d.Users,
		QuizSets:        d.QuizSets,
		Recordings:      d.Recordings,
		Cache:           d.Cache,
		Index:           d.Index,
		Storage:         d.Storage,
		StrictOwnership: strict,
		Logger:          logger,
	}
}

func (s *OwnershipService) CreateQuizSet(ctx context.Context, p *entity.Principal) (*entity.QuizSet, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	qs := &entity.QuizSet{}
	if err := s.QuizSets.Create(ctx, qs); err != nil {
		return nil, fmt.Errorf("create quiz set: %w", err)
	}
	owner, err := s.Users.AddQuizSet(ctx, p.UserID, qs.ID)
	if err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": p.UserID, "quiz_set_id": qs.ID}).Error("link quiz set failed")
		return nil, fmt.Errorf("link quiz set: %w", err)
	}
	if owner == nil {
		s.Logger.WithFields(logrus.Fields{"user_id": p.UserID, "quiz_set_id": qs.ID}).Warn("quiz set created for unknown user")
	}
	return qs, nil
}

// AppendQuizResult returns nil, nil when the set does not exist.
func (s *OwnershipService) AppendQuizResult(ctx context.Context, p *entity.Principal, quizSetID, taken, answer string) (*entity.QuizSet, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	if s.StrictOwnership {
		ok, err := owns(ctx, s.Users, p.UserID, ownsQuizSet(quizSetID))
		if err != nil || !ok {
			return nil, err
		}
	}

	res := entity.QuizResult{
		ID:         uuid.NewString(),
		QuizSetID:  quizSetID,
		QuizTaken:  taken,
		QuizAnswer: answer,
		CreatedAt:  time.Now().UTC(),
	}
	qs, err := s.QuizSets.AppendResult(ctx, quizSetID, res)
	if err != nil {
		return nil, fmt.Errorf("append quiz result: %w", err)
	}
	if qs != nil {
		s.refresh(ctx, qs)
	}
	return qs, nil
}

// DeleteQuizSet returns the deleted set, or nil, nil when nothing was deleted.
// The unlink step runs either way.
func (s *OwnershipService) DeleteQuizSet(ctx context.Context, p *entity.Principal, quizSetID string) (*entity.QuizSet, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	if s.StrictOwnership {
		ok, err := owns(ctx, s.Users, p.UserID, ownsQuizSet(quizSetID))
		if err != nil || !ok {
			return nil, err
		}
	}

	deleted, err := s.QuizSets.Delete(ctx, quizSetID)
	if err != nil {
		return nil, fmt.Errorf("delete quiz set: %w", err)
	}
	if _, err := s.Users.RemoveQuizSet(ctx, p.UserID, quizSetID); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": p.UserID, "quiz_set_id": quizSetID}).Error("unlink quiz set failed")
		return nil, fmt.Errorf("unlink quiz set: %w", err)
	}
	s.invalidate(ctx, quizSetID)
	return deleted, nil
}

func (s *OwnershipService) CreateRecording(ctx context.Context, p *entity.Principal, audio, title string) (*entity.Recording, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	rec := &entity.Recording{Audio: audio, Title: title}
	if err := s.Recordings.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	owner, err := s.Users.AddRecording(ctx, p.UserID, rec.ID)
	if err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": p.UserID, "recording_id": rec.ID}).Error("link recording failed")
		return nil, fmt.Errorf("link recording: %w", err)
	}
	if owner == nil {
		s.Logger.WithFields(logrus.Fields{"user_id": p.UserID, "recording_id": rec.ID}).Warn("recording created for unknown user")
	}

	if s.Index != nil {
		if iErr := s.Index.Index(ctx, p.UserID, rec); iErr != nil {
			s.Logger.WithError(iErr).WithField("recording_id", rec.ID).Warn("index recording failed")
		}
	}
	return rec, nil
}

// DeleteRecording mirrors DeleteQuizSet.
func (s *OwnershipService) DeleteRecording(ctx context.Context, p *entity.Principal, recordingID string) (*entity.Recording, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	if s.StrictOwnership {
		ok, err := owns(ctx, s.Users, p.UserID, ownsRecording(recordingID))
		if err != nil || !ok {
			return nil, err
		}
	}

	deleted, err := s.Recordings.Delete(ctx, recordingID)
	if err != nil {
		return nil, fmt.Errorf("delete recording: %w", err)
	}
	if _, err := s.Users.RemoveRecording(ctx, p.UserID, recordingID); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": p.UserID, "recording_id": recordingID}).Error("unlink recording failed")
		return nil, fmt.Errorf("unlink recording: %w", err)
	}

	if deleted != nil && s.Index != nil {
		if iErr := s.Index.Remove(ctx, recordingID); iErr != nil {
			s.Logger.WithError(iErr).WithField("recording_id", recordingID).Warn("unindex recording failed")
		}
	}
	return deleted, nil
}

// UploadAudio stores an audio blob and returns the URL to pass to CreateRecording.
func (s *OwnershipService) UploadAudio(ctx context.Context, p *entity.Principal, r io.Reader, filename, contentType string) (string, error) {
	p, err := Require(p)
	if err != nil {
		return "", err
	}
	if s.Storage == nil {
		return "", ErrStorageNotConfigured
	}
	url, err := s.Storage.Upload(ctx, p.UserID, filename, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	return url, nil
}

// SearchRecordings matches titles of the caller's recordings. Without an
// index it returns an empty list.
func (s *OwnershipService) SearchRecordings(ctx context.Context, p *entity.Principal, q string, size int) ([]*entity.Recording, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	out := []*entity.Recording{}
	if s.Index == nil {
		return out, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	ids, err := s.Index.Search(ctx, p.UserID, q, size)
	if err != nil {
		return nil, fmt.Errorf("search recordings: %w", err)
	}
	for _, id := range ids {
		rec, err := s.Recordings.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("load recording: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// refresh overwrites the cached copy with the set the store just returned.
func (s *OwnershipService) refresh(ctx context.Context, qs *entity.QuizSet) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, qs); err != nil {
		s.Logger.WithError(err).WithField("quiz_set_id", qs.ID).Warn("quiz set cache write failed")
		s.invalidate(ctx, qs.ID)
	}
}

func (s *OwnershipService) invalidate(ctx context.Context, quizSetID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, quizSetID); err != nil {
		s.Logger.WithError(err).WithField("quiz_set_id", quizSetID).Warn("quiz set cache invalidate failed")
	}
}
