package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	repo "github.com/oksasatya/quiz-history-api/internal/domain/repository"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

// QueryService serves reads. By-id reads are not owner-scoped unless
// StrictOwnership is set.
type QueryService struct {
	Users      repo.UserRepository
	QuizSets   repo.QuizSetRepository
	Recordings repo.RecordingRepository
	Cache      QuizSetCache // optional

	StrictOwnership bool
	Logger          *logrus.Logger
}

func NewQueryService(users repo.UserRepository, quizSets repo.QuizSetRepository, recordings repo.RecordingRepository, cache QuizSetCache, strict bool, logger *logrus.Logger) *QueryService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &QueryService{
		Users:           users,
		QuizSets:        quizSets,
		Recordings:      recordings,
		Cache:           cache,
		StrictOwnership: strict,
		Logger:          logger,
	}
}

// UserWithQuizSets is the current user with its quiz sets resolved in owned order.
type UserWithQuizSets struct {
	User     *entity.User
	QuizSets []*entity.QuizSet
}

func (s *QueryService) CurrentUser(ctx context.Context, p *entity.Principal) (*UserWithQuizSets, error) {
	p, err := Require(p)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, p.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	sets := make([]*entity.QuizSet, 0, len(u.QuizSetIDs))
	for _, id := range u.QuizSetIDs {
		qs, err := s.loadQuizSet(ctx, id)
		if err != nil {
			return nil, err
		}
		if qs != nil {
			sets = append(sets, qs)
		}
	}
	return &UserWithQuizSets{User: u, QuizSets: sets}, nil
}

// QuizSet returns nil, nil when the set does not exist.
func (s *QueryService) QuizSet(ctx context.Context, p *entity.Principal, id string) (*entity.QuizSet, error) {
	if s.StrictOwnership {
		p, err := Require(p)
		if err != nil {
			return nil, err
		}
		ok, err := owns(ctx, s.Users, p.UserID, ownsQuizSet(id))
		if err != nil || !ok {
			return nil, err
		}
	}
	return s.loadQuizSet(ctx, id)
}

// Recording returns nil, nil when the recording does not exist.
func (s *QueryService) Recording(ctx context.Context, p *entity.Principal, id string) (*entity.Recording, error) {
	if s.StrictOwnership {
		p, err := Require(p)
		if err != nil {
			return nil, err
		}
		ok, err := owns(ctx, s.Users, p.UserID, ownsRecording(id))
		if err != nil || !ok {
			return nil, err
		}
	}
	rec, err := s.Recordings.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load recording: %w", err)
	}
	return rec, nil
}

func (s *QueryService) loadQuizSet(ctx context.Context, id string) (*entity.QuizSet, error) {
	if s.Cache != nil {
		qs, hit, err := s.Cache.Get(ctx, id)
		if err != nil {
			s.Logger.WithError(err).WithField("quiz_set_id", id).Warn("quiz set cache read failed")
		} else if hit {
			return qs, nil
		}
	}

	qs, err := s.QuizSets.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load quiz set: %w", err)
	}

	if s.Cache != nil {
		if err := s.Cache.Fill(ctx, qs); err != nil {
			s.Logger.WithError(err).WithField("quiz_set_id", id).Warn("quiz set cache write failed")
		}
	}
	return qs, nil
}
