package handlers

import (
	"time"

	app "github.com/oksasatya/quiz-history-api/internal/application"
	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
)

// userView is the public shape of a user; the password hash never leaves the service.
type userView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	QuizSetIDs   []string  `json:"quiz_set_ids"`
	RecordingIDs []string  `json:"recording_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserView(u *entity.User) userView {
	v := userView{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		QuizSetIDs:   u.QuizSetIDs,
		RecordingIDs: u.RecordingIDs,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if v.QuizSetIDs == nil {
		v.QuizSetIDs = []string{}
	}
	if v.RecordingIDs == nil {
		v.RecordingIDs = []string{}
	}
	return v
}

type authView struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userView  `json:"user"`
}

func toAuthView(r *app.AuthResult) authView {
	return authView{Token: r.Token, ExpiresAt: r.ExpiresAt, User: toUserView(r.User)}
}

type currentUserView struct {
	userView
	QuizSets []*entity.QuizSet `json:"quiz_sets"`
}
