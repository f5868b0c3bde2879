package entity

import (
	"time"
)

// User is the aggregate root for the account domain
// Passwords are stored as bcrypt hashes in Password field
//
// QuizSetIDs and RecordingIDs are the owned sets: back-references to records
// created under this user, kept in creation order.
type User struct {
	ID           string
	Email        string
	Password     string
	Name         string
	QuizSetIDs   []string
	RecordingIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnsQuizSet reports whether id is in the user's owned quiz sets.
func (u *User) OwnsQuizSet(id string) bool {
	return containsID(u.QuizSetIDs, id)
}

// OwnsRecording reports whether id is in the user's owned recordings.
func (u *User) OwnsRecording(id string) bool {
	return containsID(u.RecordingIDs, id)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
