package entity

import "time"

// QuizSet groups the answers given during one quiz-taking session.
// Results are embedded and append-only.
type QuizSet struct {
	ID        string       `json:"id"`
	DateTaken time.Time    `json:"date_taken"`
	Results   []QuizResult `json:"quiz_results"`
}

// QuizResult is a single answer inside a QuizSet. It has no lifecycle of its own.
type QuizResult struct {
	ID         string    `json:"id"`
	QuizSetID  string    `json:"quiz_set_id"`
	QuizTaken  string    `json:"quiz_taken"`
	QuizAnswer string    `json:"quiz_answer"`
	CreatedAt  time.Time `json:"created_at"`
}
