package entity

import "time"

// Recording is a stored audio artifact. Audio holds a payload reference,
// either a storage URL or an encoded blob.
type Recording struct {
	ID        string    `json:"id"`
	Audio     string    `json:"audio"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
