package entity

// Principal is the authenticated identity reconstructed from a verified
// session token. It is never persisted.
type Principal struct {
	UserID string
	Email  string
}
