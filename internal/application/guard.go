package application

import "github.com/oksasatya/quiz-history-api/internal/domain/entity"

// Require returns p when it carries a user id, ErrUnauthenticated otherwise.
// Guarded operations call it before touching any store.
func Require(p *entity.Principal) (*entity.Principal, error) {
	if p == nil || p.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return p, nil
}
