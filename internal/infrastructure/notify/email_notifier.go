// Package notify queues account emails on RabbitMQ for cmd/email_worker.
package notify

import (
	"context"
	"time"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/pkg/mailer"
	mailtpl "github.com/oksasatya/quiz-history-api/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type EmailNotifier struct {
	pub   Publisher
	brand mailtpl.Brand
	now   func() time.Time
}

func NewEmailNotifier(pub Publisher, brand mailtpl.Brand) *EmailNotifier {
	return &EmailNotifier{pub: pub, brand: brand, now: time.Now}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.brand, u.Name, u.Email),
	})
}

func (n *EmailNotifier) ProfileUpdated(ctx context.Context, u *entity.User, changes []string) error {
	return n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.ProfileUpdated,
		Data:     mailtpl.NewProfileUpdatedData(n.brand, u.Name, u.Email, changes, mailtpl.WithTime(n.now())),
	})
}

func (n *EmailNotifier) publish(ctx context.Context, job mailer.EmailJob) error {
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return n.pub.PublishJSON(c, job)
}
