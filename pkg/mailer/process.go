package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/quiz-history-api/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never be delivered and must not be requeued.
var ErrBadJob = errors.New("bad email job")

// Prepare fills Subject/Text/HTML from the job's template, if any.
func Prepare(job *EmailJob) error {
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return fmt.Errorf("%w: no template and no body", ErrBadJob)
		}
		return nil
	}
	s, t, h, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	if job.Subject == "" {
		job.Subject = s
	}
	job.Text, job.HTML = t, h
	return nil
}

// Handle decodes a queue message body, renders it, and sends it.
// Errors wrapping ErrBadJob are permanent; anything else is worth a retry.
func Handle(ctx context.Context, s Sender, body []byte, normalize func(*EmailJob)) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if normalize != nil {
		normalize(&job)
	}
	if err := Prepare(&job); err != nil {
		return err
	}
	return s.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}
