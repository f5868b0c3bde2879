package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/quiz-history-api/pkg/mailer"
	mailtpl "github.com/oksasatya/quiz-history-api/pkg/mailer/templates"
)

// SubjectForType is used when a job carries neither a template nor a subject.
func SubjectForType(data map[string]any) string {
	typeStr := fmt.Sprintf("%v", data["Type"])
	switch strings.ToLower(typeStr) {
	case mailtpl.Welcome:
		return "Welcome aboard"
	case mailtpl.ProfileUpdated:
		return "Your profile was updated"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// NormalizeTemplate lowercases the template name and falls back to Data["Type"].
func NormalizeTemplate(job *mailer.EmailJob) {
	name := strings.ToLower(strings.TrimSpace(job.Template))
	if name == "" && job.Data != nil {
		name = strings.ToLower(fmt.Sprintf("%v", job.Data["Type"]))
	}
	if mailtpl.Known(name) {
		job.Template = name
		return
	}
	job.Template = ""
}
