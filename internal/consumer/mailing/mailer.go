package mailing

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=./mock_mailer_test.go -package=mailing -self_package=github.com/Decentr-net/agora/internal/consumer/mailing -source=mailer.go

// Mail ...
type Mail struct {
	To       string
	Subject  string
	Template string
	Context  map[string]interface{}
}

// Mailer delivers mails.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// Templates.
const (
	ConfirmationTemplate  = "confirmation"
	PasswordResetTemplate = "password_reset"
	NewCommentTemplate    = "new_comment"
	PostUpdatedTemplate   = "post_updated"
)

// nolint:gochecknoglobals
var templates = template.Must(template.New("mails").Parse(`
{{define "confirmation"}}Hello, {{.username}}!
Please confirm your email: {{.url}}{{end}}
{{define "password_reset"}}Hello, {{.username}}!
Use the link to set a new password, it expires in 10 minutes: {{.url}}{{end}}
{{define "new_comment"}}Hello, {{.username}}!
A new comment was added to "{{.title}}": {{.url}}{{end}}
{{define "post_updated"}}Hello, {{.username}}!
The post "{{.title}}" you are subscribed to was updated: {{.url}}{{end}}
`))

// Render executes mail's template.
func Render(m Mail) (string, error) {
	var b bytes.Buffer
	if err := templates.ExecuteTemplate(&b, m.Template, m.Context); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", m.Template, err)
	}
	return b.String(), nil
}

type logMailer struct {
	log *logrus.Entry
}

// NewLogMailer returns Mailer which writes rendered mails to the log instead of delivering them.
func NewLogMailer() Mailer {
	return logMailer{log: log.WithField("mailer", "log")}
}

func (m logMailer) Send(_ context.Context, mail Mail) error {
	body, err := Render(mail)
	if err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{
		"to":      mail.To,
		"subject": mail.Subject,
	}).Info(body)

	return nil
}
