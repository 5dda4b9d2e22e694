package email

import (
	"fmt"

	"chainwork_backend/internal/config"
	"chainwork_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. All sends are best effort: callers
// log failures and move on, mail never blocks a user action.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) Sender {
	return &SMTPSender{cfg: cfg}
}

func (e *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		e.cfg.Email.SMTPHost,
		e.cfg.Email.SMTPPort,
		e.cfg.Email.SMTPUsername,
		e.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// NopSender is used when email is disabled in config.
type NopSender struct{}

func (NopSender) Send(to, subject, body string) error {
	logger.Debug("email disabled, skipping send", "to", to, "subject", subject)
	return nil
}

// WelcomeBody renders the registration email.
func WelcomeBody(name string) string {
	return fmt.Sprintf(`<p>Hi %s,</p>
<p>Welcome to ChainWork. Complete your profile to start receiving job matches.</p>`, name)
}

// ApplicationReceivedBody renders the mail sent to a job owner when someone
// applies.
func ApplicationReceivedBody(jobTitle, applicantName string) string {
	return fmt.Sprintf(`<p>%s applied to your job posting <b>%s</b>.</p>
<p>Review the application in your dashboard.</p>`, applicantName, jobTitle)
}
