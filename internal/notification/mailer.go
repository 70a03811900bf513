package notification

import (
	"fmt"

	"github.com/DivyanshSaharan/ContestTrack/internal/config"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer is the side-effecting delivery collaborator. Implementations return
// an error on failed delivery and never panic; the scheduler treats the
// result as pass/fail only.
type Mailer interface {
	Send(user *models.User, contest *models.Contest, prefs *models.NotificationPreference) error
}

// SMTPMailer delivers reminder emails over SMTP.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	formatter *Formatter
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		formatter: NewFormatter(),
	}
}

func (m *SMTPMailer) Send(user *models.User, contest *models.Contest, prefs *models.NotificationPreference) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", m.formatter.Subject(contest, prefs))
	msg.SetBody("text/html", m.formatter.Body(user, contest))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}

	return nil
}
