package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

// SendVerificationLink mails the identity-provider verification link to a
// freshly registered address.
func (m *Mailer) SendVerificationLink(to, link string) error {
	body := fmt.Sprintf(
		`<p>Please verify your email by clicking the following link:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	return m.Send(to, "Verify Your Email", body)
}

// SendPasswordResetLink mails a password-reset link.
func (m *Mailer) SendPasswordResetLink(to, link string) error {
	body := fmt.Sprintf(
		`<p>Reset your password using the following link:</p><p><a href="%s">%s</a></p>`,
		link, link,
	)
	return m.Send(to, "Reset Your Password", body)
}
