package email

import (
	"fmt"
	"net/smtp"
)

// Sender delivers a single HTML email. The contact service depends on this
// interface so tests can stub delivery.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Mailer sends HTML email over SMTP with plain auth.
type Mailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

func NewMailer(host, port, sender, password string) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Sender:   sender,
		Password: password,
	}
}

// Send delivers an HTML email to a single recipient.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)

	msg := []byte("To: " + to + "\r\n" +
		"From: " + m.Sender + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody + "\r\n")

	address := m.Host + ":" + m.Port

	err := smtp.SendMail(address, auth, m.Sender, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
