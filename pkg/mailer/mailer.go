package mailer

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/smtp"
	"time"

	"kanflow-backend/pkg/config"

	"github.com/emersion/go-message/mail"
)

// Mailer sends transactional mail over SMTP
type Mailer struct {
	config *config.Config
}

// NewMailer creates a new Mailer
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{config: cfg}
}

// SendVerificationCode mails the one-time code entered during sign-up
func (m *Mailer) SendVerificationCode(to, code string) error {
	subject := "Verify your Kanflow account"
	body := fmt.Sprintf(
		"Welcome to Kanflow!\r\n\r\nYour verification code is: %s\r\n\r\nThe code expires in 15 minutes. If you did not sign up, you can ignore this email.\r\n",
		code,
	)
	return m.send(to, subject, body)
}

// SendPasswordReset mails the deep link that opens the reset screen in the app
func (m *Mailer) SendPasswordReset(to, link string) error {
	subject := "Reset your Kanflow password"
	body := fmt.Sprintf(
		"A password reset was requested for your account.\r\n\r\nOpen this link on your device to choose a new password:\r\n%s\r\n\r\nThe link expires in 1 hour. If you did not request a reset, you can ignore this email.\r\n",
		link,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	msg, err := m.buildMessage(to, subject, body)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", m.config.SMTPHost, m.config.SMTPPort)
	auth := smtp.PlainAuth("", m.config.SMTPUser, m.config.SMTPPass, m.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, m.config.MailFrom, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Printf("[Mailer] Sent %q to %s", subject, to)
	return nil
}

// buildMessage composes an RFC 5322 message with a single text/plain part
func (m *Mailer) buildMessage(to, subject, body string) ([]byte, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetAddressList("From", []*mail.Address{{Name: "Kanflow", Address: m.config.MailFrom}})
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, err
	}

	tw, err := mw.CreateInline()
	if err != nil {
		return nil, err
	}
	var th mail.InlineHeader
	th.Set("Content-Type", "text/plain; charset=utf-8")
	pw, err := tw.CreatePart(th)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return nil, err
	}
	pw.Close()
	tw.Close()
	mw.Close()

	return buf.Bytes(), nil
}
