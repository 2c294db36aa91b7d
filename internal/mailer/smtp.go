package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	gomail "gopkg.in/mail.v2"
)

type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" || fromEmail == "" {
		return nil, errors.New("smtp host and from email are required")
	}

	dialer := gomail.NewDialer(host, port, username, password)
	dialer.Timeout = 10 * time.Second

	return &SMTPMailer{
		dialer:    dialer,
		fromEmail: fromEmail,
	}, nil
}

// Send renders the named template and delivers it, retrying transient
// failures a few times before giving up.
func (m *SMTPMailer) Send(templateFile, username, email string, data any) (int, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return -1, err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return -1, err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return -1, err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, FromName)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/html", body.String())

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if lastErr = m.dialer.DialAndSend(msg); lastErr == nil {
			return http.StatusOK, nil
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}

	return -1, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
