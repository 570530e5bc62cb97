package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type ResetEmailData struct {
	Link string
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Hello!</p>
<p>We received a request to reset the password for your CRM account.</p>
<p><a href="{{.Link}}">Set a new password</a></p>
<p>The link is valid for one hour. If you did not ask for a reset, ignore this e-mail.</p>`))

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dial func(m *gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	s := &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
	s.dial = func(m *gomail.Message) error {
		return gomail.NewDialer(s.Host, s.Port, s.User, s.Password).DialAndSend(m)
	}
	return s
}

func (s *EmailSender) resetMessage(to, link string) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, ResetEmailData{Link: link}); err != nil {
		return nil, fmt.Errorf("render reset template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset")
	m.SetBody("text/html", body.String())
	return m, nil
}

func (s *EmailSender) SendPasswordReset(to, link string) error {
	m, err := s.resetMessage(to, link)
	if err != nil {
		return err
	}
	if err := s.dial(m); err != nil {
		return fmt.Errorf("send reset email via SMTP: %w", err)
	}
	return nil
}
