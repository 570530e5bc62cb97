package mail

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSendPasswordReset(t *testing.T) {
	s := NewEmailSender("smtp.local", 587, "u", "p", "no-reply@1-day-hr.ru")

	var sent *gomail.Message
	s.dial = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	require.NoError(t, s.SendPasswordReset("anna@example.com", "https://crm/reset?token=abc"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"anna@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@1-day-hr.ru"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"Password reset"}, sent.GetHeader("Subject"))
}

func TestSendPasswordReset_DialError(t *testing.T) {
	s := NewEmailSender("smtp.local", 587, "u", "p", "from@x")
	s.dial = func(*gomail.Message) error { return errors.New("connection refused") }

	err := s.SendPasswordReset("anna@example.com", "https://crm/reset")
	assert.ErrorContains(t, err, "connection refused")
}

func TestResetTemplate_EscapesLink(t *testing.T) {
	var body bytes.Buffer
	require.NoError(t, resetTemplate.Execute(&body, ResetEmailData{Link: `https://crm/reset?token=a"b`}))
	assert.NotContains(t, body.String(), `a"b`)
	assert.Contains(t, body.String(), "https://crm/reset?token=")
}
