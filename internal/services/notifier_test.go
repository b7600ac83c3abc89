package services

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotifier(t *testing.T) {
	tests := []struct {
		channel string
		want    interface{}
		err     error
	}{
		{channel: "", want: AckNotifier{}},
		{channel: "ack", want: AckNotifier{}},
		{channel: " Email ", want: &EmailService{}},
		{channel: "whatsapp", want: &WahaService{}},
		{channel: "pigeon", err: ErrUnknownChannel},
	}

	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			n, err := NewNotifier(NotifierConfig{Channel: tt.channel})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, n)
		})
	}
}

func TestAckNotifier(t *testing.T) {
	to := Recipient{Name: "Police", Phone: "911"}
	receipt, err := AckNotifier{}.Notify(context.Background(), to, "Emergency")
	require.NoError(t, err)
	assert.Equal(t, ChannelAck, receipt.Channel)
	assert.Equal(t, to, receipt.Recipient)
	assert.False(t, receipt.SentAt.IsZero())
}

func TestEmailNotify(t *testing.T) {
	svc := NewEmailService(EmailConfig{Host: "smtp.test", Port: "587", User: "u", Password: "p", From: "alerts@sakhi.test"})

	var gotAddr string
	var gotTo []string
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo = addr, to
		return nil
	}

	_, err := svc.Notify(context.Background(), Recipient{Name: "Sarah", Email: "sarah@example.com"}, "Check in")
	require.NoError(t, err)
	assert.Equal(t, "smtp.test:587", gotAddr)
	assert.Equal(t, []string{"sarah@example.com"}, gotTo)

	_, err = svc.Notify(context.Background(), Recipient{Name: "NoMail"}, "Check in")
	assert.ErrorIs(t, err, ErrNoRecipientRoute)

	svc.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	_, err = svc.Notify(context.Background(), Recipient{Name: "Sarah", Email: "sarah@example.com"}, "Check in")
	assert.ErrorContains(t, err, "refused")
}

func TestEmailRequiresCredentials(t *testing.T) {
	svc := NewEmailService(EmailConfig{})
	err := svc.SendEmail([]string{"a@b.c"}, "s", "b")
	assert.ErrorContains(t, err, "SMTP credentials")
}
