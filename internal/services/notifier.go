package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

var (
	ErrUnknownChannel   = errors.New("unknown notification channel")
	ErrNoRecipientRoute = errors.New("recipient has no address for this channel")
)

// Channel names accepted by NewNotifier
const (
	ChannelAck      = "ack"
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
)

// Recipient is someone an alert can be sent to
type Recipient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (r Recipient) String() string {
	if r.Phone != "" {
		return fmt.Sprintf("%s (%s)", r.Name, r.Phone)
	}
	return fmt.Sprintf("%s <%s>", r.Name, r.Email)
}

// Receipt describes a delivered or acknowledged notification
type Receipt struct {
	Channel   string    `json:"channel"`
	Recipient Recipient `json:"recipient"`
	Message   string    `json:"message"`
	SentAt    time.Time `json:"sent_at"`
}

// Notifier sends safety alerts to trusted contacts
type Notifier interface {
	Notify(ctx context.Context, to Recipient, message string) (Receipt, error)
}

// AckNotifier performs no I/O. It only logs and acknowledges the alert.
type AckNotifier struct{}

func (AckNotifier) Notify(ctx context.Context, to Recipient, message string) (Receipt, error) {
	log.Printf("SMS alert sent to %s: %s", to, message)
	return Receipt{Channel: ChannelAck, Recipient: to, Message: message, SentAt: time.Now()}, nil
}

// Notify sends message by email. Recipients without an address are refused.
func (s *EmailService) Notify(ctx context.Context, to Recipient, message string) (Receipt, error) {
	if to.Email == "" {
		return Receipt{}, fmt.Errorf("%w: %s", ErrNoRecipientRoute, to.Name)
	}
	if err := s.SendEmail([]string{to.Email}, "SakhiGPS safety alert", message); err != nil {
		return Receipt{}, err
	}
	return Receipt{Channel: ChannelEmail, Recipient: to, Message: message, SentAt: time.Now()}, nil
}

// Notify sends message over WhatsApp to the recipient's phone
func (s *WahaService) Notify(ctx context.Context, to Recipient, message string) (Receipt, error) {
	if to.Phone == "" {
		return Receipt{}, fmt.Errorf("%w: %s", ErrNoRecipientRoute, to.Name)
	}
	if err := s.SendMessage(ctx, to.Phone, message); err != nil {
		return Receipt{}, err
	}
	return Receipt{Channel: ChannelWhatsApp, Recipient: to, Message: message, SentAt: time.Now()}, nil
}

// NotifierConfig selects and configures a notification channel
type NotifierConfig struct {
	Channel string
	Email   EmailConfig
	Waha    WahaConfig
}

// NewNotifier returns the notifier for cfg.Channel. Empty means ack.
func NewNotifier(cfg NotifierConfig) (Notifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Channel)) {
	case "", ChannelAck:
		return AckNotifier{}, nil
	case ChannelEmail:
		return NewEmailService(cfg.Email), nil
	case ChannelWhatsApp:
		return NewWahaService(cfg.Waha), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, cfg.Channel)
	}
}
