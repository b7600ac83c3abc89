package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// WahaConfig holds the WhatsApp HTTP API settings
type WahaConfig struct {
	BaseURL string
	APIKey  string
	Session string
	// CountryCode replaces a leading 0 on local numbers
	CountryCode string
}

type WahaService struct {
	cfg    WahaConfig
	client *http.Client
	// delays after seen, typing and stop typing
	pace [3]time.Duration
}

func NewWahaService(cfg WahaConfig) *WahaService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://waha:3000"
	}
	if cfg.Session == "" {
		cfg.Session = "default"
	}
	return &WahaService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		pace:   [3]time.Duration{100 * time.Millisecond, 150 * time.Millisecond, 50 * time.Millisecond},
	}
}

func (s *WahaService) makeRequest(ctx context.Context, endpoint string, payload map[string]string) error {
	payload["session"] = s.cfg.Session
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// NormalizeChatID turns a phone number or chat id into a WAHA chat id.
// Formatting characters are dropped and a leading 0 becomes countryCode.
func NormalizeChatID(chatID, countryCode string) string {
	chatID = strings.TrimSpace(chatID)

	if strings.HasSuffix(chatID, "@g.us") {
		return chatID
	}

	chatID = strings.TrimSuffix(chatID, "@c.us")
	chatID = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, chatID)

	if countryCode != "" && strings.HasPrefix(chatID, "0") {
		chatID = countryCode + strings.TrimPrefix(chatID, "0")
	}

	return chatID + "@c.us"
}

// SendMessage sends text the way a person would: seen, typing, stop typing, send
func (s *WahaService) SendMessage(ctx context.Context, chatID, text string) error {
	chatID = NormalizeChatID(chatID, s.cfg.CountryCode)

	steps := []struct {
		endpoint string
		label    string
	}{
		{"/api/sendSeen", "send seen"},
		{"/api/startTyping", "start typing"},
		{"/api/stopTyping", "stop typing"},
	}

	for i, step := range steps {
		if err := s.makeRequest(ctx, step.endpoint, map[string]string{"chatId": chatID}); err != nil {
			return fmt.Errorf("failed to %s: %w", step.label, err)
		}
		if err := sleepCtx(ctx, s.pace[i]); err != nil {
			return err
		}
	}

	if err := s.makeRequest(ctx, "/api/sendText", map[string]string{"chatId": chatID, "text": text}); err != nil {
		return fmt.Errorf("failed to send text: %w", err)
	}

	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
