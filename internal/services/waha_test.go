package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChatID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		code     string
		expected string
	}{
		{
			name:     "local number with country code",
			input:    "0412345678",
			code:     "61",
			expected: "61412345678@c.us",
		},
		{
			name:     "international number",
			input:    "+1 (555) 123-4567",
			code:     "1",
			expected: "15551234567@c.us",
		},
		{
			name:     "group id",
			input:    "120363407813232111@g.us",
			expected: "120363407813232111@g.us",
		},
		{
			name:     "local number with suffix",
			input:    "0412345678@c.us",
			code:     "61",
			expected: "61412345678@c.us",
		},
		{
			name:     "no country code keeps leading zero",
			input:    "0412345678",
			expected: "0412345678@c.us",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeChatID(tt.input, tt.code))
		})
	}
}

func TestSendMessageSequence(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
		last  map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		last = body
		mu.Unlock()
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	waha := NewWahaService(WahaConfig{BaseURL: srv.URL, APIKey: "secret", CountryCode: "1"})
	waha.pace = [3]time.Duration{}

	receipt, err := waha.Notify(context.Background(), Recipient{Name: "Mom", Phone: "+1 (555) 123-4567"}, "I am safe")
	require.NoError(t, err)

	assert.Equal(t, []string{"/api/sendSeen", "/api/startTyping", "/api/stopTyping", "/api/sendText"}, paths)
	assert.Equal(t, "15551234567@c.us", last["chatId"])
	assert.Equal(t, "I am safe", last["text"])
	assert.Equal(t, "default", last["session"])
	assert.Equal(t, ChannelWhatsApp, receipt.Channel)
}

func TestSendMessageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session stopped", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	waha := NewWahaService(WahaConfig{BaseURL: srv.URL})
	err := waha.SendMessage(context.Background(), "15551234567", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send seen")
	assert.Contains(t, err.Error(), "422")
}
