package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/containrrr/shoutrrr"
)

// MessagingService pushes short text notifications to a chat app through a
// shoutrrr URL (telegram://, discord://, generic+https://, ...).
type MessagingService struct {
	url  string
	send func(url, message string) error
}

func NewMessagingService(rawURL string) *MessagingService {
	return &MessagingService{url: normalizeMessagingURL(rawURL), send: shoutrrr.Send}
}

// IsConfigured reports whether a destination URL is set.
func (s *MessagingService) IsConfigured() bool {
	return s.url != ""
}

// Send delivers message to the configured destination.
func (s *MessagingService) Send(message string) error {
	if !s.IsConfigured() {
		return ErrMessagingNotConfigured
	}
	if err := s.send(s.url, message); err != nil {
		return fmt.Errorf("messaging send failed: %w", err)
	}
	return nil
}

var discordWebhookRegex = regexp.MustCompile(`^https://discord(?:app)?\.com/api/webhooks/(\d+)/([a-zA-Z0-9_-]+)`)

// normalizeMessagingURL accepts raw Discord webhook links and bare HTTP(S)
// endpoints and rewrites them into shoutrrr service URLs.
func normalizeMessagingURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := discordWebhookRegex.FindStringSubmatch(raw); len(m) == 3 {
		return fmt.Sprintf("discord://%s@%s", m[2], m[1])
	}
	if strings.HasPrefix(raw, "https://") || strings.HasPrefix(raw, "http://") {
		return "generic+" + raw
	}
	return raw
}
