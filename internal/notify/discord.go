package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"accmon/internal/analysis"
	"accmon/internal/config"
)

// DiscordNotifier posts an analysis as an embed through a Discord webhook.
// Thresholds are only used to pick the severity markers in the embed.
type DiscordNotifier struct {
	WebhookURL string
	Timeout    time.Duration
	Thresholds config.ThresholdsConfig
}

// Send delivers the embed. Discord answers webhook executions with 204; any
// other outcome surfaces here as an error and the caller must not persist
// the new status.
func (n *DiscordNotifier) Send(ctx context.Context, a analysis.Analysis) error {
	if strings.TrimSpace(n.WebhookURL) == "" {
		return fmt.Errorf("no webhook URL configured")
	}
	id, token, err := parseWebhookURL(n.WebhookURL)
	if err != nil {
		return err
	}

	session, err := discordgo.New("")
	if err != nil {
		return fmt.Errorf("discord session: %w", err)
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	session.Client = &http.Client{Timeout: timeout}

	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{buildEmbed(a, n.Thresholds)},
	}
	if _, err := session.WebhookExecute(id, token, true, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("webhook execute: %w", err)
	}
	return nil
}

// parseWebhookURL splits a Discord webhook URL into its id and token
// segments (.../api/webhooks/{id}/{token}).
func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse webhook URL: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "webhooks" && i+2 < len(parts) {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("webhook URL does not contain /webhooks/{id}/{token}")
}
