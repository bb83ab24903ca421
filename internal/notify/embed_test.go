package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"accmon/internal/analysis"
	"accmon/internal/config"
)

var embedThresholds = config.ThresholdsConfig{
	MaxAcceptablePing:  150,
	MinServersExpected: 1000,
	MaxDataAgeMinutes:  15,
	WarningPing:        100,
	WarningServers:     1200,
}

func intp(v int) *int { return &v }

func TestParseWebhookURL(t *testing.T) {
	id, token, err := parseWebhookURL("https://discord.com/api/webhooks/1234567890/abc-DEF_123")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if id != "1234567890" || token != "abc-DEF_123" {
		t.Fatalf("id=%q token=%q", id, token)
	}
}

func TestParseWebhookURL_Invalid(t *testing.T) {
	if _, _, err := parseWebhookURL("https://discord.com/api/other/123"); err == nil {
		t.Fatalf("expected error for non-webhook URL")
	}
	if _, _, err := parseWebhookURL("https://discord.com/api/webhooks/123"); err == nil {
		t.Fatalf("expected error for missing token segment")
	}
}

func TestBuildEmbed_StatusVisuals(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		status analysis.Status
		color  int
		title  string
	}{
		{analysis.StatusUp, 0x28A745, "ONLINE"},
		{analysis.StatusDegraded, 0xFFC107, "DEGRADED"},
		{analysis.StatusDown, 0xDC3545, "OFFLINE"},
		{analysis.StatusUnknown, 0x6C757D, "UNKNOWN"},
		{analysis.StatusAPIError, 0x6610F2, "API ERROR"},
	}
	for _, tc := range cases {
		e := buildEmbed(analysis.Analysis{Status: tc.status, Timestamp: now}, embedThresholds)
		if e.Color != tc.color {
			t.Fatalf("%s: color=%#x want %#x", tc.status, e.Color, tc.color)
		}
		if !strings.Contains(e.Title, tc.title) {
			t.Fatalf("%s: title=%q want substring %q", tc.status, e.Title, tc.title)
		}
	}
}

func TestBuildEmbed_MetricFields(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	a := analysis.Analysis{
		Status:         analysis.StatusUp,
		APIStatus:      intp(1),
		PingMs:         intp(35),
		ServersCount:   intp(1600),
		PlayersCount:   intp(900),
		DataAgeMinutes: 2,
		APIResponseSec: 0.42,
		Timestamp:      now,
	}
	e := buildEmbed(a, embedThresholds)

	wantNames := []string{"Ping Servers", "Servers Online", "Players Online", "Data Age", "API Response Time"}
	for _, want := range wantNames {
		found := false
		for _, f := range e.Fields {
			if strings.Contains(f.Name, want) {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing field %q in %v", want, fieldNames(e.Fields))
		}
	}
}

func TestBuildEmbed_TruncatesIssueBlock(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	a := analysis.Analysis{Status: analysis.StatusDown, Timestamp: now}
	for i := 0; i < 8; i++ {
		a.Report = append(a.Report, fmt.Sprintf("issue line %d", i))
	}
	e := buildEmbed(a, embedThresholds)
	for _, f := range e.Fields {
		if strings.Contains(f.Name, "Issues Detected") {
			if got := strings.Count(f.Value, "•"); got != maxReportedIssues {
				t.Fatalf("issue lines=%d want %d", got, maxReportedIssues)
			}
			return
		}
	}
	t.Fatalf("issues field missing")
}

func TestBuildEmbed_OfflineDuration(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	a := analysis.Analysis{
		Status:    analysis.StatusDown,
		DownSince: now.Add(-90 * time.Minute).Format(time.RFC3339),
		Timestamp: now,
	}
	e := buildEmbed(a, embedThresholds)
	for _, f := range e.Fields {
		if strings.Contains(f.Name, "Duration Offline") {
			if !strings.Contains(f.Value, "1h 30min") {
				t.Fatalf("duration=%q want 1h 30min", f.Value)
			}
			return
		}
	}
	t.Fatalf("offline duration field missing")
}

func TestSend_RequiresWebhookURL(t *testing.T) {
	n := &DiscordNotifier{}
	if err := n.Send(context.Background(), analysis.Analysis{Status: analysis.StatusUp}); err == nil {
		t.Fatalf("expected error without webhook URL")
	}
}

func fieldNames(fields []*discordgo.MessageEmbedField) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}
