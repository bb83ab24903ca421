package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"accmon/internal/analysis"
	"accmon/internal/config"
)

const (
	statusPageURL = "https://acc-status.jonatan.net/"
	footerText    = "ACC API Status Monitor • Official Data Source: " + statusPageURL
	footerIconURL = "https://cdn.cloudflare.steamstatic.com/steam/apps/805550/header.jpg"
)

const maxReportedIssues = 5

func buildEmbed(a analysis.Analysis, th config.ThresholdsConfig) *discordgo.MessageEmbed {
	var (
		color int
		emoji string
		title string
	)
	switch a.Status {
	case analysis.StatusUp:
		color, emoji, title = 0x28A745, "🟢", "🏎️ ACC SERVERS ONLINE"
	case analysis.StatusDegraded:
		color, emoji, title = 0xFFC107, "🟠", "🏎️ ACC SERVERS DEGRADED"
	case analysis.StatusDown:
		color, emoji, title = 0xDC3545, "🔴", "🏎️ ACC SERVERS OFFLINE"
	case analysis.StatusUnknown:
		color, emoji, title = 0x6C757D, "❓", "🏎️ ACC SERVERS UNKNOWN"
	default:
		color, emoji, title = 0x6610F2, "⚠️", "🏎️ ACC API ERROR"
	}

	apiStatusValue := "`n/a`"
	if a.APIStatus != nil {
		apiStatusValue = fmt.Sprintf("`%d` %s", *a.APIStatus, apiStatusLabel(*a.APIStatus))
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "📊 State Detected", Value: fmt.Sprintf("`%s`", a.Status), Inline: true},
		{Name: "🤖 API Status", Value: apiStatusValue, Inline: true},
		{Name: "📅 Last Update", Value: a.Timestamp.Format("02/01/2006 15:04:05"), Inline: true},
	}

	if a.PingMs != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   pingMarker(*a.PingMs, th) + " Ping Servers",
			Value:  fmt.Sprintf("`%d ms`", *a.PingMs),
			Inline: true,
		})
	}
	if a.ServersCount != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   serversMarker(*a.ServersCount, th) + " Servers Online",
			Value:  fmt.Sprintf("`%d`", *a.ServersCount),
			Inline: true,
		})
	}
	if a.PlayersCount != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "👥 Players Online",
			Value:  fmt.Sprintf("`%d`", *a.PlayersCount),
			Inline: true,
		})
	}

	ageMarker := "🟢"
	if a.DataAgeMinutes > th.MaxDataAgeMinutes {
		ageMarker = "🔴"
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   ageMarker + " Data Age",
		Value:  fmt.Sprintf("`%.1f minutes ago`", a.DataAgeMinutes),
		Inline: true,
	})

	if a.APIResponseSec > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "⏱️ API Response Time",
			Value:  fmt.Sprintf("`%.2fs`", a.APIResponseSec),
			Inline: true,
		})
	}

	if len(a.Report) > 0 {
		lines := a.Report
		if len(lines) > maxReportedIssues {
			lines = lines[:maxReportedIssues]
		}
		var b strings.Builder
		for _, line := range lines {
			fmt.Fprintf(&b, "• %s\n", line)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Issues Detected",
			Value: fmt.Sprintf("```\n%s```", b.String()),
		})
	}

	if v, ok := offlineDuration(a.DownSince, a.Timestamp); ok {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "⏳ Duration Offline",
			Value:  fmt.Sprintf("`%s`", v),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:     emoji + " " + title,
		Color:     color,
		Timestamp: a.Timestamp.Format(time.RFC3339),
		URL:       statusPageURL,
		Fields:    fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text:    footerText,
			IconURL: footerIconURL,
		},
	}
}

func apiStatusLabel(code int) string {
	switch code {
	case 1:
		return "(UP)"
	case 0:
		return "(DOWN)"
	case -1:
		return "(UNKNOWN)"
	default:
		return "(ERROR)"
	}
}

func pingMarker(ping int, th config.ThresholdsConfig) string {
	switch {
	case ping <= th.WarningPing:
		return "🟢"
	case ping <= th.MaxAcceptablePing:
		return "🟡"
	default:
		return "🔴"
	}
}

func serversMarker(servers int, th config.ThresholdsConfig) string {
	switch {
	case servers >= th.WarningServers:
		return "🟢"
	case servers >= th.MinServersExpected:
		return "🟡"
	default:
		return "🔴"
	}
}

func offlineDuration(downSince string, now time.Time) (string, bool) {
	if strings.TrimSpace(downSince) == "" {
		return "", false
	}
	t, err := time.Parse(time.RFC3339, downSince)
	if err != nil {
		return "", false
	}
	d := now.Sub(t)
	if d < 0 {
		return "", false
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dmin", hours, minutes), true
}
