package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"accmon/internal/client/accstatus"
	"accmon/internal/config"
)

// staleSentinelMinutes stands in for the data age when the feed timestamp is
// absent or unparsable, so staleness checks always trigger.
const staleSentinelMinutes = 999

// Analysis is an immutable classification of one reading. It is what gets
// rendered into the Discord embed and appended to the metrics history.
type Analysis struct {
	Status         Status    `json:"status"`
	Issues         []Issue   `json:"issues"`
	Report         []string  `json:"report,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	APIStatus      *int      `json:"api_status,omitempty"`
	PingMs         *int      `json:"ping_ms,omitempty"`
	ServersCount   *int      `json:"servers_count,omitempty"`
	PlayersCount   *int      `json:"players_count,omitempty"`
	DataAgeMinutes float64   `json:"data_age_minutes"`
	DownSince      string    `json:"down_since,omitempty"`
	APIResponseSec float64   `json:"api_response_time"`
	Timestamp      time.Time `json:"timestamp"`
}

// Analyze maps one raw reading (or fetch failure) onto a status and issue
// list. It is a pure function of its arguments; callers pass the clock.
func Analyze(r *accstatus.Reading, fetchErr error, th config.ThresholdsConfig, now time.Time) Analysis {
	if fetchErr != nil || r == nil {
		reason := "API error"
		if fetchErr != nil {
			reason = fetchErr.Error()
		}
		return Analysis{
			Status:    StatusAPIError,
			Issues:    []Issue{IssueFetchFailed},
			Report:    []string{reason},
			Reason:    reason,
			Timestamp: now,
		}
	}

	age := dataAgeMinutes(r.Date, now)

	a := Analysis{
		APIStatus:      intPtr(r.Status),
		PingMs:         r.Ping,
		ServersCount:   intPtr(r.Servers),
		PlayersCount:   intPtr(r.Players),
		DataAgeMinutes: round1(age),
		DownSince:      r.DownSince,
		APIResponseSec: r.RequestTime.Seconds(),
		Timestamp:      now,
	}

	switch r.Status {
	case accstatus.APIStatusDown:
		a.Status = StatusDown
	case accstatus.APIStatusUnknown:
		a.Status = StatusUnknown
	case accstatus.APIStatusUp:
		a.Issues = qualityIssues(r, th, age)
		a.Status = resolveStatus(a.Issues)
	default:
		a.Status = StatusAPIError
		a.Reason = fmt.Sprintf("unexpected api status %d", r.Status)
	}

	a.Report = buildReport(r, th, age)
	return a
}

func qualityIssues(r *accstatus.Reading, th config.ThresholdsConfig, age float64) []Issue {
	var issues []Issue
	if r.Ping == nil {
		issues = append(issues, IssuePingMissing)
	} else if *r.Ping > th.MaxAcceptablePing {
		issues = append(issues, IssuePingHigh)
	}
	if r.Servers < th.MinServersExpected {
		issues = append(issues, IssueServersLow)
	}
	if age > th.MaxDataAgeMinutes {
		issues = append(issues, IssueDataOld)
	}
	return issues
}

// resolveStatus applies the downgrade policy. A lone missing ping or stale
// feed is a hard outage; only the softer single breaches (high ping, low
// server count) merely degrade.
func resolveStatus(issues []Issue) Status {
	switch {
	case len(issues) == 0:
		return StatusUp
	case len(issues) == 1 && issues[0] != IssuePingMissing && issues[0] != IssueDataOld:
		return StatusDegraded
	default:
		return StatusDown
	}
}

// buildReport produces the human-readable issue lines for the embed,
// including warning-level observations that never affect the status.
func buildReport(r *accstatus.Reading, th config.ThresholdsConfig, age float64) []string {
	var report []string

	switch r.Status {
	case accstatus.APIStatusDown:
		report = append(report, "ACC servers offline (API)")
	case accstatus.APIStatusUnknown:
		report = append(report, "ACC servers status unknown (API)")
	}

	switch {
	case r.Ping == nil && r.Status == accstatus.APIStatusUp:
		report = append(report, "ACC ping unavailable")
	case r.Ping != nil && *r.Ping > th.MaxAcceptablePing:
		report = append(report, fmt.Sprintf("ACC ping high: %dms (> %dms)", *r.Ping, th.MaxAcceptablePing))
	case r.Ping != nil && *r.Ping > th.WarningPing:
		report = append(report, fmt.Sprintf("ACC ping warning: %dms (> %dms)", *r.Ping, th.WarningPing))
	}

	switch {
	case r.Servers < th.MinServersExpected:
		report = append(report, fmt.Sprintf("ACC servers count low: %d (< %d)", r.Servers, th.MinServersExpected))
	case r.Servers < th.WarningServers:
		report = append(report, fmt.Sprintf("ACC servers count decreasing (%d)", r.Servers))
	}

	if age > th.MaxDataAgeMinutes {
		report = append(report, fmt.Sprintf("ACC data too old: %.1f minutes (> %.0f minutes)", age, th.MaxDataAgeMinutes))
	}

	return report
}

func dataAgeMinutes(date string, now time.Time) float64 {
	if strings.TrimSpace(date) == "" {
		return staleSentinelMinutes
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return staleSentinelMinutes
	}
	return now.UTC().Sub(t.UTC()).Minutes()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func intPtr(v int) *int { return &v }
