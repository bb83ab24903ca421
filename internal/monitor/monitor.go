package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"accmon/internal/analysis"
	"accmon/internal/client/accstatus"
	"accmon/internal/config"
	"accmon/internal/state"
)

// Notifier delivers an analysis to the configured channel.
type Notifier interface {
	Send(ctx context.Context, a analysis.Analysis) error
}

// Monitor runs one fetch → classify → notify → persist cycle per invocation.
// Scheduling is external; there is no loop in here.
type Monitor struct {
	Client      *accstatus.Client
	Store       *state.Store
	Notifier    Notifier
	Logger      *zap.Logger
	Thresholds  config.ThresholdsConfig
	ForceNotify bool
}

// Run executes one monitoring pass and returns the resulting analysis.
// Notification and persistence failures are logged, never fatal: the run
// always produces an analysis, and a failed delivery leaves the previous
// persisted status untouched so the next run retries the same comparison.
func (m *Monitor) Run(ctx context.Context) analysis.Analysis {
	reading, fetchErr := m.Client.GetStatus(ctx)
	if fetchErr != nil {
		m.Logger.Warn("status fetch failed", zap.Error(fetchErr))
	}

	a := analysis.Analyze(reading, fetchErr, m.Thresholds, time.Now().UTC())

	var lastPtr *analysis.Status
	if last, ok := m.Store.LastStatus(); ok {
		lastPtr = &last
	}

	m.logAnalysis(a, lastPtr)

	if analysis.ShouldNotify(a.Status, lastPtr, m.ForceNotify) {
		m.logNotifyCause(a.Status, lastPtr)
		if err := m.Notifier.Send(ctx, a); err != nil {
			m.Logger.Warn("notification failed, last status not updated", zap.Error(err))
		} else if err := m.Store.SaveStatus(a.Status); err != nil {
			m.Logger.Warn("save last status failed", zap.Error(err))
		} else {
			m.Logger.Info("notification sent and status saved", zap.String("status", string(a.Status)))
		}
	} else {
		m.Logger.Info("no significant status change, skipping notification")
	}

	if n, err := m.Store.AppendHistory(a); err != nil {
		m.Logger.Warn("append metrics history failed", zap.Error(err))
	} else {
		m.Logger.Info("metrics history saved", zap.Int("entries", n))
	}

	return a
}

func (m *Monitor) logAnalysis(a analysis.Analysis, last *analysis.Status) {
	fields := []zap.Field{
		zap.String("status", string(a.Status)),
	}
	if last != nil {
		fields = append(fields, zap.String("last_status", string(*last)))
	} else {
		fields = append(fields, zap.String("last_status", "none"))
	}
	if a.PingMs != nil {
		fields = append(fields, zap.Int("ping_ms", *a.PingMs))
	}
	if a.ServersCount != nil {
		fields = append(fields, zap.Int("servers", *a.ServersCount))
	}
	if a.PlayersCount != nil {
		fields = append(fields, zap.Int("players", *a.PlayersCount))
	}
	fields = append(fields, zap.Float64("data_age_minutes", a.DataAgeMinutes))
	if len(a.Report) > 0 {
		fields = append(fields, zap.Strings("issues", a.Report))
	}
	m.Logger.Info("analysis complete", fields...)
}

func (m *Monitor) logNotifyCause(current analysis.Status, last *analysis.Status) {
	switch {
	case m.ForceNotify:
		m.Logger.Info("notification forced")
	case last == nil:
		m.Logger.Info("first monitoring run")
	case current != *last:
		m.Logger.Info("status change detected",
			zap.String("from", string(*last)),
			zap.String("to", string(current)),
		)
	default:
		m.Logger.Info("critical status detected", zap.String("status", string(current)))
	}
}
