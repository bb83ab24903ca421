package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"accmon/internal/analysis"
	"accmon/internal/client/accstatus"
	"accmon/internal/config"
	"accmon/internal/logger"
	"accmon/internal/monitor"
	"accmon/internal/notify"
	"accmon/internal/state"
)

// Exit codes: 0 means the monitor ran to completion regardless of server
// health; 1 covers UNKNOWN/API_ERROR and startup failures; 130 an interrupt.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath := os.Getenv("ACC_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("ACC_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return exitFailure
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		return exitFailure
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting ACC status monitor", zap.String("api", cfg.API.BaseURL))

	m := &monitor.Monitor{
		Client: accstatus.NewClient(
			&http.Client{Timeout: cfg.API.Timeout},
			cfg.API.BaseURL,
			cfg.API.UserAgent,
		),
		Store: &state.Store{
			StatusPath:  cfg.State.StatusFile,
			HistoryPath: cfg.State.HistoryFile,
			MaxHistory:  cfg.State.MaxHistory,
		},
		Notifier: &notify.DiscordNotifier{
			WebhookURL: cfg.Discord.WebhookURL,
			Timeout:    cfg.Discord.Timeout,
			Thresholds: cfg.Thresholds,
		},
		Logger:      log,
		Thresholds:  cfg.Thresholds,
		ForceNotify: cfg.Discord.ForceNotify,
	}

	a := m.Run(ctx)

	if errors.Is(ctx.Err(), context.Canceled) {
		log.Info("monitoring interrupted")
		return exitInterrupted
	}

	log.Info("ACC status monitor finished", zap.String("status", string(a.Status)))

	switch a.Status {
	case analysis.StatusUp, analysis.StatusDegraded, analysis.StatusDown:
		return exitOK
	default:
		return exitFailure
	}
}
