package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Log        LogConfig        `mapstructure:"log"`
	API        APIConfig        `mapstructure:"api"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Discord    DiscordConfig    `mapstructure:"discord"`
	State      StateConfig      `mapstructure:"state"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ThresholdsConfig holds the alert and warning levels applied to a reading.
// Warning levels only affect reporting, never the resolved status.
type ThresholdsConfig struct {
	MaxAcceptablePing  int     `mapstructure:"max_acceptable_ping"`
	MinServersExpected int     `mapstructure:"min_servers_expected"`
	MaxDataAgeMinutes  float64 `mapstructure:"max_data_age_minutes"`
	WarningPing        int     `mapstructure:"warning_ping"`
	WarningServers     int     `mapstructure:"warning_servers"`
}

type DiscordConfig struct {
	WebhookURL  string        `mapstructure:"webhook_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ForceNotify bool          `mapstructure:"force_notify"`
}

type StateConfig struct {
	StatusFile  string `mapstructure:"status_file"`
	HistoryFile string `mapstructure:"history_file"`
	MaxHistory  int    `mapstructure:"max_history"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ACC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("api.base_url", "https://acc-status.jonatan.net")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.user_agent", "ACC-Monitor/1.0")
	v.SetDefault("thresholds.max_acceptable_ping", 150)
	v.SetDefault("thresholds.min_servers_expected", 1000)
	v.SetDefault("thresholds.max_data_age_minutes", 15)
	v.SetDefault("thresholds.warning_ping", 100)
	v.SetDefault("thresholds.warning_servers", 1200)
	v.SetDefault("discord.webhook_url", "")
	v.SetDefault("discord.timeout", "15s")
	v.SetDefault("discord.force_notify", false)
	v.SetDefault("state.status_file", "acc_last_status.txt")
	v.SetDefault("state.history_file", "acc_metrics.json")
	v.SetDefault("state.max_history", 200)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
