package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/polesk/storebot/internal/domain/model"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	ChatToken        string
	PlatformAddress  string
	RunAddress       string
	WebhookPublicKey string
	HistoryLimit     int
	PollTimeout      time.Duration
	ShutdownTimeout  time.Duration
	Presets          []model.Preset
}

const (
	defaultRunAddress      = ":8080"
	defaultHistoryLimit    = 100
	defaultPollTimeout     = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		ChatToken:        getString(lookup, "CHAT_TOKEN", ""),
		PlatformAddress:  getString(lookup, "PLATFORM_ADDRESS", ""),
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		WebhookPublicKey: getString(lookup, "WEBHOOK_PUBLIC_KEY", ""),
		HistoryLimit:     getInt(lookup, "HISTORY_LIMIT", defaultHistoryLimit),
		PollTimeout:      getDuration(lookup, "POLL_TIMEOUT", defaultPollTimeout),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}
	presetsFile := getString(lookup, "PRESETS_FILE", "")

	fs := flag.NewFlagSet("storebot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollTimeoutStr     = cfg.PollTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.PlatformAddress, "p", cfg.PlatformAddress, "Chat platform base URL")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.WebhookPublicKey, "webhook-key", cfg.WebhookPublicKey, "Hex public key for webhook signature checks")
	fs.IntVar(&cfg.HistoryLimit, "history-limit", cfg.HistoryLimit, "Store channel messages scanned per status update")
	fs.StringVar(&pollTimeoutStr, "poll-timeout", pollTimeoutStr, "Event feed long-poll hold time")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&presetsFile, "presets", presetsFile, "YAML file overriding the preset catalog")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollTimeout, err = time.ParseDuration(pollTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid poll timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}

	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = defaultPollTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ChatToken == "" {
		return nil, fmt.Errorf("chat token must be provided")
	}

	if cfg.PlatformAddress == "" {
		return nil, fmt.Errorf("platform address must be provided")
	}

	cfg.Presets = model.DefaultPresets()
	if presetsFile != "" {
		if cfg.Presets, err = loadPresets(presetsFile); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

type presetsDocument struct {
	Presets []model.Preset `yaml:"presets"`
}

func loadPresets(path string) ([]model.Preset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var parsed presetsDocument
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return nil, fmt.Errorf("parse presets file: %w", err)
	}
	if len(parsed.Presets) == 0 {
		return nil, fmt.Errorf("presets file defines no presets")
	}
	for _, p := range parsed.Presets {
		if p.Key == "" || p.Label == "" {
			return nil, fmt.Errorf("preset entries require both key and label")
		}
	}
	return parsed.Presets, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
