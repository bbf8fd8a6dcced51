package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const fileName = "worklog.yaml"

type Config struct {
	DataDir         string
	DBPath          string
	Location        *time.Location
	BreakAlertAfter time.Duration
	NoteWindowTTL   time.Duration
	PollInterval    time.Duration
	EventScanAt     string // HH:MM local time of the daily calendar scan
	AnnounceChannel string
	ManifestPath    string
}

type fileConfig struct {
	Timezone        string `yaml:"timezone"`
	BreakAlertAfter string `yaml:"break_alert_after"`
	NoteWindowTTL   string `yaml:"note_window_ttl"`
	PollInterval    string `yaml:"poll_interval"`
	EventScanAt     string `yaml:"event_scan_at"`
	AnnounceChannel string `yaml:"announce_channel"`
	ManifestPath    string `yaml:"manifest_path"`
}

// New builds the config for a data directory, applying worklog.yaml
// overrides when the file exists.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}

	cfg := Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "worklog.db"),
		BreakAlertAfter: 2 * time.Hour,
		NoteWindowTTL:   10 * time.Minute,
		PollInterval:    time.Minute,
		EventScanAt:     "09:00",
		AnnounceChannel: "announcements",
		ManifestPath:    filepath.Join(dataDir, "plugins", "plugins.json"),
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, fileName))
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		cfg.Location = defaultLocation()
		return cfg, nil
	}

	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Location = defaultLocation()
	if fc.Timezone != "" {
		loc, err := time.LoadLocation(fc.Timezone)
		if err != nil {
			return Config{}, fmt.Errorf("load timezone %q: %w", fc.Timezone, err)
		}
		cfg.Location = loc
	}
	if err := applyDuration(&cfg.BreakAlertAfter, fc.BreakAlertAfter, "break_alert_after"); err != nil {
		return Config{}, err
	}
	if err := applyDuration(&cfg.NoteWindowTTL, fc.NoteWindowTTL, "note_window_ttl"); err != nil {
		return Config{}, err
	}
	if err := applyDuration(&cfg.PollInterval, fc.PollInterval, "poll_interval"); err != nil {
		return Config{}, err
	}
	if fc.EventScanAt != "" {
		if _, err := time.Parse("15:04", fc.EventScanAt); err != nil {
			return Config{}, fmt.Errorf("event_scan_at must be HH:MM: %w", err)
		}
		cfg.EventScanAt = fc.EventScanAt
	}
	if fc.AnnounceChannel != "" {
		cfg.AnnounceChannel = fc.AnnounceChannel
	}
	if fc.ManifestPath != "" {
		cfg.ManifestPath = fc.ManifestPath
	}
	return cfg, nil
}

func applyDuration(dst *time.Duration, value, key string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive", key)
	}
	*dst = d
	return nil
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.UTC
	}
	return loc
}
