// Package container provides dependency injection and lifecycle management
// for the PO tracker.
package container

import (
	"fmt"
	"time"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/internal/application/service"
	"github.com/Jowenthebui/PO-Tracking/pkg/database"
)

// Config holds all configuration for the Container.
type Config struct {
	Database database.Config

	// UploadDir is where step attachments are written
	UploadDir string

	Links    service.Links
	Reminder ReminderConfig
	Lark     LarkConfig

	// Clock overrides the wall clock; nil means UTC system time
	Clock port.Clock
}

// ReminderConfig holds reminder worker settings.
type ReminderConfig struct {
	Enabled  bool
	Interval time.Duration
}

// LarkConfig holds Lark chat settings. When disabled reminders go to the log.
type LarkConfig struct {
	Enabled   bool
	AppID     string
	AppSecret string
	ChatID    string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: database.Config{
			Path:            "data/po_tracker.db",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		UploadDir: "uploads",
		Reminder: ReminderConfig{
			Enabled:  true,
			Interval: 24 * time.Hour,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("storage.upload_dir is required")
	}
	if c.Reminder.Enabled && c.Reminder.Interval <= 0 {
		return fmt.Errorf("reminder.interval must be positive")
	}
	if c.Lark.Enabled && (c.Lark.AppID == "" || c.Lark.AppSecret == "" || c.Lark.ChatID == "") {
		return fmt.Errorf("lark.app_id, lark.app_secret and lark.chat_id are required when lark is enabled")
	}
	return nil
}
