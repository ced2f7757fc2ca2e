package config

import (
	"github.com/Jowenthebui/PO-Tracking/internal/application/service"
	"github.com/Jowenthebui/PO-Tracking/internal/container"
	"github.com/Jowenthebui/PO-Tracking/pkg/database"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Database: database.Config{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
		},
		UploadDir: c.Storage.UploadDir,
		Links: service.Links{
			Notion:            c.Links.Notion,
			Masterlist:        c.Links.Masterlist,
			SharePoint:        c.Links.SharePoint,
			CapexOpexTemplate: c.Links.CapexOpexTemplate,
		},
		Reminder: container.ReminderConfig{
			Enabled:  c.Reminder.Enabled,
			Interval: c.Reminder.Interval,
		},
		Lark: container.LarkConfig{
			Enabled:   c.Lark.Enabled,
			AppID:     c.Lark.AppID,
			AppSecret: c.Lark.AppSecret,
			ChatID:    c.Lark.ChatID,
		},
	}
}
