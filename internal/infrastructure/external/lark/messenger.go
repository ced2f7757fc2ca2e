package lark

import (
	"context"
	"fmt"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"go.uber.org/zap"
)

// chatPoster is the part of SDKClient the messenger needs
type chatPoster interface {
	PostText(ctx context.Context, chatID, text string) (string, error)
}

// Messenger posts reminder digests to a Lark group chat
type Messenger struct {
	poster chatPoster
	chatID string
	logger *zap.Logger
}

// NewMessenger creates a messenger that posts into the client's chat
func NewMessenger(client *SDKClient, logger *zap.Logger) *Messenger {
	return &Messenger{
		poster: client,
		chatID: client.GetChatID(),
		logger: logger,
	}
}

// Notify posts the digest as a plain text chat message
func (m *Messenger) Notify(ctx context.Context, digest string) error {
	if m.chatID == "" {
		return fmt.Errorf("chat_id cannot be empty")
	}
	if digest == "" {
		return fmt.Errorf("digest cannot be empty")
	}

	messageID, err := m.poster.PostText(ctx, m.chatID, digest)
	if err != nil {
		m.logger.Error("Failed to post reminder digest", zap.String("chat_id", m.chatID), zap.Error(err))
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	m.logger.Info("Reminder digest posted",
		zap.String("chat_id", m.chatID),
		zap.String("message_id", messageID))
	return nil
}

var _ port.Notifier = (*Messenger)(nil)
