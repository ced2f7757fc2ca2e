package lark

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds a single Open API call
const DefaultRequestTimeout = 10 * time.Second

// msgTypeText is the im/v1 message type for plain text
const msgTypeText = "text"

// Config holds Lark client configuration
type Config struct {
	AppID          string
	AppSecret      string
	ChatID         string // group chat that receives reminder digests
	RequestTimeout time.Duration
}

// Validate reports missing credentials or chat
func (c Config) Validate() error {
	if c.AppID == "" || c.AppSecret == "" {
		return fmt.Errorf("lark app_id and app_secret are required")
	}
	if c.ChatID == "" {
		return fmt.Errorf("lark chat_id is required")
	}
	return nil
}

// SDKClient wraps the Lark SDK client bound to one reminder chat
type SDKClient struct {
	client *lark.Client
	chatID string
	logger *zap.Logger
}

// NewSDKClient creates a Lark client with tenant token caching
func NewSDKClient(cfg Config, logger *zap.Logger) *SDKClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	client := lark.NewClient(cfg.AppID, cfg.AppSecret,
		lark.WithLogLevel(larkcore.LogLevelWarn),
		lark.WithEnableTokenCache(true),
		lark.WithReqTimeout(timeout),
	)

	logger.Info("Lark client created", zap.String("chat_id", cfg.ChatID), zap.Duration("timeout", timeout))
	return &SDKClient{
		client: client,
		chatID: cfg.ChatID,
		logger: logger,
	}
}

// GetClient returns the underlying Lark SDK client
func (c *SDKClient) GetClient() *lark.Client {
	return c.client
}

// GetChatID returns the reminder chat ID
func (c *SDKClient) GetChatID() string {
	return c.chatID
}

// PostText posts a plain text message into chatID and returns the message id
func (c *SDKClient) PostText(ctx context.Context, chatID, text string) (string, error) {
	content, err := textContent(text)
	if err != nil {
		return "", err
	}

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(msgTypeText).
			Content(content).
			Build()).
		Build()

	resp, err := c.client.Im.Message.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to post to chat %s: %w", chatID, err)
	}
	if !resp.Success() {
		c.logger.Error("Lark rejected chat message",
			zap.String("chat_id", chatID),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return "", fmt.Errorf("lark error: code=%d, msg=%s", resp.Code, resp.Msg)
	}

	var messageID string
	if resp.Data != nil && resp.Data.MessageId != nil {
		messageID = *resp.Data.MessageId
	}
	return messageID, nil
}

// textContent encodes text as the content of a Lark "text" message
func textContent(text string) (string, error) {
	content, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal text content: %w", err)
	}
	return string(content), nil
}
