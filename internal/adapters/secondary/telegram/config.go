package telegram

type Config struct {
	BotToken       string `envconfig:"BOT_TOKEN"`
	UseWebhook     string `envconfig:"USE_WEBHOOK"` // Railway требует строки
	WebhookURL     string `envconfig:"WEBHOOK_URL"`
	WebhookSecret  string `envconfig:"WEBHOOK_SECRET"`
	PollingTimeout int    `envconfig:"POLLING_TIMEOUT"`
	// SendReplies включает доставку ответа через sendMessage
	// (в polling-режиме это единственный канал ответа)
	SendReplies string `envconfig:"SEND_REPLIES"`
}

// IsWebhookEnabled парсит строку UseWebhook в boolean
func (c *Config) IsWebhookEnabled() bool {
	return c.UseWebhook == "true" || c.UseWebhook == "1" || c.UseWebhook == "True"
}

// ShouldSendReplies парсит строку SendReplies в boolean
func (c *Config) ShouldSendReplies() bool {
	return c.SendReplies == "true" || c.SendReplies == "1" || c.SendReplies == "True"
}
