package openrouter

import "time"

type Config struct {
	BaseURL        string `envconfig:"BASE_URL" default:"https://openrouter.ai/api/v1"`
	ApiKey         string `envconfig:"API_KEY"`
	Model          string `envconfig:"MODEL" default:"google/gemini-2.5-flash"`
	Referer        string `envconfig:"REFERER" default:"https://ai-telegram-study-bot.onrender.com"`
	Title          string `envconfig:"TITLE" default:"AI Telegram Study Assistant Bot"`
	TimeoutSeconds int    `envconfig:"TIMEOUT" default:"30"` // Railway требует числа в секундах вместо duration
}

// Timeout возвращает таймаут запроса к completion API
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
