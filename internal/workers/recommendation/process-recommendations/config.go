package processrecommendations

import "time"

type Config struct {
	Timeout time.Duration
	UseAI   bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		UseAI:   true,
	}
}
