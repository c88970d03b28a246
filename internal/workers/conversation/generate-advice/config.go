// internal/workers/conversation/generate-advice/config.go
package generateadvice

import "time"

type Config struct {
	// Timeout bounds the whole job, including profile lookup and any
	// generative enhancement.
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
