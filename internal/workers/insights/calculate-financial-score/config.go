// internal/workers/insights/calculate-financial-score/config.go
package calculatefinancialscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
