// internal/workers/insights/check-scheme-eligibility/config.go
package checkschemeeligibility

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
