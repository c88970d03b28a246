// internal/workers/engagement/deliver-nudge/config.go
package delivernudge

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   30 * time.Second,
		FromEmail: "nudges@finlight.in",
	}
}
