// internal/pipeline/send-confirmation/config.go
package sendconfirmation

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	AWSRegion    string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
