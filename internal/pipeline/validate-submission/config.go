// internal/pipeline/validate-submission/config.go
package validatesubmission

import "time"

// Validation is pure CPU work; the timeout exists for interface
// consistency with the other stages.
type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
