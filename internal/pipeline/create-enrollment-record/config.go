// internal/pipeline/create-enrollment-record/config.go
package createenrollmentrecord

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
