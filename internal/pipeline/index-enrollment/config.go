// internal/pipeline/index-enrollment/config.go
package indexenrollment

import "time"

type Config struct {
	Index   string
	Timeout time.Duration
}

func LoadConfig(index string) *Config {
	if index == "" {
		index = "inscricoes"
	}
	return &Config{
		Index:   index,
		Timeout: 10 * time.Second,
	}
}
