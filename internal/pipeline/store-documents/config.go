// internal/pipeline/store-documents/config.go
package storedocuments

import "time"

type Config struct {
	// Root is the base directory for all applicant document folders.
	Root    string
	Timeout time.Duration
}

func LoadConfig(root string) *Config {
	if root == "" {
		root = "inscricoes"
	}
	return &Config{
		Root:    root,
		Timeout: 10 * time.Second,
	}
}
