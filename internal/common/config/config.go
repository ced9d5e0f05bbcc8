// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	HTTP          HTTPConfig         `mapstructure:"http"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Protocol      ProtocolConfig     `mapstructure:"protocol"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Stages        StagesConfig       `mapstructure:"stages"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	MaxUploadBytes  int64  `mapstructure:"max_upload_bytes"` // multipart memory + body cap
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TTL for protocol lookup keys, in hours. Zero means no expiry.
	ProtocolTTLHours int `mapstructure:"protocol_ttl_hours"`
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
	Enabled   bool     `mapstructure:"enabled"`
}

// StorageConfig holds document storage settings.
type StorageConfig struct {
	// Root directory for applicant document buckets.
	Root string `mapstructure:"root"`
}

// ProtocolConfig holds protocol code issuance settings.
type ProtocolConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// NotificationConfig holds confirmation messaging settings.
type NotificationConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	AWSRegion    string `mapstructure:"aws_region"`
	FromEmail    string `mapstructure:"from_email"`
	EmailEnabled bool   `mapstructure:"email_enabled"`
	SMSEnabled   bool   `mapstructure:"sms_enabled"`
}

// StageConfig holds the core settings applicable to every pipeline stage.
type StageConfig struct {
	Timeout    int `mapstructure:"timeout"`     // milliseconds
	MaxRetries int `mapstructure:"max_retries"` // For error handling
}

type StagesConfig struct {
	Validate StageConfig `mapstructure:"validate"`
	Persist  StageConfig `mapstructure:"persist"`
	Store    StageConfig `mapstructure:"store"`
	Index    StageConfig `mapstructure:"index"`
	Notify   StageConfig `mapstructure:"notify"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
