package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Placeholder credential values shipped in config examples. A media credential
// equal to one of these counts as "not configured" and switches uploads to the
// inline data-URI fallback.
const (
	placeholderAccessKey = "your_media_access_key"
	placeholderSecretKey = "your_media_secret_key"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Media    MediaConfig    `yaml:"media"`
	Push     PushConfig     `yaml:"push"`
	SMS      SMSConfig      `yaml:"sms"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// MediaConfig holds the S3-compatible media store configuration
type MediaConfig struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`   // custom endpoint for S3-compatible stores
	PublicURL string `yaml:"public_url"` // base URL for uploaded objects
}

// PushConfig holds web push (VAPID) configuration
type PushConfig struct {
	VAPIDPublicKey  string `yaml:"vapid_public_key"`
	VAPIDPrivateKey string `yaml:"vapid_private_key"`
	Subject         string `yaml:"subject"`
}

// SMSConfig holds the SMS relay configuration
type SMSConfig struct {
	GatewayURL string `yaml:"gateway_url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Configured reports whether real media store credentials are present.
// Presence is judged on the credential value, not on connectivity.
func (c *MediaConfig) Configured() bool {
	if c.AccessKey == "" || c.SecretKey == "" || c.Bucket == "" {
		return false
	}
	return c.AccessKey != placeholderAccessKey && c.SecretKey != placeholderSecretKey
}
