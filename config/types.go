package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Salesforce SalesforceConfig `mapstructure:"salesforce"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SalesforceConfig holds the connected-app credentials and API settings
type SalesforceConfig struct {
	LoginURL      string `mapstructure:"login_url"`
	ClientID      string `mapstructure:"client_id"`
	ClientSecret  string `mapstructure:"client_secret"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	SecurityToken string `mapstructure:"security_token"`
	APIVersion    string `mapstructure:"api_version"`
}

// HTTPConfig contains transport timeout settings
type HTTPConfig struct {
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
