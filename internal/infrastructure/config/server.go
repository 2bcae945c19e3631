package config

import "time"

// ServerConfig holds HTTP API server configuration
type ServerConfig struct {
	// Host to bind the HTTP server
	Host string `mapstructure:"host"`

	// Port for the HTTP server
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`

	// ReadTimeout limits how long reading a full request may take
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout limits how long writing a full response may take
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}
