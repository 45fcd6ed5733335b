package config

import (
	pkgconfig "cups-server/pkg/config"
)

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
}

// LoadConfig loads the server configuration through the shared loader.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := pkgconfig.Load("server", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
