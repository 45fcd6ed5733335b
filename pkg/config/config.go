// Package config loads application configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const configDir = "configs"

// Load reads the configuration file for the given service name and
// unmarshals it into out. The file is resolved from CONFIG_PATH when set,
// otherwise from configs/{APP_ENV}/{service}.yaml with a fallback to
// configs/example/. Environment variables prefixed with the upper-cased
// service name override file values.
func Load(serviceName string, out interface{}) error {
	v := viper.New()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" && strings.HasSuffix(configPath, ".yaml") {
		// CONFIG_PATH may point directly at a file.
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		return v.Unmarshal(out)
	}

	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		v.SetConfigName(serviceName)
		v.AddConfigPath(filepath.Join(configDir, "example"))
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}

	return v.Unmarshal(out)
}
