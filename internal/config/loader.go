package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads the configuration from file, environment, and defaults.
// Precedence: environment > config file > defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/snacktrack/")

	v.SetEnvPrefix("SNACKTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is fine; env vars and defaults carry it.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", "127.0.0.1:8642")
	v.SetDefault("http.shutdown_timeout", "15s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.add_source", false)

	v.SetDefault("database.path", "data/snacktrack.db")

	v.SetDefault("provider.base_url", "https://www.zomato.com")
	v.SetDefault("provider.timeout", "15s")
	v.SetDefault("provider.max_retries", 2)

	v.SetDefault("webhook.timeout", "10s")

	v.SetDefault("tracker.schedule", "@every 1m")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "snacktrack")
}
