// Package config loads tinysql's runtime configuration: the snapshot file
// path and the log level, resolved through a layered precedence — defaults,
// then a TOML file, then environment variables, then explicit flags, each
// later source overriding the former.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config is tinysql's full runtime configuration.
type Config struct {
	DBPath   string `toml:"db_path"`
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when nothing else overrides it.
func Default() Config {
	return Config{
		DBPath:   "db.pesapal",
		LogLevel: "info",
	}
}

// Load resolves a Config from defaults < configPath's TOML file (if it
// exists) < TINYSQL_* environment variables. flagDBPath and flagLogLevel
// are applied last, when non-empty, representing explicit --db/--log-level
// flags, which always win.
func Load(configPath, flagDBPath, flagLogLevel string) (Config, error) {
	cfg := Default()

	if configPath != "" {
		if _, err := toml.DecodeFile(configPath, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix("TINYSQL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("log_level", cfg.LogLevel)
	cfg.DBPath = v.GetString("db_path")
	cfg.LogLevel = v.GetString("log_level")

	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}
