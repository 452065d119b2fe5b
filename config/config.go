package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Legacy   LegacyConfig   `mapstructure:"legacy"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Address  string `mapstructure:"address"`
	HTTPPort string `mapstructure:"http_port"`
}

// DatabaseConfig новая схема. DSN также берётся из NEW_SCHOOL_DATABASE.
type DatabaseConfig struct {
	Driver       string        `mapstructure:"driver"` // postgres|mysql|sqlite
	DSN          string        `mapstructure:"dsn"`
	LogLevel     string        `mapstructure:"log_level"`
	SlowQuery    time.Duration `mapstructure:"slow_query"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	AutoMigrate  bool          `mapstructure:"auto_migrate"`
}

// LegacyConfig старая схема. DSN также берётся из OLD_SCHOOL_DATABASE.
// Пустой DSN означает, что старая БД не подключается.
type LegacyConfig struct {
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
	Migrate bool   `mapstructure:"migrate"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load читает YAML (если path не пуст или найден schoolnet.yaml) и переменные окружения
// SCHOOLNET_<SECTION>_<KEY>. NEW_SCHOOL_DATABASE и OLD_SCHOOL_DATABASE задают DSN.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SCHOOLNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.dsn", "NEW_SCHOOL_DATABASE", "SCHOOLNET_DATABASE_DSN")
	_ = v.BindEnv("legacy.dsn", "OLD_SCHOOL_DATABASE", "SCHOOLNET_LEGACY_DSN")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("schoolnet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/schoolnet")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.http_port", "8080")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query", 200*time.Millisecond)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("legacy.driver", "postgres")
	v.SetDefault("legacy.dsn", "")
	v.SetDefault("legacy.migrate", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
}

var supportedDrivers = map[string]bool{"postgres": true, "mysql": true, "sqlite": true}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required (or NEW_SCHOOL_DATABASE)")
	}
	if !supportedDrivers[c.Database.Driver] {
		return fmt.Errorf("database.driver: unsupported %q", c.Database.Driver)
	}
	if c.Legacy.DSN != "" && !supportedDrivers[c.Legacy.Driver] {
		return fmt.Errorf("legacy.driver: unsupported %q", c.Legacy.Driver)
	}
	if c.Server.HTTPPort == "" {
		return errors.New("server.http_port is required")
	}
	return nil
}
