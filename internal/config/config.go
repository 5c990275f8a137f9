package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	HistoryBackendDatabase = "database"
	HistoryBackendYAML     = "yaml"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	History  HistoryConfig  `mapstructure:"history"`
	Repeat   RepeatConfig   `mapstructure:"repeat"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite mysql postgres"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"min=1"`
}

type HistoryConfig struct {
	Backend  string `mapstructure:"backend" validate:"oneof=database yaml"`
	YAMLFile string `mapstructure:"yaml_file" validate:"required_if=Backend yaml"`
}

type RepeatConfig struct {
	Buckets               map[string]string `mapstructure:"buckets" validate:"min=1,dive,buckets"`
	BreakReminderInterval string            `mapstructure:"break_reminder_interval" validate:"duration"`
	UseWeights            bool              `mapstructure:"use_weights"`
	FrontSlice            int               `mapstructure:"front_slice" validate:"min=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/remem")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join("databases", "remem.sqlite"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.database", "remem")
	v.SetDefault("database.username", "remem")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("history.backend", HistoryBackendDatabase)
	v.SetDefault("history.yaml_file", filepath.Join("history", "task_history.yml"))
	v.SetDefault("repeat.buckets", map[string]string{
		"short": "2m 5m 15m 30m",
		"long":  "1d 7d 30d",
	})
	v.SetDefault("repeat.break_reminder_interval", "30m")
	v.SetDefault("repeat.use_weights", false)
	v.SetDefault("repeat.front_slice", 0)

	// Bind database credentials to environment variables so they can stay out of the config file
	if err := v.BindEnv("database.password", "REMEM_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind REMEM_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("database.username", "REMEM_DB_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind REMEM_DB_USERNAME environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultPort(cfg.Database.Driver)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// DefaultPort returns the standard server port of a driver, or 0 for file based drivers.
func DefaultPort(driver string) int {
	switch driver {
	case DriverMySQL:
		return 3306
	case DriverPostgres:
		return 5432
	default:
		return 0
	}
}

// BucketNames returns the configured bucket description names in a stable order.
func (c RepeatConfig) BucketNames() []string {
	names := make([]string, 0, len(c.Buckets))
	for name := range c.Buckets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
