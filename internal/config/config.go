// Package config loads bubu's settings from defaults, an optional YAML file
// and BUBU_* environment variables, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/bubu-hpc/bubu/internal/scheduler"
	"github.com/bubu-hpc/bubu/internal/ui"
)

const (
	AppName        = "bubu"
	EnvPrefix      = "BUBU"
	DefaultDocsURL = "https://bubu.com/docs"
)

type Config struct {
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	UI        UIConfig        `mapstructure:"ui"`
	Cluster   ClusterConfig   `mapstructure:"cluster"`
	Log       LogConfig       `mapstructure:"log"`
}

type SchedulerConfig struct {
	User          string        `mapstructure:"user"` // substituted for {user}; defaults to the login name
	ListCommand   string        `mapstructure:"list_command"`
	CancelCommand string        `mapstructure:"cancel_command"`
	SubmitCommand string        `mapstructure:"submit_command"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	Theme   string `mapstructure:"theme"` // auto, dark, light, none
	Plain   bool   `mapstructure:"plain"` // line mode even on a terminal
	DocsURL string `mapstructure:"docs_url"`
}

type ClusterConfig struct {
	Name string `mapstructure:"name"` // overrides CC_CLUSTER in the banner
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Commands returns the scheduler command templates.
func (c *Config) Commands() scheduler.Commands {
	return scheduler.Commands{
		List:   c.Scheduler.ListCommand,
		Cancel: c.Scheduler.CancelCommand,
		Submit: c.Scheduler.SubmitCommand,
	}
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("scheduler.user", CurrentUser())
	v.SetDefault("scheduler.list_command", scheduler.DefaultListCommand)
	v.SetDefault("scheduler.cancel_command", scheduler.DefaultCancelCommand)
	v.SetDefault("scheduler.submit_command", scheduler.DefaultSubmitCommand)
	v.SetDefault("scheduler.timeout", scheduler.DefaultTimeout)

	v.SetDefault("ui.theme", string(ui.ThemeAuto))
	v.SetDefault("ui.plain", false)
	v.SetDefault("ui.docs_url", DefaultDocsURL)

	v.SetDefault("cluster.name", "")

	v.SetDefault("log.file", filepath.Join(ResolveCacheDir(), AppName+".log"))
	v.SetDefault("log.level", "info")
}

// Load reads the config file at path, or config.yaml in the user config
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ResolveConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config file")
			}
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates an already prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Scheduler.Timeout <= 0 {
		return errors.WithHint(
			errors.Newf("scheduler.timeout must be positive, got %s", c.Scheduler.Timeout),
			"use a duration such as 10s",
		)
	}
	for key, raw := range map[string]string{
		"scheduler.list_command":   c.Scheduler.ListCommand,
		"scheduler.cancel_command": c.Scheduler.CancelCommand,
		"scheduler.submit_command": c.Scheduler.SubmitCommand,
	} {
		if _, err := scheduler.ParseTemplate(raw); err != nil {
			return errors.Wrap(err, key)
		}
	}
	if strings.TrimSpace(c.Scheduler.User) == "" {
		return errors.WithHint(errors.New("scheduler.user is empty"), "set BUBU_SCHEDULER_USER")
	}
	if _, err := ui.ParseTheme(c.UI.Theme); err != nil {
		return errors.Wrap(err, "ui.theme")
	}
	return nil
}

// ResolveConfigDir is where config.yaml is looked up.
func ResolveConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName)
}

// ResolveCacheDir is where the log file goes by default.
func ResolveCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, AppName)
}
