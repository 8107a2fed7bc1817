package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrMissingSetting is returned by Validate when a required key is empty
var ErrMissingSetting = errors.New("missing required setting")

// Config holds everything a tudu invocation needs
type Config struct {
	// Base URL of the task server, e.g. https://tasks.example.com
	APIURL   string `yaml:"api_url" mapstructure:"api_url"`
	Email    string `yaml:"email" mapstructure:"email"`
	Password string `yaml:"password" mapstructure:"password"`

	// Go layout used to show due dates to people
	DateFormat string `yaml:"date_format" mapstructure:"date_format"`

	Journal JournalConfig `yaml:"journal" mapstructure:"journal"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// JournalConfig configures the local mutation journal
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures diagnostics output
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() *Config {
	return &Config{
		DateFormat: "02/01/2006",
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join(Dir(), "journal.db"),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Dir returns the tudu directory in the user's home
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tudu"
	}
	return filepath.Join(home, ".tudu")
}

// DefaultPath returns the path of the global config file
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load merges defaults, the config file at path (DefaultPath when empty)
// and TUDU_* environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("tudu")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about
	v.SetDefault("api_url", cfg.APIURL)
	v.SetDefault("email", cfg.Email)
	v.SetDefault("password", cfg.Password)
	v.SetDefault("date_format", cfg.DateFormat)
	v.SetDefault("journal.enabled", cfg.Journal.Enabled)
	v.SetDefault("journal.path", cfg.Journal.Path)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		timeToLayoutHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	return cfg, nil
}

// timeToLayoutHook turns YAML timestamps back into text. An unquoted
// date_format such as 2006-01-02 is read as a date, not a string.
func timeToLayoutHook(from, to reflect.Type, data any) (any, error) {
	t, isTime := data.(time.Time)
	if !isTime || to.Kind() != reflect.String {
		return data, nil
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02"), nil
	}
	return t.Format(time.RFC3339Nano), nil
}

// Validate checks that the server settings are present
func (c *Config) Validate() error {
	var missing []string
	if c.APIURL == "" {
		missing = append(missing, "api_url")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (set them in %s or via TUDU_* env vars)",
			ErrMissingSetting, strings.Join(missing, ", "), DefaultPath())
	}
	return nil
}

// Redacted returns a copy safe to print
func (c *Config) Redacted() *Config {
	out := *c
	if out.Password != "" {
		out.Password = "********"
	}
	return &out
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteDefault writes a starter config file. An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := DefaultConfig()
	cfg.APIURL = "http://localhost:3002"
	body, err := cfg.Marshal()
	if err != nil {
		return err
	}
	header := "# tudu configuration\n# api_url, email and password are required.\n"
	return os.WriteFile(path, append([]byte(header), body...), 0600)
}
