package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultAPIURL is the default SmartChef backend endpoint
	DefaultAPIURL = "http://localhost:8000"

	// DefaultTimeout bounds every HTTP request
	DefaultTimeout = 15 * time.Second

	// DefaultLogLevel keeps the CLI quiet unless asked
	DefaultLogLevel = "warn"

	// EnvPrefix is prepended to environment overrides, e.g. SMARTCHEF_API_URL
	EnvPrefix = "SMARTCHEF"

	// SettingsFileName is the optional settings file (without extension)
	SettingsFileName = "settings"
)

// Settings keys
const (
	KeyAPIURL   = "api_url"
	KeyTimeout  = "timeout"
	KeyLogLevel = "log_level"
)

// Settings holds the runtime settings of the CLI
type Settings struct {
	APIURL   string
	Timeout  time.Duration
	LogLevel string
}

// NewViper returns a viper instance with defaults and environment overrides applied.
// The settings file is looked up in dir when dir is not empty.
func NewViper(dir string) *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(SettingsFileName)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	return v
}

// LoadSettings reads the settings file (if any) and resolves the final settings.
// A missing settings file is not an error.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	s := &Settings{
		APIURL:   strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIURL)), "/"),
		Timeout:  v.GetDuration(KeyTimeout),
		LogLevel: v.GetString(KeyLogLevel),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the resolved settings
func (s *Settings) Validate() error {
	if s.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if !strings.HasPrefix(s.APIURL, "http://") && !strings.HasPrefix(s.APIURL, "https://") {
		return fmt.Errorf("api_url must start with http:// or https://, got %q", s.APIURL)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}
	return nil
}
