package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/stagemap/internal/transport"
	"github.com/agentstation/stagemap/pkg/constants"
	"github.com/agentstation/stagemap/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "STAGEMAP"

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Presentation
	DataSource       string
	DataToken        string // credential for private dataset URLs
	DataAuth         string // how DataToken is sent, see transport.ParseAuth
	PlaybackInterval time.Duration
	HeatEnabled      bool

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (see ApplyFlags)
//  2. STAGEMAP_* environment variables
//  3. .env and .env.local
//  4. Config file (path, or ~/.stagemap.yaml, or ./.stagemap.yaml)
//  5. Defaults
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data", constants.DefaultDataPath)
	v.SetDefault("playback_interval", constants.DefaultPlaybackInterval)
	v.SetDefault("heat_enabled", true)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".stagemap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit path must exist; the search locations are optional.
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("file", "cannot read "+configName(path), err)
		}
	}

	cfg := &Config{
		Verbose:          v.GetBool("verbose"),
		Quiet:            v.GetBool("quiet"),
		NoColor:          v.GetBool("no_color"),
		Format:           v.GetString("format"),
		ConfigFile:       v.ConfigFileUsed(),
		DataSource:       v.GetString("data"),
		DataToken:        v.GetString("data_token"),
		DataAuth:         v.GetString("data_auth"),
		PlaybackInterval: v.GetDuration("playback_interval"),
		HeatEnabled:      v.GetBool("heat_enabled"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		LogOutput:        v.GetString("log_output"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.DataSource == "" {
		return errors.NewConfigError("data", "data source must not be empty", nil)
	}
	if _, err := transport.ParseAuth(c.DataAuth); err != nil {
		return errors.NewConfigError("data_auth", err.Error(), err)
	}
	if c.PlaybackInterval < constants.MinPlaybackInterval || c.PlaybackInterval > constants.MaxPlaybackInterval {
		return errors.NewConfigError("playback", "interval must be between "+
			constants.MinPlaybackInterval.String()+" and "+constants.MaxPlaybackInterval.String(), nil)
	}
	return nil
}

// ApplyFlags copies flags the user actually set over the loaded values, so
// defaults on the command line never mask config files or environment.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "verbose":
			c.Verbose, err = fs.GetBool(f.Name)
		case "quiet":
			c.Quiet, err = fs.GetBool(f.Name)
		case "no-color":
			c.NoColor, err = fs.GetBool(f.Name)
		case "format":
			c.Format, err = fs.GetString(f.Name)
		case "log-level":
			c.LogLevel, err = fs.GetString(f.Name)
		case "data":
			c.DataSource, err = fs.GetString(f.Name)
		case "interval":
			c.PlaybackInterval, err = fs.GetDuration(f.Name)
		case "heat":
			c.HeatEnabled, err = fs.GetBool(f.Name)
		}
	})
	if err != nil {
		return errors.NewConfigError("flags", err.Error(), err)
	}
	return c.Validate()
}

func loadEnvFiles() {
	// godotenv never overrides variables that are already set, so load
	// .env.local first to give it precedence over .env.
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}

func configName(path string) string {
	if path == "" {
		return "config file"
	}
	return filepath.Base(path)
}
