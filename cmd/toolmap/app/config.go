package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Toolmap configuration
	CatalogPath        string
	OverridesPath      string
	ActiveServers      []string
	Connect            []string
	AutoUpdateInterval time.Duration
	LoadTimeout        time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.toolmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetString("config"))
}

// LoadConfigFile loads configuration like LoadConfig but from an explicit
// file. Unlike the default search, a missing or malformed file is an error.
func LoadConfigFile(path string) (*Config, error) {
	if path == "" {
		return LoadConfig()
	}
	return loadConfig(path)
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+configFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.ConfigFileName)

		// Read config file (ignore error if not found)
		_ = viper.ReadInConfig()
	}

	config := &Config{
		// Global flags (may be overridden by cobra flags later)
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no_color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		CatalogPath:        expandHome(viper.GetString("catalog_path")),
		OverridesPath:      expandHome(viper.GetString("overrides_path")),
		ActiveServers:      stringList("active_servers"),
		Connect:            stringList("connect"),
		AutoUpdateInterval: viper.GetDuration("auto_update_interval"),
		LoadTimeout:        viper.GetDuration("load_timeout"),

		// LogLevel stays empty unless set so the -v/-q shortcuts apply
		LogLevel:  viper.GetString("log_level"),
		LogFormat: viper.GetString("log_format"),
		LogOutput: viper.GetString("log_output"),
	}

	if config.AutoUpdateInterval <= 0 {
		config.AutoUpdateInterval = constants.DefaultAutoUpdateInterval
	}
	if config.LoadTimeout < 0 {
		return nil, &errors.ValidationError{Field: "load_timeout", Value: config.LoadTimeout, Message: "cannot be negative"}
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults() {
	viper.SetDefault("overrides_path", defaultOverridesPath())
	viper.SetDefault("auto_update_interval", constants.DefaultAutoUpdateInterval)
	viper.SetDefault("load_timeout", constants.LoadTimeout)
	viper.SetDefault("log_format", "auto")
	viper.SetDefault("log_output", "stderr")
}

// defaultOverridesPath returns ~/.toolmap/servers.yaml, or a path relative
// to the working directory when the home directory is unknown.
func defaultOverridesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(constants.ConfigDirName, constants.OverridesFileName)
	}
	return filepath.Join(home, constants.ConfigDirName, constants.OverridesFileName)
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// stringList reads a list setting that may be a YAML sequence or a comma
// separated environment value.
func stringList(key string) []string {
	var out []string
	for _, item := range viper.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
