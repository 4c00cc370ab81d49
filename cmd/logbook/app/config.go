package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/logbook/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Catalog configuration
	LogDir      string
	LoadTimeout time.Duration

	// Server configuration
	Host           string
	Port           int
	PathPrefix     string
	DefaultPerPage int
	MaxPerPage     int
	APIKey         string
	CORSOrigins    []string

	// Logging configuration
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.logbook.yaml or ./.logbook.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindEnv()
	setDefaults()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(constants.ConfigName)
	}

	// A missing config file is not an error.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		LogDir:      viper.GetString("log_dir"),
		LoadTimeout: viper.GetDuration("load_timeout"),

		Host:           viper.GetString("host"),
		Port:           viper.GetInt("port"),
		PathPrefix:     viper.GetString("path_prefix"),
		DefaultPerPage: viper.GetInt("default_per_page"),
		MaxPerPage:     viper.GetInt("max_per_page"),
		APIKey:         viper.GetString("api_key"),
		CORSOrigins:    viper.GetStringSlice("cors_origins"),

		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags, so
// flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// settingKeys are read from LOGBOOK_<KEY> first, then <KEY>.
var settingKeys = []string{
	"log_dir", "load_timeout", "host", "port", "path_prefix",
	"default_per_page", "max_per_page", "api_key", "cors_origins",
}

func bindEnv() {
	for _, key := range settingKeys {
		env := strings.ToUpper(key)
		_ = viper.BindEnv(key, "LOGBOOK_"+env, env)
	}
}

func setDefaults() {
	viper.SetDefault("log_dir", constants.DefaultLogDir)
	viper.SetDefault("load_timeout", constants.DefaultLoadTimeout)
	viper.SetDefault("host", constants.DefaultHost)
	viper.SetDefault("port", constants.DefaultPort)
	viper.SetDefault("path_prefix", constants.DefaultPathPrefix)
	viper.SetDefault("default_per_page", constants.DefaultPerPage)
	viper.SetDefault("max_per_page", constants.MaxPerPage)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local never overrides variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
