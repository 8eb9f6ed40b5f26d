package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings for one re-attribution run that do not come from
// command-line flags: the database connection, resolver credentials and the
// monitoring server port.
//
// Values are read from an optional YAML file and from REGEO_-prefixed
// environment variables, the environment taking precedence.
type Config struct {
	Env         string         // Env is the current environment: local, development, production.
	MetricsPort int            // MetricsPort is the monitoring server port; 0 disables the server.
	ResolverKey string         // The API key for resolvers that require one (google).
	RateLimit   int            // Resolver requests allowed per minute.
	Database    PostgresConfig // Database holds the postgres connection settings.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Load reads the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "production")
	v.SetDefault("metrics_port", 8080)
	v.SetDefault("resolver.rate_limit", 45)
	v.SetDefault("database.port", "5432")

	v.SetEnvPrefix("REGEO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	return &Config{
		Env:         v.GetString("env"),
		MetricsPort: v.GetInt("metrics_port"),
		ResolverKey: v.GetString("resolver.api_key"),
		RateLimit:   v.GetInt("resolver.rate_limit"),
		Database: PostgresConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
		},
	}, nil
}
