package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the app needs at startup. Values come from
// environment variables, an optional config.yaml, or the built-in dev
// defaults, in that order of precedence.
type Config struct {
	Env      string
	Addr     string
	Pepper   string
	HMACKey  string
	CSRFKey  string
	PageSize int
	// IndexCacheTTL bounds how long the rendered index page is replayed.
	IndexCacheTTL time.Duration
	MediaDir      string
	Database      PostgresConfig
}

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// ConnectionInfo builds the connection string for the postgres driver.
func (pc PostgresConfig) ConnectionInfo() string {
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable",
			pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

// IsProd reports whether the app runs in production mode.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// LoadConfig loads the config using Viper and returns it.
func LoadConfig() Config {
	viper.SetDefault("ENV", "dev")
	viper.SetDefault("SERVER_ADDR", "localhost:8000")
	viper.SetDefault("PEPPER", "secret-random-string")
	viper.SetDefault("HMAC_KEY", "secret-hmac-key")
	viper.SetDefault("CSRF_KEY", "32-byte-long-auth-key-for-csrf!!")
	viper.SetDefault("PAGE_SIZE", 10)
	viper.SetDefault("INDEX_CACHE_TTL", "20s")
	viper.SetDefault("MEDIA_DIR", "media")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "goblog")

	// Load env variables.
	viper.AutomaticEnv()

	// Optional config file support.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // ignore error if no file

	return Config{
		Env:           viper.GetString("ENV"),
		Addr:          viper.GetString("SERVER_ADDR"),
		Pepper:        viper.GetString("PEPPER"),
		HMACKey:       viper.GetString("HMAC_KEY"),
		CSRFKey:       viper.GetString("CSRF_KEY"),
		PageSize:      viper.GetInt("PAGE_SIZE"),
		IndexCacheTTL: parseDuration(viper.GetString("INDEX_CACHE_TTL"), 20*time.Second),
		MediaDir:      viper.GetString("MEDIA_DIR"),
		Database: PostgresConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}
