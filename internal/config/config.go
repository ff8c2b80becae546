package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TODO_AUTH_SIGNING_KEY.
const EnvPrefix = "TODO"

// Config is the fully resolved process configuration.
type Config struct {
	Port     string
	LogLevel string
	DB       DBConfig
	Auth     AuthConfig
	CORS     CORSConfig
}

type DBConfig struct {
	Driver string // sqlite | postgres
	Path   string
	DSN    string
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "todo.db")
	v.SetDefault("auth.token_ttl", 30*time.Minute)
	v.SetDefault("auth.bcrypt_cost", 10)
}

// Load reads configs/config.yml (or the file at path when non-empty), then applies
// TODO_* environment overrides. A .env file in the working directory is loaded first
// if present. A missing config file is not an error; a missing signing key is.
func Load(path string) (*Config, error) {
	// local development only; real deployments set the environment directly
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: strings.ToLower(v.GetString("log.level")),
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Path:   v.GetString("db.path"),
			DSN:    v.GetString("db.dsn"),
		},
		Auth: AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetStringSlice("cors.allowed_origins")),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errors.New("auth.signing_key is required (set TODO_AUTH_SIGNING_KEY)")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	switch c.DB.Driver {
	case "sqlite":
	case "postgres":
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required when db.driver is postgres")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}

// splitList accepts both YAML lists and comma-separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
