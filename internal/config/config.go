package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"todo-api/internal/constants"
)

// Config holds application level configuration aggregated from env and an
// optional config file.
type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	TokenSecretKey         string
	RefreshTokenSecretKey  string
	AuthTokenTTLSeconds    int
	RefreshTokenTTLSeconds int
}

// Load reads configuration from environment variables and an optional
// config file in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "3306")
	v.SetDefault("db_user", "todouser")
	v.SetDefault("db_password", "todopassword")
	v.SetDefault("db_name", "todo")
	v.SetDefault("token_secret_key", "default-secret-key-change-me")
	v.SetDefault("refresh_token_secret_key", "default-refresh-secret-change-me")
	v.SetDefault("auth_token_ttl_seconds", constants.AuthTokenTTLSeconds)
	v.SetDefault("refresh_token_ttl_seconds", constants.RefreshTokenTTLSeconds)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	cfg := &Config{
		Port:                   v.GetString("port"),
		GinMode:                v.GetString("gin_mode"),
		DBHost:                 v.GetString("db_host"),
		DBPort:                 v.GetString("db_port"),
		DBUser:                 v.GetString("db_user"),
		DBPassword:             v.GetString("db_password"),
		DBName:                 v.GetString("db_name"),
		TokenSecretKey:         v.GetString("token_secret_key"),
		RefreshTokenSecretKey:  v.GetString("refresh_token_secret_key"),
		AuthTokenTTLSeconds:    v.GetInt("auth_token_ttl_seconds"),
		RefreshTokenTTLSeconds: v.GetInt("refresh_token_ttl_seconds"),
	}

	if cfg.TokenSecretKey == cfg.RefreshTokenSecretKey {
		return nil, fmt.Errorf("auth and refresh token secrets must differ")
	}

	return cfg, nil
}
