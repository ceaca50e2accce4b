package db

import (
	"fmt"

	"github.com/sitemint/sitemint-backend/pkg/env"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Schema   string
}

func NewConfig() Config {
	return Config{
		Host:     env.GetEnv("DB_HOST", "localhost"),
		Port:     env.GetEnv("DB_PORT", "5432"),
		User:     env.GetEnv("DB_USER", "postgres"),
		Password: env.GetEnv("DB_PASSWORD", "postgres"),
		Name:     env.GetEnv("DB_NAME", "sitemint"),
		Schema:   env.GetEnv("DB_SCHEMA", "sitemint"),
	}
}

func (c Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?search_path=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.Schema)
}
