// Package config carga la configuración del servicio desde el entorno.
// Todo es opcional salvo lo que el propio main decida exigir: sin DB_DSN
// se usan repos in-memory y sin JWT_SECRET el servicio arranca en modo
// dev (header X-Debug-User-ID).
package config

import (
	"os"
	"strings"
)

type Config struct {
	Port      string
	DBDSN     string
	JWTSecret string
	LogLevel  string
	LogFormat string
	AppName   string
}

func Load() Config {
	return Config{
		Port:      getEnvOrDefault("PORT", "8080"),
		DBDSN:     strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
		AppName:   getEnvOrDefault("APP_NAME", "pet-health-tracker"),
	}
}

func getEnvOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
