// Package config carga la configuración del proceso desde el entorno
// (con soporte .env). Todo se pasa explícito a los constructores; no hay
// estado global.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBDSN string // vacío => repos in-memory (modo dev)

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	LogLevel  string
	LogFormat string
	AppName   string

	// Ventana en días para clasificar una dosis como "due_soon".
	DueSoonWindowDays int
}

func Load() Config {
	// .env es opcional; en producción se usan variables de entorno reales.
	_ = godotenv.Load()

	return Config{
		Port:  getEnv("PORT", "8080"),
		DBDSN: getEnv("DB_DSN", ""),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		AccessTTL:  time.Duration(getEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		RefreshTTL: time.Duration(getEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 24)) * time.Hour,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		AppName:   getEnv("APP_NAME", "vet-clinic-api"),

		DueSoonWindowDays: getEnvAsInt("DUE_SOON_WINDOW_DAYS", 7),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
