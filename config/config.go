package config

import (
	"os"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Models   ModelsConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Port string
	Mode string // gin mode: debug | release
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ModelsConfig struct {
	// Dir каталог с артефактами моделей (binary/, classify/, feature_stats.json)
	Dir string
	// Explanations выключатель подсистемы объяснимости
	Explanations bool
}

type JWTConfig struct {
	Secret string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("HTTP_PORT", "8055"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "miel_ia"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Models: ModelsConfig{
			Dir:          getEnv("MODELS_DIR", "./trained_models"),
			Explanations: getEnv("ML_EXPLANATIONS", "true") != "false",
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
