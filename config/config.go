package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	Port        string `envconfig:"PORT" default:":8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	// TimeZone is the civil calendar used for dashboard day boundaries.
	TimeZone string `envconfig:"TIME_ZONE" default:"America/Sao_Paulo"`
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("Warning: .env file not found, using environment variables or defaults.")
		} else {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment configuration: %v", err)
	}

	return &cfg
}
