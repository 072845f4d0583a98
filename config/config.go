package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	Port        string

	// GSTComponentRate is the rate of each GST half (CGST and SGST).
	// 0.015 each gives the shop's standard 3% on ornaments.
	GSTComponentRate float64
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL:      os.Getenv("POSTGRES_URL"),
		MongoURL:         os.Getenv("MONGO_URL"),
		DBType:           os.Getenv("DB_TYPE"),
		Port:             os.Getenv("PORT"),
		GSTComponentRate: 0.015,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if env := os.Getenv("GST_COMPONENT_RATE"); env != "" {
		if rate, err := strconv.ParseFloat(env, 64); err == nil && rate >= 0 {
			cfg.GSTComponentRate = rate
		} else {
			log.Printf("invalid GST_COMPONENT_RATE %q, keeping default", env)
		}
	}
	return cfg
}
