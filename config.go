package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	// AllowDegradedWrites keeps batch creation answering 201 (with a
	// warning flag) when the store is unreachable. Dev-mode behavior;
	// disable in production.
	AllowDegradedWrites bool
}

func mustConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		MongoURI:            getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:             getenv("MONGO_DB", "agrosense_db"),
		Port:                getenv("PORT", "8080"),
		AllowDegradedWrites: getenv("ALLOW_DEGRADED_WRITES", "true") == "true",
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
