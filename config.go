package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-level settings
type Config struct {
	Port string
}

// LoadConfig reads settings from the environment. A .env file in the
// working directory is honored when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load .env: %v", err)
	}
	return &Config{
		Port: getEnv("PORT", "3000"),
	}
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}
