// Package config provides configuration loading and validation for streamkit
// applications.
//
// It uses Viper to load configuration from files and environment variables,
// with .env file support via godotenv.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("my-service", &cfg)
//
// Environment variables override file values using underscore-separated
// paths (e.g., STREAMER_PREFETCH overrides streamer.prefetch).
package config
