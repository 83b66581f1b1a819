// Package config provides environment-based configuration.
//
// Loads from .env file (godotenv) in development, validates required
// fields, and supplies defaults for the rest.
package config
