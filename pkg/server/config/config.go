/* Copyright (C) 2024, 2025 Notepool contributors
 *
 * This file is part of Notepool.
 *
 * Notepool is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * Notepool is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with Notepool.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package config provides the server configuration
package config

import (
	"os"

	"github.com/pkg/errors"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// DefaultDBPath is the default path to the SQLite database file used when
	// no DATABASE_URL is configured
	DefaultDBPath = "data/notepool.db"
)

var (
	// ErrPortInvalid is an error for a configuration with an invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrAuthSecretMissing is an error for a configuration missing the token secret
	ErrAuthSecretMissing = errors.New("AuthTokenSecret is empty")
	// ErrDBMissing is an error for a configuration with no database target
	ErrDBMissing = errors.New("Neither DatabaseURL nor DBPath is set")
	// ErrMinioIncomplete is an error for an incomplete object storage configuration
	ErrMinioIncomplete = errors.New("Incomplete MinIO configuration")
)

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise default
func getOrEnv(value, envKey, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	return defaultVal
}

// Config is an application configuration
type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	DBPath          string
	AuthTokenSecret string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
	LogLevel        string
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	DBPath          string
	AuthTokenSecret string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
	LogLevel        string
}

// New constructs and returns a new validated config.
// Empty string params will fall back to environment variables and defaults.
func New(p Params) (Config, error) {
	c := Config{
		AppEnv:          getOrEnv(p.AppEnv, "APP_ENV", AppEnvProduction),
		Port:            getOrEnv(p.Port, "PORT", "3001"),
		DatabaseURL:     getOrEnv(p.DatabaseURL, "DATABASE_URL", ""),
		DBPath:          getOrEnv(p.DBPath, "DB_PATH", DefaultDBPath),
		AuthTokenSecret: getOrEnv(p.AuthTokenSecret, "AUTH_TOKEN_SECRET", ""),
		MinioEndpoint:   getOrEnv(p.MinioEndpoint, "MINIO_ENDPOINT", ""),
		MinioAccessKey:  getOrEnv(p.MinioAccessKey, "MINIO_ACCESS_KEY", ""),
		MinioSecretKey:  getOrEnv(p.MinioSecretKey, "MINIO_SECRET_KEY", ""),
		MinioBucket:     getOrEnv(p.MinioBucket, "MINIO_BUCKET", "notes"),
		MinioUseSSL:     p.MinioUseSSL || readBoolEnv("MINIO_USE_SSL"),
		LogLevel:        getOrEnv(p.LogLevel, "LOG_LEVEL", "info"),
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if c.Port == "" {
		return ErrPortInvalid
	}
	if c.AuthTokenSecret == "" {
		return ErrAuthSecretMissing
	}
	if c.DatabaseURL == "" && c.DBPath == "" {
		return ErrDBMissing
	}
	if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" || c.MinioBucket == "" {
		return ErrMinioIncomplete
	}

	return nil
}
