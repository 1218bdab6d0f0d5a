package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// managedModelPath is where the model artifact is mounted when the service
// runs inside the managed execution environment.
const managedModelPath = "/workdir/user_input/model"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URI string
}

type ModelConfig struct {
	Path    string
	Managed bool
}

type LoggerConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root.
	// If none is found, plain environment variables are used (Docker/K8s).
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	uri := os.Getenv("DATABASE_URI")
	if uri == "" {
		return nil, fmt.Errorf("DATABASE_URI environment variable is required")
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	managed := getEnv("MANAGED_RUNTIME", "0") == "1"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			URI: uri,
		},
		Model: ModelConfig{
			Path:    getEnv("MODEL_PATH", "./model/classifier.json"),
			Managed: managed,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// ResolvedPath returns the model artifact location. In the managed runtime
// the artifact is always at a fixed mount point, overriding MODEL_PATH.
func (m ModelConfig) ResolvedPath() string {
	if m.Managed {
		return managedModelPath
	}
	return m.Path
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
