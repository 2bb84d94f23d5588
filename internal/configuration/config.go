package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Database DatabaseConfig
	Storage  StorageConfig
	Server   ServerConfig
	Auth     AuthConfig
	NATSURL  string
}

type DatabaseConfig struct {
	URL string
}

// StorageConfig describes the S3-compatible object storage the signer
// issues presigned PUT URLs against.
type StorageConfig struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
	UseSSL        bool
}

type ServerConfig struct {
	Port string
}

// AuthConfig is the single-admin identity. PasswordHash is a bcrypt hash;
// the plaintext password never appears in configuration.
type AuthConfig struct {
	AdminUsername string
	PasswordHash  string
	JWTSecret     string
}

// Load reads configuration from the environment. Every credential-bearing
// variable is required; missing ones are reported by name so startup fails
// fast instead of surfacing as per-request errors later.
func Load() (*Config, error) {
	var missing []string

	requireEnv := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	// A malformed value must not silently downgrade storage to plaintext.
	useSSL, err := parseBoolEnv("STORAGE_USE_SSL", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL: requireEnv("DATABASE_URL"),
		},
		Storage: StorageConfig{
			Endpoint:      requireEnv("STORAGE_ENDPOINT"),
			Region:        requireEnv("STORAGE_REGION"),
			AccessKey:     requireEnv("STORAGE_ACCESS_KEY_ID"),
			SecretKey:     requireEnv("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:    requireEnv("STORAGE_BUCKET"),
			PublicBaseURL: strings.TrimSuffix(requireEnv("STORAGE_PUBLIC_BASE_URL"), "/"),
			UseSSL:        useSSL,
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Auth: AuthConfig{
			AdminUsername: requireEnv("ADMIN_USERNAME"),
			PasswordHash:  requireEnv("ADMIN_PASSWORD_HASH"),
			JWTSecret:     requireEnv("JWT_SECRET"),
		},
		NATSURL: getEnv("NATS_URL", "nats://localhost:4222"),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean in %s: %q", key, value)
	}
	return b, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
