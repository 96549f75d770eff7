package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Keys persisted in the local env file across bootstrap runs. These are the
// only durable local state outside the database.
const (
	EnvKeyAgentID     = "RETELL_AGENT_ID"
	EnvKeyPhoneNumber = "RETELL_PHONE_NUMBER"
)

// EnvFile is a small key-value store backed by a dotenv-format file. The
// bootstrap CLI uses it to cache vendor identifiers between invocations.
type EnvFile struct {
	path string
}

// NewEnvFile creates a store for the given path, creating an empty file when
// none exists so later writes succeed.
func NewEnvFile(path string) (*EnvFile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to create env file %s: %w", path, err)
		}
		f.Close()
	}
	return &EnvFile{path: path}, nil
}

// Get returns the value for key, or an empty string when absent.
func (e *EnvFile) Get(key string) (string, error) {
	values, err := godotenv.Read(e.path)
	if err != nil {
		return "", fmt.Errorf("failed to read env file %s: %w", e.path, err)
	}
	return values[key], nil
}

// Set writes key=value, preserving all other entries in the file.
func (e *EnvFile) Set(key, value string) error {
	values, err := godotenv.Read(e.path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", e.path, err)
	}
	values[key] = value
	if err := godotenv.Write(values, e.path); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", e.path, err)
	}
	return nil
}

// Path returns the backing file path.
func (e *EnvFile) Path() string {
	return e.path
}
