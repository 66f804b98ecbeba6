package config

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8000"

const tokenFileName = ".expense_token"

// APIURL returns the base URL for the Expense Tracker API.
// It can be overridden with the EXPENSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("EXPENSE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

func tokenPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, tokenFileName)
}

// SaveToken stores the session token in the user's home directory,
// readable only by the owner.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// ReadToken returns the locally stored session token.
func ReadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// DeleteToken removes the locally stored session token.
func DeleteToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
