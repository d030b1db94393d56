package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

// Scopes requested for the service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// LoadCredentials returns service-account JSON, preferring the inline value
// (injected from a secret store) over the file at path. It returns nil and
// no error when neither is present, which callers treat as "remote disabled".
func LoadCredentials(inline, path string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

// NewHTTPClient returns an HTTP client authorized as the service account.
func NewHTTPClient(ctx context.Context, credentialsJSON []byte) (*http.Client, error) {
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	return cfg.Client(ctx), nil
}
