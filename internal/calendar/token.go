package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// LoadToken reads a cached OAuth token. A missing file returns
// (nil, nil) so callers can fall through to the auth flow.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("calendar: read token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("calendar: parse token: %w", err)
	}
	return &token, nil
}

// SaveToken writes the token to path, creating parent directories.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("calendar: create token dir: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("calendar: encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("calendar: write token: %w", err)
	}
	return nil
}
