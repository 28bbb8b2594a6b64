package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the default output directory for a
// strategy and frequency combination
func (p *DefaultPathManager) GetDefaultOutputDir(strategy, frequency string) string {
	s := strings.ToLower(strings.TrimSpace(strategy))
	f := strings.ToLower(strings.TrimSpace(frequency))
	if s == "" {
		s = "unknown"
	}
	if f == "" {
		f = "unknown"
	}

	return filepath.Join("results", fmt.Sprintf("%s_%s", s, f))
}

// EnsureDirectoryExists creates directory if it doesn't exist
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// Package-level convenience function
func DefaultOutputDir(strategy, frequency string) string {
	manager := NewDefaultPathManager()
	return manager.GetDefaultOutputDir(strategy, frequency)
}
