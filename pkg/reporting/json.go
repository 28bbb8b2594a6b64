package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileReporter implements file output functionality
type DefaultFileReporter struct{}

// NewDefaultFileReporter creates a new file reporter
func NewDefaultFileReporter() *DefaultFileReporter {
	return &DefaultFileReporter{}
}

// WriteResultJSON writes any result payload as indented JSON
func (r *DefaultFileReporter) WriteResultJSON(result interface{}, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// PrintJSON prints any result payload as indented JSON to stdout
func PrintJSON(result interface{}) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
