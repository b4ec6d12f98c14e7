// Package notes persists finished dictations as timestamped markdown files.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Save writes text to dir as a markdown file named after the current time,
// creating dir if needed. It returns the path of the written file.
func Save(dir, text string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating notes dir: %w", err)
	}
	path := filepath.Join(dir, time.Now().Format("20060102_150405")+".md")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing note: %w", err)
	}
	return path, nil
}
