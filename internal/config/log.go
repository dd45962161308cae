package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// OpenLog redirects the standard logger to <data>/logs/<name>, appending.
// The returned file must be closed by the caller on exit.
func OpenLog(dir, name, prefix string) (*os.File, error) {
	logsDir := LogsDir(dir)
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	path := filepath.Join(logsDir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetPrefix(prefix)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	return f, nil
}
