package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved directories the service writes to.
type Paths struct {
	DataDir    string
	ExportsDir string
	LogsDir    string
}

// NewPaths resolves the configured directories to absolute paths.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	p := &Paths{}
	var err error
	if p.DataDir, err = filepath.Abs(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	if p.ExportsDir, err = filepath.Abs(cfg.ExportsDir); err != nil {
		return nil, fmt.Errorf("failed to resolve exports dir: %w", err)
	}
	if p.LogsDir, err = filepath.Abs(cfg.LogsDir); err != nil {
		return nil, fmt.Errorf("failed to resolve logs dir: %w", err)
	}
	return p, nil
}

// EnsureDirectories creates every configured directory.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ExportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// GetExportPath returns the full path for an export snapshot.
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists reports whether a file exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
