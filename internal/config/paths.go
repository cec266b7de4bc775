package config

import (
	"os"
	"path/filepath"
)

// Resolve joins relative report paths onto BaseDir. Absolute paths and an
// empty BaseDir leave the paths untouched, so they stay relative to the
// working directory.
func (r ReportConfig) Resolve() ReportConfig {
	if r.BaseDir == "" {
		return r
	}
	r.RosterPath = resolveAgainst(r.BaseDir, r.RosterPath)
	r.ScoresPath = resolveAgainst(r.BaseDir, r.ScoresPath)
	r.OutputPath = resolveAgainst(r.BaseDir, r.OutputPath)
	return r
}

func resolveAgainst(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// FileExists checks if a regular file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
