package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory where the current executable resides.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil && strings.TrimSpace(exe) != "" {
		if resolved, resolveErr := filepath.EvalSymlinks(exe); resolveErr == nil && strings.TrimSpace(resolved) != "" {
			exe = resolved
		}
		return filepath.Dir(exe)
	}

	if wd, wdErr := os.Getwd(); wdErr == nil && strings.TrimSpace(wd) != "" {
		return wd
	}
	return "."
}

// LogDir resolves log.dir against the executable directory. Empty means stdout only.
func (c *AppConfig) LogDir() string {
	target := strings.TrimSpace(c.Log.Dir)
	if target == "" {
		return ""
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(ExecutableDir(), target))
}
