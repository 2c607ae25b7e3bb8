// Package fs provides filesystem-backed adapters: document load/save,
// default directories and the on-disk image cache.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/storyseq,
// or system temp directory if home is unavailable.
func DefaultConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the default data directory (catalogs live here).
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultCacheDir returns the default cache directory (image cache lives
// here).
func DefaultCacheDir() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(envVar, homeFallback string) string {
	if xdg := os.Getenv(envVar); xdg != "" {
		return filepath.Join(xdg, "storyseq")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "storyseq")
	}
	return filepath.Join(home, homeFallback, "storyseq")
}
