// Package config provides the relgate configuration file and directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the relgate configuration directory.
//
// Resolution:
//   - $RELGATE_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/relgate if set (respects XDG on any platform)
//   - %AppData%/relgate on Windows
//   - ~/.config/relgate on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("RELGATE_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relgate")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "relgate")
		}
	}

	// macOS and Linux: ~/.config/relgate
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "relgate")
}
