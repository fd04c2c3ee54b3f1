// Package paths resolves configuration, data, and export directory
// locations across platforms.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "RENTLEDGER_CONFIG_DIR"
	EnvDataDir   = "RENTLEDGER_DATA_DIR"
)

// ExportDirName is the app-private fallback folder for archives when the
// platform downloads directory is unavailable.
const ExportDirName = "exports"

// platformDir holds platform-detection functions that can be overridden
// in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/rentledger (fallback ~/.config/rentledger)
// macOS:   ~/Library/Application Support/rentledger
// Windows: %APPDATA%/rentledger
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "rentledger"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "rentledger"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "rentledger"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/rentledger (fallback ~/.local/share/rentledger)
// macOS:   ~/Library/Application Support/rentledger
// Windows: %APPDATA%/rentledger
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "rentledger"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "rentledger"), nil
	default:
		// macOS and Windows: same as config dir.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "rentledger"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > RENTLEDGER_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > configYAMLValue > RENTLEDGER_DATA_DIR env >
// DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// DownloadsDir returns the user-visible downloads directory, the
// preferred destination for exported archives.
func DownloadsDir() (string, error) {
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}

// CreateExportFile creates name in the user-visible downloads directory,
// falling back to the app-private exports folder under dataDir. The
// create itself is the probe: any failure in the downloads attempt, not
// just an unreachable directory, lands the file in the fallback.
func CreateExportFile(dataDir, name string) (*os.File, error) {
	if dl, err := DownloadsDir(); err == nil {
		if err := os.MkdirAll(dl, 0o755); err == nil {
			if f, err := os.Create(filepath.Join(dl, name)); err == nil {
				return f, nil
			}
		}
	}
	fallback := filepath.Join(dataDir, ExportDirName)
	if err := os.MkdirAll(fallback, 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(fallback, name))
}
