package state

import (
	"os"
	"path/filepath"
	"strconv"
)

const themeFileName = "darkmode"

// LoadDarkMode reads the persisted dark-mode flag from the user config
// directory. A missing or unreadable file means the default (light).
func LoadDarkMode() bool {
	path, err := themePath()
	if err != nil {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	dark, err := strconv.ParseBool(string(data))
	if err != nil {
		return false
	}
	return dark
}

// SaveDarkMode persists the dark-mode flag. It is the only durable piece of
// client state.
func SaveDarkMode(dark bool) error {
	path, err := themePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.FormatBool(dark)), 0o644)
}

func themePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docproc", themeFileName), nil
}
