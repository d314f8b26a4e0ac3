package utils

import (
	"errors"
	"fmt"
	"os"
	"path"
)

// ErrUserInitiatedExit is returned when the user asked for something which
// terminates the program without an error, such as printing the version.
var ErrUserInitiatedExit = errors.New("user initiated exit")

// GetVoyagoConfigDir returns the path to the voyago configuration directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/.voyago, unless overridden by VOYAGO_CONFIG_HOME.
func GetVoyagoConfigDir() (string, error) {
	if voyagoConfigHome := os.Getenv("VOYAGO_CONFIG_HOME"); voyagoConfigHome != "" {
		return voyagoConfigHome, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, ".voyago"), nil
}
