package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalConfigFileNames are the per-repo config files, tried in order at the
// repository root.
var LocalConfigFileNames = []string{".hookr.toml", ".hookr.yaml", ".hookr.yml"}

// LoadLocal reads the per-repo config from repoPath.
// Returns nil (no error) if no local config file exists.
// Relative command directories are resolved against repoPath.
func LoadLocal(repoPath string) (*Config, error) {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(repoPath, name)

		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: failed to read local config %s: %v", ErrConfig, path, err)
		}

		local, err := decode(path, data)
		if err != nil {
			return nil, err
		}
		local.Path = path

		for i := range local.Hooks {
			if err := expandDirectory(&local.Hooks[i], repoPath); err != nil {
				return nil, err
			}
		}
		return &local, nil
	}
	return nil, nil
}
