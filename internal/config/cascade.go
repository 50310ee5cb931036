package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgerlanc/tramp/internal/constants"
	"github.com/dgerlanc/tramp/internal/logger"
)

// Discover walks from startDir toward the filesystem root, parsing every
// .tramp.toml it finds, nearest first. A config with root = true stops the
// ascent after that level. Afterwards the user-level config is appended,
// unless suppressed (see userLookupDisabled). Missing files are skipped;
// present-but-unreadable or malformed files abort the walk.
func Discover(startDir string) ([]Loaded, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start directory %s: %w", startDir, err)
	}

	var configs []Loaded
	for {
		path := filepath.Join(dir, constants.ConfigFileName)
		loaded, err := ParseFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No config at this level.
		case err != nil:
			return nil, err
		default:
			logger.Debug("discovered config", "path", path)
			configs = append(configs, loaded)
			if loaded.Config.Root {
				logger.Debug("cascade stopped by root flag", "path", path)
				return appendUserConfig(configs)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return appendUserConfig(configs)
}

func appendUserConfig(configs []Loaded) ([]Loaded, error) {
	if userLookupDisabled(configs) {
		logger.Debug("user config lookup disabled")
		return configs, nil
	}

	path, ok := UserConfigPath()
	if !ok {
		return configs, nil
	}

	loaded, err := ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return configs, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("discovered user config", "path", path)
	return append(configs, loaded), nil
}

// userLookupDisabled resolves the two flags that can suppress the
// user-level config. For each flag, the nearest config that defines it
// decides; an explicit no-external-lookup = false overrides an ancestor's
// true.
func userLookupDisabled(configs []Loaded) bool {
	for _, c := range configs {
		if c.noExternalLookupDefined {
			if c.Config.NoExternalLookup {
				return true
			}
			break
		}
	}
	for _, c := range configs {
		if name := c.Config.RootConfigLookupDisableEnvVar; name != "" {
			return isEnvTruthy(name)
		}
	}
	return false
}

// UserConfigPath returns the user-level config path: $TRAMP_USER_CONFIG if
// set, otherwise .tramp.toml in the home directory. ok is false when no
// home directory can be resolved.
func UserConfigPath() (path string, ok bool) {
	if p := os.Getenv(constants.EnvUserConfig); p != "" {
		return p, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Debug("no home directory, skipping user config", "error", err)
		return "", false
	}
	return filepath.Join(home, constants.ConfigFileName), true
}

// isEnvTruthy reports whether an environment variable holds a truthy value:
// non-empty and not "0", "false", or "no" (case-insensitive).
func isEnvTruthy(name string) bool {
	value := os.Getenv(name)
	if value == "" {
		return false
	}
	switch strings.ToLower(value) {
	case "0", "false", "no":
		return false
	}
	return true
}

// Merge flattens discovered configs into the effective rule sequence,
// preserving discovery order so nearer rules win ties.
func Merge(configs []Loaded) Merged {
	var merged Merged
	for _, loaded := range configs {
		for _, rule := range loaded.Config.Rules {
			merged.Rules = append(merged.Rules, SourcedRule{Rule: rule, Source: loaded.Path})
		}
	}
	for _, loaded := range configs {
		if loaded.noExternalLookupDefined {
			merged.NoExternalLookup = loaded.Config.NoExternalLookup
			break
		}
	}
	for _, loaded := range configs {
		if name := loaded.Config.RootConfigLookupDisableEnvVar; name != "" {
			merged.DisableEnvVar = name
			break
		}
	}
	return merged
}

// Load discovers, parses, and merges every config visible from startDir.
// The result is rebuilt on every call; nothing is cached.
func Load(startDir string) (Merged, error) {
	configs, err := Discover(startDir)
	if err != nil {
		return Merged{}, err
	}
	merged := Merge(configs)
	logger.Debug("configuration loaded", "files", len(configs), "rules", len(merged.Rules))
	return merged, nil
}
