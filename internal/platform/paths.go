// Package platform resolves per-user file locations for config, data, cache and logs.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const defaultAppName = "wishlist"

// Paths holds the per-user file locations of the app.
type Paths struct {
	ConfigPath string
	DataDir    string
	DBPath     string
	CacheDir   string
	LogPath    string
}

// BaseDirs holds the OS-level directories app paths are derived from.
type BaseDirs struct {
	Config string
	Data   string
	Cache  string
}

// Options defines optional settings for path resolution.
type Options struct {
	AppName string
	// DevMode suffixes the app name with "-dev" so dev builds never touch real data.
	DevMode bool
}

// envOverrides lists, per GOOS, the variables that replace each base dir when set.
// Operating systems without an entry keep the base dirs as given.
var envOverrides = map[string]struct{ config, data, cache []string }{
	"linux": {
		config: []string{"XDG_CONFIG_HOME"},
		data:   []string{"XDG_DATA_HOME"},
		cache:  []string{"XDG_CACHE_HOME"},
	},
	"windows": {
		config: []string{"APPDATA"},
		data:   []string{"LOCALAPPDATA"},
		cache:  []string{"LOCALAPPDATA"},
	},
}

// DefaultPaths returns the paths for the default app name.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{})
}

// DefaultPathsWithOptions resolves paths for the current OS and process environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	base, err := osBaseDirs(runtime.GOOS)
	if err != nil {
		return Paths{}, err
	}
	return Resolve(runtime.GOOS, os.Getenv, base, AppDirName(opts))
}

// AppDirName returns the directory and file stem used for opts.
func AppDirName(opts Options) string {
	name := strings.TrimSpace(opts.AppName)
	if name == "" {
		name = defaultAppName
	}
	if opts.DevMode {
		name += "-dev"
	}
	return name
}

func osBaseDirs(goos string) (BaseDirs, error) {
	var base BaseDirs
	var err error
	if base.Config, err = os.UserConfigDir(); err != nil {
		return BaseDirs{}, fmt.Errorf("user config dir: %w", err)
	}
	if base.Cache, err = os.UserCacheDir(); err != nil {
		return BaseDirs{}, fmt.Errorf("user cache dir: %w", err)
	}
	base.Data = base.Config
	if goos == "linux" {
		home, err := os.UserHomeDir()
		if err != nil {
			return BaseDirs{}, fmt.Errorf("user home dir: %w", err)
		}
		base.Data = filepath.Join(home, ".local", "share")
	}
	return base, nil
}

// Resolve derives app paths from base dirs, applying the environment overrides goos honours.
// getenv may be nil.
func Resolve(goos string, getenv func(string) string, base BaseDirs, appName string) (Paths, error) {
	if base.Config == "" || base.Data == "" {
		return Paths{}, errors.New("config and data base dirs are required")
	}
	if appName = strings.TrimSpace(appName); appName == "" {
		return Paths{}, errors.New("app name is required")
	}
	if base.Cache == "" {
		base.Cache = base.Data
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	if rules, ok := envOverrides[goos]; ok {
		base.Config = firstSet(getenv, rules.config, base.Config)
		base.Data = firstSet(getenv, rules.data, base.Data)
		base.Cache = firstSet(getenv, rules.cache, base.Cache)
	}

	dataDir := filepath.Join(base.Data, appName)
	return Paths{
		ConfigPath: filepath.Join(base.Config, appName, "config.toml"),
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, appName+".db"),
		CacheDir:   filepath.Join(base.Cache, appName, "lists"),
		LogPath:    filepath.Join(dataDir, "logs", appName+".log"),
	}, nil
}

func firstSet(getenv func(string) string, keys []string, fallback string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	return fallback
}
