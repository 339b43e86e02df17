package platform

import (
	"path/filepath"
	"testing"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestResolve(t *testing.T) {
	support := "/Users/me/Library/Application Support"
	cases := []struct {
		name       string
		goos       string
		env        map[string]string
		base       BaseDirs
		wantConfig string
		wantDB     string
		wantCache  string
	}{
		{
			name:       "linux xdg overrides",
			goos:       "linux",
			env:        map[string]string{"XDG_CONFIG_HOME": "/xdg/config", "XDG_DATA_HOME": "/xdg/data", "XDG_CACHE_HOME": "/xdg/cache"},
			base:       BaseDirs{Config: "/home/me/.config", Data: "/home/me/.local/share", Cache: "/home/me/.cache"},
			wantConfig: filepath.Join("/xdg/config", "wishlist", "config.toml"),
			wantDB:     filepath.Join("/xdg/data", "wishlist", "wishlist.db"),
			wantCache:  filepath.Join("/xdg/cache", "wishlist", "lists"),
		},
		{
			name:       "linux blank xdg keeps base",
			goos:       "linux",
			env:        map[string]string{"XDG_DATA_HOME": "  "},
			base:       BaseDirs{Config: "/home/me/.config", Data: "/home/me/.local/share", Cache: "/home/me/.cache"},
			wantConfig: filepath.Join("/home/me/.config", "wishlist", "config.toml"),
			wantDB:     filepath.Join("/home/me/.local/share", "wishlist", "wishlist.db"),
			wantCache:  filepath.Join("/home/me/.cache", "wishlist", "lists"),
		},
		{
			name:       "windows appdata",
			goos:       "windows",
			env:        map[string]string{"APPDATA": `C:\Roaming`, "LOCALAPPDATA": `C:\Local`},
			base:       BaseDirs{Config: `C:\cfg`, Data: `C:\data`},
			wantConfig: filepath.Join(`C:\Roaming`, "wishlist", "config.toml"),
			wantDB:     filepath.Join(`C:\Local`, "wishlist", "wishlist.db"),
			wantCache:  filepath.Join(`C:\Local`, "wishlist", "lists"),
		},
		{
			name:       "darwin ignores xdg",
			goos:       "darwin",
			env:        map[string]string{"XDG_CONFIG_HOME": "/ignored", "XDG_CACHE_HOME": "/ignored"},
			base:       BaseDirs{Config: support, Data: support, Cache: "/Users/me/Library/Caches"},
			wantConfig: filepath.Join(support, "wishlist", "config.toml"),
			wantDB:     filepath.Join(support, "wishlist", "wishlist.db"),
			wantCache:  filepath.Join("/Users/me/Library/Caches", "wishlist", "lists"),
		},
		{
			name:       "cache falls back to data",
			goos:       "freebsd",
			base:       BaseDirs{Config: "/cfg", Data: "/data"},
			wantConfig: filepath.Join("/cfg", "wishlist", "config.toml"),
			wantDB:     filepath.Join("/data", "wishlist", "wishlist.db"),
			wantCache:  filepath.Join("/data", "wishlist", "lists"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Resolve(tc.goos, envOf(tc.env), tc.base, "wishlist")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.ConfigPath != tc.wantConfig || p.DBPath != tc.wantDB || p.CacheDir != tc.wantCache {
				t.Fatalf("unexpected paths %#v", p)
			}
			if p.LogPath != filepath.Join(p.DataDir, "logs", "wishlist.log") {
				t.Fatalf("log path %q not under data dir %q", p.LogPath, p.DataDir)
			}
		})
	}
}

func TestResolveRejectsMissingInputs(t *testing.T) {
	if _, err := Resolve("darwin", nil, BaseDirs{Data: "/d"}, "wishlist"); err == nil {
		t.Fatal("expected error for missing config dir")
	}
	if _, err := Resolve("darwin", nil, BaseDirs{Config: "/c", Data: "/d"}, " "); err == nil {
		t.Fatal("expected error for blank app name")
	}
}

func TestAppDirName(t *testing.T) {
	if got := AppDirName(Options{}); got != "wishlist" {
		t.Fatalf("default name = %q", got)
	}
	if got := AppDirName(Options{AppName: " gifts ", DevMode: true}); got != "gifts-dev" {
		t.Fatalf("dev name = %q", got)
	}
}

func TestDefaultPathsWithOptionsDevMode(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p, err := DefaultPathsWithOptions(Options{DevMode: true})
	if err != nil {
		t.Fatalf("DefaultPathsWithOptions() error = %v", err)
	}
	if filepath.Base(filepath.Dir(p.ConfigPath)) != "wishlist-dev" || filepath.Base(p.DBPath) != "wishlist-dev.db" {
		t.Fatalf("expected dev-suffixed paths, got %#v", p)
	}
}
