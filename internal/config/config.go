package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables that override file values.
const (
	EnvConfigPath = "WISHLIST_CONFIG"
	EnvDBPath     = "WISHLIST_DB_PATH"
	EnvAPIURL     = "WISHLIST_API_URL"
	EnvDevMode    = "WISHLIST_DEV_MODE"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Client   ClientConfig   `toml:"client"`
	Logging  LoggingConfig  `toml:"logging"`
	UI       UIConfig       `toml:"ui"`
	Keys     KeyConfig      `toml:"keys"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	HTTPBind         string `toml:"http_bind"`
	APIEndpoint      string `toml:"api_endpoint"`
	MCPEndpoint      string `toml:"mcp_endpoint"`
	MaxListsPerOwner int    `toml:"max_lists_per_owner"`
}

// ClientConfig configures how the terminal UI reaches the list API.
type ClientConfig struct {
	APIURL         string `toml:"api_url"`
	VisitorID      string `toml:"visitor_id"`
	CacheDir       string `toml:"cache_dir"`
	CacheTTL       string `toml:"cache_ttl"`
	RequestTimeout string `toml:"request_timeout"`
}

type LoggingConfig struct {
	Level   string `toml:"level"` // debug | info | warn | error
	DevFile bool   `toml:"dev_file"`
}

type UIConfig struct {
	MarkdownStyle  string `toml:"markdown_style"`
	ShowItemCounts bool   `toml:"show_item_counts"`
}

// KeyConfig rebinds list actions; blank keeps the default key.
type KeyConfig struct {
	AddList    string `toml:"add_list"`
	EditList   string `toml:"edit_list"`
	DeleteList string `toml:"delete_list"`
	CopyID     string `toml:"copy_id"`
	Actions    string `toml:"actions"`
	Filter     string `toml:"filter"`
	Reload     string `toml:"reload"`
}

var (
	// reservedKeys drive navigation and closing and cannot be rebound.
	reservedKeys   = []string{"q", "esc", "enter", "i", "j", "k", "up", "down", "?", "ctrl+c"}
	logLevels      = []string{"debug", "info", "warn", "error"}
	markdownStyles = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}
)

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Server: ServerConfig{
			HTTPBind:         "127.0.0.1:8080",
			APIEndpoint:      "/api/v1",
			MCPEndpoint:      "/mcp",
			MaxListsPerOwner: 50,
		},
		Client: ClientConfig{
			APIURL:         "http://127.0.0.1:8080/api/v1",
			CacheTTL:       "5m",
			RequestTimeout: "10s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			MarkdownStyle:  "dark",
			ShowItemCounts: true,
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overlays environment overrides onto c and revalidates.
func (c Config) ApplyEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvDBPath)); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		c.Client.APIURL = v
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if c.Server.MaxListsPerOwner < 0 {
		return errors.New("server.max_lists_per_owner must be >= 0")
	}
	for name, endpoint := range map[string]string{
		"server.api_endpoint": c.Server.APIEndpoint,
		"server.mcp_endpoint": c.Server.MCPEndpoint,
	} {
		if endpoint = strings.TrimSpace(endpoint); endpoint != "" && !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("%s must start with /: %q", name, endpoint)
		}
	}

	if apiURL := strings.TrimSpace(c.Client.APIURL); apiURL != "" {
		if _, err := url.Parse(apiURL); err != nil {
			return fmt.Errorf("invalid client.api_url: %w", err)
		}
	}
	if _, err := parseDuration("client.cache_ttl", c.Client.CacheTTL); err != nil {
		return err
	}
	timeout, err := parseDuration("client.request_timeout", c.Client.RequestTimeout)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Client.RequestTimeout) != "" && timeout <= 0 {
		return fmt.Errorf("client.request_timeout must be > 0")
	}

	if level := strings.ToLower(strings.TrimSpace(c.Logging.Level)); level != "" && !slices.Contains(logLevels, level) {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if style := strings.ToLower(strings.TrimSpace(c.UI.MarkdownStyle)); style != "" && !slices.Contains(markdownStyles, style) {
		return fmt.Errorf("invalid ui.markdown_style: %q", c.UI.MarkdownStyle)
	}
	return c.Keys.validate()
}

func (k KeyConfig) validate() error {
	seen := map[string]string{}
	for _, field := range []struct{ name, value string }{
		{"keys.add_list", k.AddList},
		{"keys.edit_list", k.EditList},
		{"keys.delete_list", k.DeleteList},
		{"keys.copy_id", k.CopyID},
		{"keys.actions", k.Actions},
		{"keys.filter", k.Filter},
		{"keys.reload", k.Reload},
	} {
		value := strings.TrimSpace(field.value)
		if value == "" {
			continue
		}
		if slices.Contains(reservedKeys, strings.ToLower(value)) {
			return fmt.Errorf("%s: key %q is reserved", field.name, value)
		}
		if prev, ok := seen[value]; ok {
			return fmt.Errorf("%s: key %q already bound by %s", field.name, value, prev)
		}
		seen[value] = field.name
	}
	return nil
}

// CacheTTLDuration returns the snapshot freshness window; zero disables fresh reads.
func (c ClientConfig) CacheTTLDuration() time.Duration {
	ttl, _ := parseDuration("client.cache_ttl", c.CacheTTL)
	return ttl
}

// RequestTimeoutDuration returns the per-request timeout, defaulting to 10s.
func (c ClientConfig) RequestTimeoutDuration() time.Duration {
	timeout, _ := parseDuration("client.request_timeout", c.RequestTimeout)
	if timeout <= 0 {
		return 10 * time.Second
	}
	return timeout
}

func parseDuration(field, raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must be >= 0", field)
	}
	return d, nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// UpsertVisitorID persists visitorID as client.visitor_id, keeping every other key in the file.
func UpsertVisitorID(path, visitorID string) error {
	path = strings.TrimSpace(path)
	visitorID = strings.TrimSpace(visitorID)
	if path == "" {
		return errors.New("config path is required")
	}
	if visitorID == "" {
		return errors.New("visitor id is required")
	}

	doc := map[string]any{}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(content) > 0 {
			if err := toml.Unmarshal(content, &doc); err != nil {
				return fmt.Errorf("decode toml: %w", err)
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read config: %w", err)
	}

	client, _ := doc["client"].(map[string]any)
	if client == nil {
		client = map[string]any{}
	}
	client["visitor_id"] = visitorID
	doc["client"] = client

	encoded, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
