package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hylla/wishlist/internal/adapters/cache"
	"github.com/hylla/wishlist/internal/adapters/remote"
	"github.com/hylla/wishlist/internal/adapters/server"
	"github.com/hylla/wishlist/internal/adapters/server/common"
	"github.com/hylla/wishlist/internal/adapters/storage/sqlite"
	"github.com/hylla/wishlist/internal/app"
	"github.com/hylla/wishlist/internal/config"
	"github.com/hylla/wishlist/internal/platform"
	"github.com/hylla/wishlist/internal/tui"
)

// version is stamped at build time.
var version = "dev"

type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// serveFunc is swapped in tests so serve does not bind a port.
var serveFunc = server.Run

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// run executes the CLI with args.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// cliFlags holds the persistent flags shared by every command.
type cliFlags struct {
	configPath string
	dbPath     string
	apiURL     string
	appName    string
	devMode    bool
}

// runtimeEnv is the resolved per-invocation state.
type runtimeEnv struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &cliFlags{appName: "wishlist", devMode: version == "dev"}
	if envDev, ok := parseBoolEnv(config.EnvDevMode); ok {
		flags.devMode = envDev
	}

	root := &cobra.Command{
		Use:           "wishlist",
		Short:         "Browse and manage your saved lists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.resolve(stderr)
			if err != nil {
				return err
			}
			defer env.close(stderr)
			return runTUI(env)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config TOML")
	pf.StringVar(&flags.dbPath, "db", "", "path to sqlite database (serve, export, import)")
	pf.StringVar(&flags.apiURL, "api-url", "", "list API base URL")
	pf.StringVar(&flags.appName, "app", flags.appName, "application name for config/data path resolution")
	pf.BoolVar(&flags.devMode, "dev", flags.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newServeCommand(flags, stderr),
		newPathsCommand(flags, stdout),
		newExportCommand(flags, stdout, stderr),
		newImportCommand(flags, stderr),
		newCacheCommand(flags, stdout, stderr),
	)
	return root
}

// resolve loads paths, config and the runtime logger.
func (f *cliFlags) resolve(stderr io.Writer) (runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: f.appName, DevMode: f.devMode})
	if err != nil {
		return runtimeEnv{}, err
	}
	configPath := strings.TrimSpace(f.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv(config.EnvConfigPath)); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}

	defaults := config.Default(paths.DBPath)
	defaults.Client.CacheDir = paths.CacheDir
	cfg, err := config.Load(configPath, defaults)
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("load config %q: %w", configPath, err)
	}
	cfg, err = cfg.ApplyEnv(os.Getenv)
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("apply env overrides: %w", err)
	}
	if v := strings.TrimSpace(f.dbPath); v != "" {
		cfg.Database.Path = v
	}
	if v := strings.TrimSpace(f.apiURL); v != "" {
		cfg.Client.APIURL = v
	}
	if strings.TrimSpace(cfg.Client.CacheDir) == "" {
		cfg.Client.CacheDir = paths.CacheDir
	}
	if err := cfg.Validate(); err != nil {
		return runtimeEnv{}, err
	}

	logger, err := newRuntimeLogger(stderr, f.appName, f.devMode, cfg.Logging, filepath.Dir(paths.LogPath), time.Now)
	if err != nil {
		return runtimeEnv{}, fmt.Errorf("configure runtime logger: %w", err)
	}
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "cache_dir", cfg.Client.CacheDir)
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Logging.Level, "dev_mode", f.devMode)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}
	return runtimeEnv{paths: paths, configPath: configPath, cfg: cfg, logger: logger}, nil
}

func (e runtimeEnv) close(stderr io.Writer) {
	if err := e.logger.Close(); err != nil && e.logger.shouldLogToSink(e.logger.consoleSink) {
		_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", err)
	}
}

// ensureVisitorID returns the configured visitor id, minting and persisting one on first run.
func ensureVisitorID(env *runtimeEnv) (string, error) {
	if id := strings.TrimSpace(env.cfg.Client.VisitorID); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := config.UpsertVisitorID(env.configPath, id); err != nil {
		return "", fmt.Errorf("persist visitor id: %w", err)
	}
	env.cfg.Client.VisitorID = id
	env.logger.Info("visitor id created", "visitor_id", id, "config_path", env.configPath)
	return id, nil
}

// newListService wires the HTTP client behind the snapshot cache.
func newListService(env runtimeEnv, visitorID string) (*cache.Service, error) {
	client, err := remote.NewClient(
		env.cfg.Client.APIURL,
		visitorID,
		remote.WithTimeout(env.cfg.Client.RequestTimeoutDuration()),
		remote.WithUserAgent("wishlist/"+version),
	)
	if err != nil {
		return nil, fmt.Errorf("configure list api client: %w", err)
	}
	store, err := cache.NewStore(env.cfg.Client.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("open list cache: %w", err)
	}
	svc, err := cache.NewService(client, store, env.cfg.Client.CacheTTLDuration(), cache.WithLogger(env.logger))
	if err != nil {
		return nil, fmt.Errorf("configure list cache: %w", err)
	}
	return svc, nil
}

func runTUI(env runtimeEnv) error {
	logger := env.logger
	visitorID, err := ensureVisitorID(&env)
	if err != nil {
		return err
	}
	svc, err := newListService(env, visitorID)
	if err != nil {
		return err
	}

	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the program owns the terminal.
	logger.SetConsoleEnabled(false)
	defer logger.SetConsoleEnabled(true)

	m := tui.NewModel(
		svc,
		tui.WithLogger(logger),
		tui.WithRequestTimeout(env.cfg.Client.RequestTimeoutDuration()),
		tui.WithMarkdownStyle(env.cfg.UI.MarkdownStyle),
		tui.WithItemCounts(env.cfg.UI.ShowItemCounts),
		tui.WithKeyConfig(tui.KeyConfig{
			AddList:    env.cfg.Keys.AddList,
			EditList:   env.cfg.Keys.EditList,
			DeleteList: env.cfg.Keys.DeleteList,
			CopyID:     env.cfg.Keys.CopyID,
			Actions:    env.cfg.Keys.Actions,
			Filter:     env.cfg.Keys.Filter,
			Reload:     env.cfg.Keys.Reload,
		}),
	)
	logger.Info("starting tui program loop", "api_url", env.cfg.Client.APIURL, "visitor_id", visitorID)
	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// openAppService opens the sqlite repository and the list service over it.
func openAppService(env runtimeEnv) (*app.Service, *sqlite.Repository, error) {
	env.logger.Info("opening sqlite repository", "db_path", env.cfg.Database.Path)
	repo, err := sqlite.Open(env.cfg.Database.Path)
	if err != nil {
		env.logger.Error("sqlite open failed", "db_path", env.cfg.Database.Path, "err", err)
		return nil, nil, fmt.Errorf("open sqlite repository: %w", err)
	}
	svc := app.NewService(repo, uuid.NewString, nil, app.ServiceConfig{
		MaxListsPerOwner: env.cfg.Server.MaxListsPerOwner,
	})
	return svc, repo, nil
}

func closeRepo(env runtimeEnv, repo *sqlite.Repository) {
	if err := repo.Close(); err != nil {
		env.logger.Warn("sqlite close failed", "db_path", env.cfg.Database.Path, "err", err)
	}
}

func newServeCommand(flags *cliFlags, stderr io.Writer) *cobra.Command {
	var httpBind, apiEndpoint, mcpEndpoint string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list HTTP API and MCP endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.resolve(stderr)
			if err != nil {
				return err
			}
			defer env.close(stderr)
			svc, repo, err := openAppService(env)
			if err != nil {
				return err
			}
			defer closeRepo(env, repo)

			cfg := server.Config{
				HTTPBind:      firstNonEmpty(httpBind, env.cfg.Server.HTTPBind),
				APIEndpoint:   firstNonEmpty(apiEndpoint, env.cfg.Server.APIEndpoint),
				MCPEndpoint:   firstNonEmpty(mcpEndpoint, env.cfg.Server.MCPEndpoint),
				ServerName:    "wishlist",
				ServerVersion: version,
			}
			env.logger.Info("command flow start", "command", "serve", "http_bind", cfg.HTTPBind, "api_endpoint", cfg.APIEndpoint, "mcp_endpoint", cfg.MCPEndpoint)
			err = serveFunc(cmd.Context(), cfg, server.Dependencies{
				Lists:  common.NewAppServiceAdapter(svc),
				Ready:  repo.Ping,
				Logger: env.logger,
			})
			if err != nil {
				env.logger.Error("command flow failed", "command", "serve", "err", err)
				return fmt.Errorf("run serve command: %w", err)
			}
			env.logger.Info("command flow complete", "command", "serve")
			return nil
		},
	}
	cmd.Flags().StringVar(&httpBind, "http", "", "HTTP listen address (default from config)")
	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "REST API mount path")
	cmd.Flags().StringVar(&mcpEndpoint, "mcp-endpoint", "", "MCP mount path")
	return cmd
}

func newPathsCommand(flags *cliFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data and cache paths",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: flags.appName, DevMode: flags.devMode})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", flags.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", flags.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "db: %s\n", paths.DBPath)
			_, _ = fmt.Fprintf(stdout, "cache_dir: %s\n", paths.CacheDir)
			_, _ = fmt.Fprintf(stdout, "log: %s\n", paths.LogPath)
			return nil
		},
	}
}

func newExportCommand(flags *cliFlags, stdout, stderr io.Writer) *cobra.Command {
	var outPath, ownerID string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export lists from the local database as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := flags.resolve(stderr)
			if err != nil {
				return err
			}
			defer env.close(stderr)
			svc, repo, err := openAppService(env)
			if err != nil {
				return err
			}
			defer closeRepo(env, repo)

			env.logger.Info("command flow start", "command", "export")
			if err := runExport(cmd.Context(), svc, ownerID, outPath, stdout); err != nil {
				env.logger.Error("command flow failed", "command", "export", "err", err)
				return fmt.Errorf("run export command: %w", err)
			}
			env.logger.Info("command flow complete", "command", "export")
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	cmd.Flags().StringVar(&ownerID, "owner", "", "only export lists owned by this visitor id")
	return cmd
}

func runExport(ctx context.Context, svc *app.Service, ownerID, outPath string, stdout io.Writer) error {
	snap, err := svc.ExportSnapshot(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot json: %w", err)
	}
	encoded = append(encoded, '\n')

	if outPath == "-" || strings.TrimSpace(outPath) == "" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write snapshot to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

func newImportCommand(flags *cliFlags, stderr io.Writer) *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON snapshot into the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(inPath) == "" {
				return errors.New("--in is required")
			}
			env, err := flags.resolve(stderr)
			if err != nil {
				return err
			}
			defer env.close(stderr)
			svc, repo, err := openAppService(env)
			if err != nil {
				return err
			}
			defer closeRepo(env, repo)

			env.logger.Info("command flow start", "command", "import", "in", inPath)
			if err := runImport(cmd.Context(), svc, inPath); err != nil {
				env.logger.Error("command flow failed", "command", "import", "err", err)
				return fmt.Errorf("run import command: %w", err)
			}
			env.logger.Info("command flow complete", "command", "import")
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input snapshot JSON file")
	return cmd
}

func runImport(ctx context.Context, svc *app.Service, inPath string) error {
	content, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var snap app.Snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return fmt.Errorf("decode snapshot json: %w", err)
	}
	if err := svc.ImportSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}
	return nil
}

func newCacheCommand(flags *cliFlags, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local list cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the cached list snapshot for the configured visitor",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			env, err := flags.resolve(stderr)
			if err != nil {
				return err
			}
			defer env.close(stderr)
			visitorID := strings.TrimSpace(env.cfg.Client.VisitorID)
			if visitorID == "" {
				_, _ = fmt.Fprintln(stdout, "no visitor configured; nothing to clear")
				return nil
			}
			store, err := cache.NewStore(env.cfg.Client.CacheDir)
			if err != nil {
				return fmt.Errorf("open list cache: %w", err)
			}
			if err := store.Clear(visitorID); err != nil {
				return fmt.Errorf("clear list cache: %w", err)
			}
			env.logger.Info("list cache cleared", "visitor_id", visitorID, "path", store.Path(visitorID))
			_, _ = fmt.Fprintf(stdout, "cleared %s\n", store.Path(visitorID))
			return nil
		},
	})
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// parseBoolEnv reads a boolean environment variable, reporting whether it was set and valid.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
