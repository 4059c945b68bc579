package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/seogen"
	"github.com/fwojciec/seogen/cache"
	"github.com/fwojciec/seogen/csv"
	"github.com/fwojciec/seogen/fs"
	seohttp "github.com/fwojciec/seogen/http"
	"github.com/fwojciec/seogen/ingest"
	seoredis "github.com/fwojciec/seogen/redis"
	"github.com/fwojciec/seogen/resolve"
	seoslog "github.com/fwojciec/seogen/slog"
	"github.com/fwojciec/seogen/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Used when --db is not given.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Closers run on Close in reverse order.
	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("seogen"),
		kong.Description("Generate SEO pages from a content table."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'seogen --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set SEOGEN_CONFIG to a YAML file or use SEOGEN_* variables")
		return fmt.Errorf("failed to load config: %w", err)
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cmd, cli.Verbose)

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SEOGEN_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	tables := sqlite.NewTableService(m.DB)
	generator := seogen.NewGenerator(cfg)
	resolver := resolve.NewResolver(generator, generator, cfg.BaseURL)
	ingester := &ingest.Service{
		Decoder:   csv.NewDecoder(),
		Tables:    tables,
		Publisher: resolver,
	}
	deps.Tables = tables
	deps.Index = resolver
	deps.Pages = seoslog.NewLoggingPageResolver(resolver, deps.Logger)
	deps.Ingester = seoslog.NewLoggingIngester(ingester, deps.Logger)
	deps.NewStore = func(dir string) seogen.PageStore {
		dir = filepath.Clean(dir)
		return fs.NewSiteStore(filepath.Dir(dir), filepath.Base(dir))
	}

	// Wire command-specific dependencies based on command
	if cmd == "serve" {
		store, err := m.openPageCache(ctx, cli.Serve.RedisURL, cfg.StaleAfter)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check SEOGEN_REDIS_URL or leave it empty to cache in memory")
			return fmt.Errorf("failed to open page cache: %w", err)
		}

		cached := cache.NewResolver(resolver, seoslog.NewLoggingPageCache(store, deps.Logger), cfg.StaleAfter)
		ingester.Cache = cached
		deps.Pages = seoslog.NewLoggingPageResolver(cached, deps.Logger)

		deps.Server = seohttp.NewServer(deps.Pages, resolver, deps.Ingester, cfg.BaseURL, deps.Logger)
		deps.Server.Tables = tables
		if cli.Serve.UploadEvery > 0 {
			deps.Server.Uploads = seohttp.NewClientLimiter(cli.Serve.UploadEvery, seohttp.DefaultUploadBurst)
		}
	}

	return kongCtx.Run(deps)
}

// openPageCache connects to Redis when url is set and otherwise returns an
// in-process cache. Redis keys expire after twice the staleness window.
func (m *Main) openPageCache(ctx context.Context, url string, staleAfter time.Duration) (seogen.PageCache, error) {
	if url == "" {
		return cache.NewMemory(), nil
	}

	client, err := seoredis.Open(ctx, url)
	if err != nil {
		return nil, err
	}
	m.closers = append(m.closers, client.Close)

	store := seoredis.NewPageCache(client)
	store.TTL = 2 * staleAfter
	return store, nil
}

// newLogger logs to stderr. The server logs at info level, other commands
// only report warnings unless verbose.
func newLogger(w io.Writer, cmd string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if cmd == "serve" {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "seogen.db"
	}
	dir := filepath.Join(home, ".seogen")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "seogen.db")
}
