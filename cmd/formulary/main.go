package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/formulary"
	"github.com/fwojciec/formulary/badger"
	"github.com/fwojciec/formulary/bookmark"
	"github.com/fwojciec/formulary/fs"
	"github.com/fwojciec/formulary/gemini"
	fslog "github.com/fwojciec/formulary/slog"
	"github.com/fwojciec/formulary/sqlite"
	"github.com/fwojciec/formulary/yaml"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Storage used by the bookmark store. Opened by Run() unless set.
	KV formulary.KVStore

	// Services for end-to-end testing.
	Catalog      formulary.Catalog
	Explainer    formulary.Explainer
	TokenCounter formulary.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.KV != nil {
		return m.KV.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("formulary"),
		kong.Description("A reference for spreadsheet formula functions."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'formulary --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger, err = newLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}

	if m.Catalog == nil {
		catalog, err := yaml.Load()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		m.Catalog = catalog
	}
	deps.Catalog = m.Catalog

	if needsBookmarks(cmd) {
		if m.KV == nil {
			dir := cli.Dir
			if dir == "" {
				dir = defaultDataDir()
			}
			kv, err := openStore(cli.Store, dir, deps.Logger)
			if err != nil {
				fmt.Fprintf(stderr, "Hint: Set FORMULARY_DIR or FORMULARY_STORE to use different storage\n")
				return err
			}
			m.KV = kv
		}
		defer m.Close()

		store := bookmark.NewStore(fslog.NewLoggingKVStore(m.KV, deps.Logger), deps.Logger)
		store.Load(ctx)
		deps.Bookmarks = store
	}

	if cmd == "explain" && cli.Explain.DryRun {
		if m.TokenCounter == nil {
			tc, err := gemini.NewTokenCounter(gemini.Model)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			m.TokenCounter = tc
		}
		deps.Tokens = m.TokenCounter
	} else if needsExplainer(cmd) {
		explainer, err := m.newExplainer(ctx, cli.APIKey)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		if explainer == nil && cmd == "explain" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return formulary.Errorf(formulary.EINVALID, "GEMINI_API_KEY not set")
		}
		if explainer != nil {
			deps.Explainer = fslog.NewLoggingExplainer(explainer, deps.Logger)
		}
	}

	if cmd == "serve" {
		gin.SetMode(gin.ReleaseMode)
	}

	return kongCtx.Run(deps)
}

// newExplainer returns nil when no API key is configured.
func (m *Main) newExplainer(ctx context.Context, apiKey string) (formulary.Explainer, error) {
	if m.Explainer != nil {
		return m.Explainer, nil
	}
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return gemini.NewExplainer(client), nil
}

func needsBookmarks(cmd string) bool {
	switch cmd {
	case "search", "show", "bookmark", "bookmarks", "open", "serve", "browse":
		return true
	}
	return false
}

func needsExplainer(cmd string) bool {
	switch cmd {
	case "explain", "serve", "browse":
		return true
	}
	return false
}

// openStore opens the bookmark storage backend kind under dir.
func openStore(kind, dir string, logger *slog.Logger) (formulary.KVStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %q: %w", dir, err)
	}

	switch kind {
	case StoreFS:
		return fs.NewKVStore(filepath.Join(dir, "kv")), nil
	case StoreBadger:
		kv, err := badger.Open(badger.Config{Path: filepath.Join(dir, "badger"), Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		return kv, nil
	default:
		path := filepath.Join(dir, "formulary.db")
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		return sqlite.NewKVStore(db), nil
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, formulary.Errorf(formulary.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".formulary"
	}
	return filepath.Join(home, ".formulary")
}
