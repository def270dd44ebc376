package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/embedhost/backend/internal/config"
	"github.com/embedhost/backend/internal/db"
	"github.com/embedhost/backend/internal/handlers"
	"github.com/embedhost/backend/internal/httpserver"
	"github.com/embedhost/backend/internal/logging"
	"github.com/embedhost/backend/internal/middleware"
)

// Run bootstraps the EmbedHost backend application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve, migrate, or seed")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "migrate":
		return runMigrations(ctx, args[1:])
	case "seed":
		return runSeed(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps, err := buildDependencies(ctx, pool, cfg)
	if err != nil {
		return err
	}

	srv := httpserver.New(cfg.AppPort, newHandler(logger, deps))

	logger.Info("starting http server",
		"port", cfg.AppPort,
		"provider", cfg.ProviderName,
		"video_sizing", cfg.VideoSizing,
	)

	return srv.Run(logging.WithLogger(ctx, logger))
}

// newHandler assembles the routed mux behind the shared middleware chain.
func newHandler(logger *slog.Logger, deps handlers.Dependencies) http.Handler {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	return middleware.RequestLogger(logger)(middleware.CSRF(handlers.OEmbedPath)(mux))
}

const (
	migrationMaxRetries  = 3
	migrationBaseBackoff = 100 * time.Millisecond
	migrationMaxBackoff  = 3 * time.Second
)

var retryablePgErrorCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
}

// withConn loads configuration and runs fn on a dedicated pooled connection.
func withConn(ctx context.Context, fn func(cfg config.Config, conn *pgxpool.Conn) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(cfg, conn)
}

func runMigrations(ctx context.Context, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}
	switch command {
	case "up", "status":
	case "down":
		return errors.New("down migrations are not supported")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}

	return withConn(ctx, func(cfg config.Config, conn *pgxpool.Conn) error {
		dir, err := resolveDir(cfg.MigrationDir)
		if err != nil {
			return err
		}
		files, err := listSQLFiles(dir)
		if err != nil {
			return fmt.Errorf("read migrations directory: %w", err)
		}

		applied, err := appliedMigrations(ctx, conn)
		if err != nil {
			return err
		}

		if command == "status" {
			writeMigrationStatus(os.Stdout, files, applied)
			return nil
		}

		pending := pendingMigrations(files, applied)
		if len(pending) == 0 {
			fmt.Println("database schema is up to date")
			return nil
		}
		for _, name := range pending {
			contents, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("read migration %s: %w", name, err)
			}
			if err := applyMigrationWithRetry(ctx, conn, name, string(contents)); err != nil {
				return err
			}
			fmt.Printf("applied migration %s\n", name)
		}
		return nil
	})
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// appliedMigrations ensures the bookkeeping table exists and returns the
// recorded versions.
func appliedMigrations(ctx context.Context, conn *pgxpool.Conn) (map[string]bool, error) {
	if _, err := conn.Exec(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	rows, err := conn.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("fetch applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan applied migrations: %w", err)
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func pendingMigrations(files []string, applied map[string]bool) []string {
	var pending []string
	for _, name := range files {
		if !applied[name] {
			pending = append(pending, name)
		}
	}
	return pending
}

func writeMigrationStatus(w io.Writer, files []string, applied map[string]bool) {
	for _, name := range files {
		mark := " "
		if applied[name] {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %s\n", mark, name)
	}
}

func runSeed(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected seed name (e.g. dev)")
	}
	name := seedFileName(args[0])

	return withConn(ctx, func(cfg config.Config, conn *pgxpool.Conn) error {
		dir, err := resolveDir(cfg.SeedDir)
		if err != nil {
			return err
		}
		contents, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read seed %s: %w", name, err)
		}

		if _, err := conn.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply seed %s: %w", name, err)
		}
		fmt.Printf("applied seed %s\n", name)
		return nil
	})
}

// resolveDir anchors relative directories at the working directory.
func resolveDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return filepath.Join(wd, dir), nil
}

// listSQLFiles returns the .sql files directly inside dir in lexical order.
func listSQLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// seedFileName maps a seed name such as "dev" to its file, dev_seed.sql.
func seedFileName(name string) string {
	if strings.HasSuffix(name, ".sql") {
		return name
	}
	return fmt.Sprintf("%s_seed.sql", name)
}

// migrationBackoff returns the delay before retry number attempt (1-based).
func migrationBackoff(attempt int) time.Duration {
	backoff := time.Duration(math.Pow(2, float64(attempt-1))) * migrationBaseBackoff
	return min(backoff, migrationMaxBackoff)
}

func applyMigrationWithRetry(ctx context.Context, conn *pgxpool.Conn, name string, contents string) error {
	var err error
	for attempt := 0; attempt < migrationMaxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("transient migration failure, retrying",
				"migration", name,
				"attempt", attempt,
				"max_attempts", migrationMaxRetries,
				"error", err,
			)
			timer := time.NewTimer(migrationBackoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		err = applyMigration(ctx, conn, name, contents)
		if err == nil || !shouldRetryMigration(err) {
			return err
		}
	}

	return fmt.Errorf("apply migration %s: exceeded max retries (%d): %w", name, migrationMaxRetries, err)
}

// applyMigration runs one migration and records it in a single serializable transaction.
func applyMigration(ctx context.Context, conn *pgxpool.Conn, name string, contents string) error {
	tx, err := conn.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin migration transaction for %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, contents); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}

func shouldRetryMigration(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := retryablePgErrorCodes[pgErr.Code]; ok {
			return true
		}
	}

	if errors.Is(err, pgx.ErrTxClosed) {
		return true
	}

	return false
}
