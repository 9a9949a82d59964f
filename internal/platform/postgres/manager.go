// Package postgres implements the store interfaces on PostgreSQL and owns
// the shared connection handle reused across invocations of a warm process.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmorales-dev/tienda-api/internal/config"
	"github.com/dmorales-dev/tienda-api/internal/platform/secrets"
	"github.com/dmorales-dev/tienda-api/internal/redact"
)

// Manager lazily establishes and reuses a pooled database connection.
//
// Liveness is decided by an actual ping, never by a cached flag: the hosting
// platform can suspend and resume the process with the previous connection
// silently dropped, and a flag would keep failing every request until the
// process is recycled. Construction is mutex-guarded because, unlike the
// original single-request-at-a-time runtime, this server handles requests
// concurrently.
type Manager struct {
	cfg     config.DatabaseConfig
	secrets secrets.Store
	logger  *slog.Logger

	// opener is sql.Open, injectable for tests.
	opener func(driverName, dsn string) (*sql.DB, error)

	mu sync.Mutex
	db *sql.DB
}

// NewManager creates a Manager. No connection is made until the first
// Ensure or DB call.
func NewManager(cfg config.DatabaseConfig, secretStore secrets.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		cfg:     cfg,
		secrets: secretStore,
		logger:  logger.With(slog.String("component", "db_manager")),
		opener:  sql.Open,
	}
}

// Ensure makes sure a live pooled connection exists. Idempotent: when the
// existing handle answers a ping, the call is a no-op costing one
// round-trip; otherwise the full connect sequence runs.
func (m *Manager) Ensure(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureLocked(ctx)
}

// DB returns the live connection handle, establishing it first if needed.
func (m *Manager) DB(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLocked(ctx); err != nil {
		return nil, err
	}
	return m.db, nil
}

func (m *Manager) ensureLocked(ctx context.Context) error {
	if m.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
		err := m.db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		// The handle went stale while the process was parked. Drop it and
		// run the full connect sequence.
		m.logger.Warn("existing database connection failed live check, reconnecting",
			slog.String("error", redact.Error(err)))
		_ = m.db.Close()
		m.db = nil
	}

	dsn, err := m.connectionString(ctx)
	if err != nil {
		return err
	}

	db, err := m.opener("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(m.cfg.MaxOpenConns)
	db.SetMaxIdleConns(m.cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(m.cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(m.cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m.db = db
	m.logger.Info("database connection established",
		slog.Int("max_open_conns", m.cfg.MaxOpenConns),
		slog.Int("max_idle_conns", m.cfg.MaxIdleConns))
	return nil
}

// connectionString resolves the DSN: a directly configured URL wins,
// otherwise the secret store is consulted (and caches internally).
func (m *Manager) connectionString(ctx context.Context) (string, error) {
	if m.cfg.URL != "" {
		return m.cfg.URL, nil
	}
	if m.secrets == nil {
		return "", fmt.Errorf("no database URL configured and no secret store available")
	}
	dsn, err := m.secrets.ConnectionString(ctx, m.cfg.SecretName)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve database credentials: %w", err)
	}
	return dsn, nil
}

// Close tears down the connection handle. Only called on process shutdown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
