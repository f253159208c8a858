package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Pool sizes the database/sql connection pool.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type PostgresDB struct {
	Conn    *sql.DB
	URL     string
	Pool    Pool
	Timeout time.Duration
}

func NewPostgresDB(url string, pool Pool, timeout time.Duration) *PostgresDB {
	return &PostgresDB{URL: url, Pool: pool, Timeout: timeout}
}

// Connect opens the pool and pings the server within Timeout.
func (p *PostgresDB) Connect(ctx context.Context) error {
	conn, err := sql.Open("postgres", p.URL)
	if err != nil {
		return fmt.Errorf("postgres: open: %w", err)
	}
	conn.SetMaxOpenConns(p.Pool.MaxOpenConns)
	conn.SetMaxIdleConns(p.Pool.MaxIdleConns)
	conn.SetConnMaxLifetime(p.Pool.ConnMaxLifetime)

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("postgres: ping: %w", err)
	}
	p.Conn = conn
	return nil
}

func (p *PostgresDB) Disconnect() error {
	if p.Conn == nil {
		return nil
	}
	return p.Conn.Close()
}
