package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// QueryTimeout bounds each statement sent to the database.
var QueryTimeout = 30 * time.Second

const (
	ConnectionTimeout  = 10 * time.Second
	MaxConnectionsIdle = 5
	MaxConnectionsOpen = 10
)

// Gateway is the capability the dispatcher needs from the database: execute
// a statement, get rows or a row count back. Implemented by sqlGateway over
// database/sql; tests substitute a stub.
type Gateway interface {
	// Query runs a row-returning statement and returns every row as a
	// column-keyed map.
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)

	// Exec runs a non-returning statement and reports the affected row count.
	Exec(ctx context.Context, query string) (int64, error)
}

type sqlGateway struct {
	db *sql.DB
}

func newSQLGateway(db *sql.DB) *sqlGateway {
	return &sqlGateway{db: db}
}

// OpenGateway opens a pooled connection to the database behind the adapter
// and verifies it with a ping. A ping failure is fatal to startup.
func OpenGateway(ctx context.Context, adapter DBAdapter, dsn string) (*sqlGateway, error) {
	db, err := sql.Open(adapter.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxIdleConns(MaxConnectionsIdle)
	db.SetMaxOpenConns(MaxConnectionsOpen)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, pingCancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer pingCancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newSQLGateway(db), nil
}

func (g *sqlGateway) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	results := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(results)+1, err)
		}

		row := make(map[string]any)
		for i, col := range columns {
			val := values[i]
			// Convert []byte to string for JSON serialization
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = val
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *sqlGateway) Exec(ctx context.Context, query string) (int64, error) {
	res, err := g.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected row count: %w", err)
	}
	return affected, nil
}

func (g *sqlGateway) Close() error {
	return g.db.Close()
}
