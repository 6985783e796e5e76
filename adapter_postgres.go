package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// PostgresAdapter implements DBAdapter for PostgreSQL databases.
type PostgresAdapter struct{}

func (a *PostgresAdapter) DriverName() string { return "postgres" }

func (a *PostgresAdapter) BuildDSN() (string, error) {
	host := os.Getenv("MCP_PG_HOST")
	port := os.Getenv("MCP_PG_PORT")
	db := os.Getenv("MCP_PG_DB")
	user := os.Getenv("MCP_PG_USER")
	password := os.Getenv("MCP_PG_PASSWORD")
	sslmode := os.Getenv("MCP_PG_SSLMODE")
	if sslmode == "" {
		sslmode = "prefer"
	}

	var missing []string
	if host == "" {
		missing = append(missing, "MCP_PG_HOST")
	}
	if port == "" {
		missing = append(missing, "MCP_PG_PORT")
	}
	if db == "" {
		missing = append(missing, "MCP_PG_DB")
	}
	if user == "" {
		missing = append(missing, "MCP_PG_USER")
	}
	if password == "" {
		missing = append(missing, "MCP_PG_PASSWORD")
	}

	if len(missing) > 0 {
		return "", fmt.Errorf("missing required environment variables: %v", missing)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.PathEscape(user), url.PathEscape(password), host, port, db, sslmode), nil
}

func (a *PostgresAdapter) DatabaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func (a *PostgresAdapter) ListTablesQuery(databaseName string) (string, []any) {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_catalog = $1`,
		[]any{databaseName}
}

func (a *PostgresAdapter) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	return `SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_catalog = $1 AND table_schema = 'public' AND table_name = $2
		ORDER BY ordinal_position`, []any{databaseName, tableName}
}

func (a *PostgresAdapter) NormalizeColumn(row map[string]any) map[string]any {
	col := map[string]any{
		"column_name": row["column_name"],
		"data_type":   row["data_type"],
		"is_nullable": row["is_nullable"],
	}
	if v, ok := row["column_default"]; ok && v != nil {
		col["column_default"] = v
	}
	return col
}
