package main

import (
	"fmt"
	"os"
	"strings"
)

// SQLiteAdapter implements DBAdapter for SQLite databases.
type SQLiteAdapter struct{}

func (a *SQLiteAdapter) DriverName() string { return "sqlite" }

func (a *SQLiteAdapter) BuildDSN() (string, error) {
	dbPath := os.Getenv("MCP_SQLITE_PATH")
	if dbPath == "" {
		return "", fmt.Errorf("missing required environment variable: MCP_SQLITE_PATH")
	}
	return dbPath, nil
}

func (a *SQLiteAdapter) DatabaseName(dsn string) string {
	// DSN is a file path, possibly with query parameters
	path := dsn
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, ".db")
	name = strings.TrimSuffix(name, ".sqlite")
	name = strings.TrimSuffix(name, ".sqlite3")
	return name
}

func (a *SQLiteAdapter) ListTablesQuery(databaseName string) (string, []any) {
	// SQLite has no information_schema. Use sqlite_master.
	// databaseName is ignored (SQLite has one DB per file).
	return `SELECT name AS table_name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
		nil
}

func (a *SQLiteAdapter) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	// PRAGMA table_info cannot use ? placeholders, so the table name is
	// embedded with its quotes doubled.
	return fmt.Sprintf("PRAGMA table_info('%s')", strings.ReplaceAll(tableName, "'", "''")),
		nil
}

func (a *SQLiteAdapter) NormalizeColumn(row map[string]any) map[string]any {
	// PRAGMA table_info returns: cid, name, type, notnull, dflt_value, pk
	isNullable := "YES"
	switch v := row["notnull"].(type) {
	case int64:
		if v != 0 {
			isNullable = "NO"
		}
	case string:
		if v != "0" {
			isNullable = "NO"
		}
	}

	col := map[string]any{
		"column_name": row["name"],
		"data_type":   row["type"],
		"is_nullable": isNullable,
	}
	if v, ok := row["dflt_value"]; ok && v != nil {
		col["column_default"] = v
	}
	return col
}
