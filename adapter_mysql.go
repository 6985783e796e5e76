package main

import (
	"fmt"
	"os"
	"strings"
)

// MySQLAdapter implements DBAdapter for MySQL databases.
type MySQLAdapter struct{}

func (a *MySQLAdapter) DriverName() string { return "mysql" }

func (a *MySQLAdapter) BuildDSN() (string, error) {
	host := os.Getenv("MCP_MYSQL_HOST")
	port := os.Getenv("MCP_MYSQL_PORT")
	db := os.Getenv("MCP_MYSQL_DB")
	user := os.Getenv("MCP_MYSQL_USER")
	password := os.Getenv("MCP_MYSQL_PASSWORD")

	var missing []string
	if host == "" {
		missing = append(missing, "MCP_MYSQL_HOST")
	}
	if port == "" {
		missing = append(missing, "MCP_MYSQL_PORT")
	}
	if db == "" {
		missing = append(missing, "MCP_MYSQL_DB")
	}
	if user == "" {
		missing = append(missing, "MCP_MYSQL_USER")
	}
	if password == "" {
		missing = append(missing, "MCP_MYSQL_PASSWORD")
	}

	if len(missing) > 0 {
		return "", fmt.Errorf("missing required environment variables: %v", missing)
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, host, port, db), nil
}

func (a *MySQLAdapter) DatabaseName(dsn string) string {
	// DSN format: user:password@tcp(host:port)/dbname?params
	parts := strings.Split(dsn, "/")
	if len(parts) < 2 {
		return ""
	}
	dbPart := parts[len(parts)-1]
	if idx := strings.Index(dbPart, "?"); idx != -1 {
		dbPart = dbPart[:idx]
	}
	return dbPart
}

func (a *MySQLAdapter) ListTablesQuery(databaseName string) (string, []any) {
	// Aliases keep result keys lowercase across MySQL versions.
	return `SELECT table_name AS table_name FROM information_schema.tables WHERE table_schema = ?`,
		[]any{databaseName}
}

func (a *MySQLAdapter) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	return `SELECT column_name AS column_name, data_type AS data_type,
			is_nullable AS is_nullable, column_default AS column_default
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position`, []any{databaseName, tableName}
}

func (a *MySQLAdapter) NormalizeColumn(row map[string]any) map[string]any {
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
