package main

// DBAdapter defines the engine-specific pieces of talking to a database:
// DSN assembly from the environment, and how the schema catalog is queried
// and shaped. MySQL, PostgreSQL, and SQLite each implement it.
type DBAdapter interface {
	// DriverName returns the database/sql driver name (e.g., "mysql", "postgres", "sqlite").
	DriverName() string

	// BuildDSN constructs a DSN from environment variables.
	BuildDSN() (string, error)

	// DatabaseName extracts the database/file name from a DSN string.
	DatabaseName(dsn string) string

	// ListTablesQuery returns the SQL query and arguments to list all tables
	// in the configured schema. The result set has a single table_name column.
	ListTablesQuery(databaseName string) (string, []any)

	// DescribeTableQuery returns the SQL query and arguments to read column
	// info for a table.
	DescribeTableQuery(databaseName, tableName string) (string, []any)

	// NormalizeColumn maps one raw catalog row to the fixed column shape:
	// column_name, data_type, is_nullable, and column_default when present.
	NormalizeColumn(row map[string]any) map[string]any
}
