package main

import (
	"fmt"
	"os"
)

// Config holds process-level settings read from the environment. Database
// credentials themselves are assembled per adapter (see BuildDSN).
type Config struct {
	Driver         string // mysql, postgres, or sqlite
	DSN            string // optional explicit DSN, overrides the adapter's env assembly
	MigrationsFile string
	LogLevel       string
}

func LoadConfig(args []string) Config {
	cfg := Config{
		Driver:         os.Getenv("MCP_DB_DRIVER"),
		MigrationsFile: os.Getenv("MCP_MIGRATIONS_FILE"),
		LogLevel:       os.Getenv("MCP_LOG_LEVEL"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "mysql"
	}
	if len(args) > 0 {
		cfg.DSN = args[0]
	}
	return cfg
}

// AdapterFor resolves the configured driver name to its adapter.
func AdapterFor(driver string) (DBAdapter, error) {
	switch driver {
	case "mysql":
		return &MySQLAdapter{}, nil
	case "postgres":
		return &PostgresAdapter{}, nil
	case "sqlite":
		return &SQLiteAdapter{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
