package main

import (
	"context"

	"go.uber.org/zap"
)

// StatementResult pairs one migration statement with its outcome.
type StatementResult struct {
	Statement string
	Skipped   bool
	Err       error
}

// RunMigrations executes a semicolon-terminated SQL script statement by
// statement. Execution is best-effort: a failing statement is logged and
// recorded, and the run continues with the next one. Database creation and
// selection statements are skipped; connection setup handles those.
func RunMigrations(ctx context.Context, gw Gateway, logger *zap.Logger, script string) []StatementResult {
	var results []StatementResult

	for _, stmt := range SplitStatements(script) {
		if shouldSkipStatement(stmt) {
			logger.Debug("skipping migration statement", zap.String("statement", stmt))
			results = append(results, StatementResult{Statement: stmt, Skipped: true})
			continue
		}

		_, err := gw.Exec(ctx, stmt)
		if err != nil {
			logger.Error("migration statement failed",
				zap.String("statement", stmt),
				zap.Error(err))
		}
		results = append(results, StatementResult{Statement: stmt, Err: err})
	}

	return results
}
