package main

import "strings"

// scanState tracks where the statement scanner is inside the script.
type scanState int

const (
	scanNormal scanState = iota
	scanLineComment
	scanBlockComment
	scanString
)

// SplitStatements splits a multi-statement SQL script into individually
// executable statements. A ';' terminates a statement only in normal state:
// semicolons inside single-, double-, or backtick-quoted literals and inside
// comments do not split. Comment text is discarded entirely. Statements are
// trimmed and empty ones dropped; trailing input without a final ';' is
// flushed as the last statement.
//
// A quoted delimiter must appear doubled per the SQL dialect's own escaping
// rule ('it''s'); backslash escaping of the delimiter is not recognized.
func SplitStatements(script string) []string {
	var (
		statements []string
		buf        strings.Builder
		state      = scanNormal
		quote      byte
	)

	flush := func() {
		stmt := strings.TrimSpace(buf.String())
		if stmt != "" {
			statements = append(statements, stmt)
		}
		buf.Reset()
	}

	for i := 0; i < len(script); i++ {
		c := script[i]

		switch state {
		case scanLineComment:
			if c == '\n' {
				buf.WriteByte('\n')
				state = scanNormal
			}
		case scanBlockComment:
			if c == '*' && i+1 < len(script) && script[i+1] == '/' {
				i++
				state = scanNormal
			}
		case scanString:
			buf.WriteByte(c)
			if c == quote {
				state = scanNormal
			}
		default:
			if c == '-' && i+1 < len(script) && script[i+1] == '-' {
				i++
				state = scanLineComment
				continue
			}
			if c == '/' && i+1 < len(script) && script[i+1] == '*' {
				i++
				state = scanBlockComment
				continue
			}
			if c == '\'' || c == '"' || c == '`' {
				quote = c
				state = scanString
				buf.WriteByte(c)
				continue
			}
			if c == ';' {
				flush()
				continue
			}
			buf.WriteByte(c)
		}
	}
	flush()

	return statements
}

// shouldSkipStatement reports whether a migration statement is handled by
// the caller rather than replayed: database creation and selection run
// before the migration script itself.
func shouldSkipStatement(stmt string) bool {
	lower := strings.ToLower(stmt)
	return strings.Contains(lower, "create database") || strings.HasPrefix(lower, "use ")
}
