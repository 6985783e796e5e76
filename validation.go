package main

import (
	"fmt"
	"regexp"
	"strings"
)

// QueryIntent is the declared SQL statement class a tool enforces.
type QueryIntent int

const (
	IntentRead QueryIntent = iota
	IntentWrite
	IntentCreateTable
)

func (i QueryIntent) String() string {
	switch i {
	case IntentRead:
		return "read"
	case IntentWrite:
		return "write"
	case IntentCreateTable:
		return "createTable"
	default:
		return "unknown"
	}
}

type forbiddenKeyword struct {
	pattern string
	desc    string
}

// Keywords a read query must not contain. Matching runs against a cleaned
// copy of the SQL (string literals and comments stripped) at word
// boundaries, so identifiers like created_at or updated_at and keywords
// inside string literals do not trigger a rejection.
var readForbiddenKeywords = []forbiddenKeyword{
	{`(?i)(?:^|[^a-zA-Z_])DROP(?:[^a-zA-Z_]|$)`, "DROP"},
	{`(?i)(?:^|[^a-zA-Z_])DELETE(?:[^a-zA-Z_]|$)`, "DELETE"},
	{`(?i)(?:^|[^a-zA-Z_])UPDATE(?:[^a-zA-Z_]|$)`, "UPDATE"},
	{`(?i)(?:^|[^a-zA-Z_])INSERT(?:[^a-zA-Z_]|$)`, "INSERT"},
	{`(?i)(?:^|[^a-zA-Z_])ALTER(?:[^a-zA-Z_]|$)`, "ALTER"},
	{`(?i)(?:^|[^a-zA-Z_])CREATE(?:[^a-zA-Z_]|$)`, "CREATE"},
}

// Keywords a write query must not contain, beyond its own DML verb.
var writeForbiddenKeywords = []forbiddenKeyword{
	{`(?i)(?:^|[^a-zA-Z_])DROP(?:[^a-zA-Z_]|$)`, "DROP"},
	{`(?i)(?:^|[^a-zA-Z_])ALTER(?:[^a-zA-Z_]|$)`, "ALTER"},
	{`(?i)(?:^|[^a-zA-Z_])CREATE(?:[^a-zA-Z_]|$)`, "CREATE"},
}

// ValidateQuery accepts or rejects a query for the declared intent.
// Rejections are reported to the client as InvalidParams.
func ValidateQuery(query string, intent QueryIntent) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return fmt.Errorf("empty query")
	}

	upper := strings.ToUpper(trimmed)
	cleaned := stripStringsAndComments(trimmed)

	switch intent {
	case IntentRead:
		if !strings.HasPrefix(upper, "SELECT") {
			return fmt.Errorf("only SELECT queries are allowed for read_query")
		}
		return checkForbidden(cleaned, readForbiddenKeywords)
	case IntentWrite:
		if strings.HasPrefix(upper, "SELECT") {
			return fmt.Errorf("SELECT queries are not allowed for write_query, use read_query")
		}
		if !strings.HasPrefix(upper, "INSERT ") &&
			!strings.HasPrefix(upper, "UPDATE ") &&
			!strings.HasPrefix(upper, "DELETE ") {
			return fmt.Errorf("only INSERT, UPDATE, or DELETE queries are allowed for write_query")
		}
		return checkForbidden(cleaned, writeForbiddenKeywords)
	case IntentCreateTable:
		if !strings.HasPrefix(upper, "CREATE TABLE") {
			return fmt.Errorf("only CREATE TABLE statements are allowed")
		}
		return nil
	default:
		return fmt.Errorf("unknown query intent: %d", int(intent))
	}
}

func checkForbidden(cleaned string, keywords []forbiddenKeyword) error {
	for _, kw := range keywords {
		re := regexp.MustCompile(kw.pattern)
		if re.MatchString(cleaned) {
			return fmt.Errorf("query contains forbidden keyword: %s", kw.desc)
		}
	}
	return nil
}

// stripStringsAndComments removes string literals and comments from SQL for
// safe keyword detection. Quotes escaped by doubling or by backslash are
// handled; backtick-quoted identifier content is preserved.
func stripStringsAndComments(sql string) string {
	var result strings.Builder
	i := 0
	n := len(sql)

	for i < n {
		// Single-line comment starting with --
		if i+1 < n && sql[i] == '-' && sql[i+1] == '-' {
			for i < n && sql[i] != '\n' {
				i++
			}
			result.WriteByte(' ')
			continue
		}

		// Multi-line comment /* */
		if i+1 < n && sql[i] == '/' && sql[i+1] == '*' {
			i += 2
			for i+1 < n && !(sql[i] == '*' && sql[i+1] == '/') {
				i++
			}
			i += 2 // Skip */
			result.WriteByte(' ')
			continue
		}

		// Single-quoted string
		if sql[i] == '\'' {
			i++
			for i < n {
				if sql[i] == '\'' {
					if i+1 < n && sql[i+1] == '\'' {
						i += 2 // Escaped quote
						continue
					}
					i++
					break
				}
				if sql[i] == '\\' && i+1 < n {
					i += 2 // Escaped character
					continue
				}
				i++
			}
			result.WriteString("''") // Placeholder for string
			continue
		}

		// Double-quoted string or ANSI identifier
		if sql[i] == '"' {
			i++
			for i < n {
				if sql[i] == '"' {
					if i+1 < n && sql[i+1] == '"' {
						i += 2 // Escaped quote
						continue
					}
					i++
					break
				}
				if sql[i] == '\\' && i+1 < n {
					i += 2 // Escaped character
					continue
				}
				i++
			}
			result.WriteString(`""`) // Placeholder for string
			continue
		}

		// Backtick-quoted identifier
		if sql[i] == '`' {
			result.WriteByte('`')
			i++
			for i < n && sql[i] != '`' {
				result.WriteByte(sql[i])
				i++
			}
			if i < n {
				result.WriteByte('`')
				i++
			}
			continue
		}

		result.WriteByte(sql[i])
		i++
	}

	return result.String()
}
