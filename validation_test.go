package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuery_ReadAllowed(t *testing.T) {
	allowed := []string{
		"SELECT * FROM t",
		"SELECT id, name FROM users WHERE id = 1",
		"select * from users",
		"  SELECT 1  ",
		// Identifiers containing blocked verbs are fine: keyword matching
		// runs at word boundaries, not as raw substrings.
		"SELECT created_at FROM orders",
		"SELECT updated_at FROM products",
		"SELECT deleted FROM items",
		"SELECT * FROM inserts_log",
		"SELECT * FROM users WHERE name = 'DROP TABLE users'",
		"SELECT 1 -- DROP TABLE users",
	}

	for _, query := range allowed {
		t.Run(query, func(t *testing.T) {
			assert.NoError(t, ValidateQuery(query, IntentRead))
		})
	}
}

func TestValidateQuery_ReadBlocked(t *testing.T) {
	blocked := []struct {
		query  string
		reason string
	}{
		{"UPDATE t SET x = 1", "only SELECT"},
		{"INSERT INTO t VALUES (1)", "only SELECT"},
		{"DELETE FROM t", "only SELECT"},
		{"DROP TABLE t", "only SELECT"},
		{"select * from t; drop table t", "DROP"},
		{"SELECT 1; DELETE FROM t", "DELETE"},
		{"SELECT * FROM t WHERE id IN (DELETE FROM t)", "DELETE"},
		{"SELECT 1 UNION SELECT x FROM t; ALTER TABLE t ADD c INT", "ALTER"},
		{"", "empty query"},
		{"   ", "empty query"},
	}

	for _, tc := range blocked {
		t.Run(tc.query, func(t *testing.T) {
			err := ValidateQuery(tc.query, IntentRead)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestValidateQuery_WriteAllowed(t *testing.T) {
	allowed := []string{
		"INSERT INTO t VALUES (1)",
		"insert into t values (1)",
		"UPDATE t SET x = 1 WHERE id = 2",
		"DELETE FROM t WHERE id = 3",
		"INSERT INTO t (note) VALUES ('CREATE TABLE inside a string')",
	}

	for _, query := range allowed {
		t.Run(query, func(t *testing.T) {
			assert.NoError(t, ValidateQuery(query, IntentWrite))
		})
	}
}

func TestValidateQuery_WriteBlocked(t *testing.T) {
	blocked := []struct {
		query  string
		reason string
	}{
		{"SELECT 1", "not allowed for write_query"},
		{"select * from t", "not allowed for write_query"},
		{"DROP TABLE t", "only INSERT, UPDATE, or DELETE"},
		{"TRUNCATE TABLE t", "only INSERT, UPDATE, or DELETE"},
		{"INSERT INTO t VALUES (1); DROP TABLE t", "DROP"},
		{"UPDATE t SET x = 1; ALTER TABLE t DROP COLUMN x", "ALTER"},
		{"DELETE FROM t; CREATE TABLE u (id INT)", "CREATE"},
		{"", "empty query"},
	}

	for _, tc := range blocked {
		t.Run(tc.query, func(t *testing.T) {
			err := ValidateQuery(tc.query, IntentWrite)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestValidateQuery_CreateTable(t *testing.T) {
	assert.NoError(t, ValidateQuery("CREATE TABLE t (id INT)", IntentCreateTable))
	assert.NoError(t, ValidateQuery("create table t (id INT)", IntentCreateTable))
	assert.NoError(t, ValidateQuery("  CREATE TABLE IF NOT EXISTS t (id INT)", IntentCreateTable))

	rejected := []string{
		"ALTER TABLE t ADD c INT",
		"CREATE INDEX idx ON t (id)",
		"CREATE DATABASE shop",
		"SELECT 1",
		"DROP TABLE t",
		"",
	}
	for _, query := range rejected {
		t.Run(query, func(t *testing.T) {
			assert.Error(t, ValidateQuery(query, IntentCreateTable))
		})
	}
}

func TestStripStringsAndComments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single-quoted string stripped",
			input:    "SELECT * FROM users WHERE name = 'DROP TABLE'",
			expected: "SELECT * FROM users WHERE name = ''",
		},
		{
			name:     "doubled quote stays inside the literal",
			input:    "SELECT * FROM t WHERE a = 'it''s'",
			expected: "SELECT * FROM t WHERE a = ''",
		},
		{
			name:     "-- comment stripped",
			input:    "SELECT * FROM users -- comment",
			expected: "SELECT * FROM users  ",
		},
		{
			name:     "/* */ comment stripped",
			input:    "SELECT * FROM users /* comment */",
			expected: "SELECT * FROM users  ",
		},
		{
			name:     "backtick identifier preserved",
			input:    "SELECT * FROM `table_name`",
			expected: "SELECT * FROM `table_name`",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripStringsAndComments(tc.input))
		})
	}
}
