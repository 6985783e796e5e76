package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		expected []string
	}{
		{
			name:     "two simple statements",
			script:   "SELECT 1; SELECT 2;",
			expected: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:     "trailing statement without semicolon",
			script:   "SELECT 1; SELECT 2",
			expected: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:     "semicolon in single-quoted literal",
			script:   "SELECT ';' ;",
			expected: []string{"SELECT ';'"},
		},
		{
			name:     "semicolon in double-quoted literal",
			script:   `INSERT INTO t VALUES ("a;b");`,
			expected: []string{`INSERT INTO t VALUES ("a;b")`},
		},
		{
			name:     "semicolon in backtick identifier",
			script:   "SELECT * FROM `weird;name`;",
			expected: []string{"SELECT * FROM `weird;name`"},
		},
		{
			name:     "doubled quote inside literal",
			script:   "INSERT INTO t VALUES ('it''s; fine');",
			expected: []string{"INSERT INTO t VALUES ('it''s; fine')"},
		},
		{
			name:     "line comment stripped",
			script:   "-- comment\nSELECT 1;",
			expected: []string{"SELECT 1"},
		},
		{
			name:     "line comment with semicolon does not split",
			script:   "SELECT 1 -- ; not a boundary\n;",
			expected: []string{"SELECT 1"},
		},
		{
			name:     "block comment stripped including semicolons",
			script:   "/* a; b */ SELECT 1;",
			expected: []string{"SELECT 1"},
		},
		{
			name:     "block comment between statements",
			script:   "SELECT 1; /* x; y */ SELECT 2;",
			expected: []string{"SELECT 1", "SELECT 2"},
		},
		{
			name:     "empty segments dropped",
			script:   ";;  ;\nSELECT 1;;",
			expected: []string{"SELECT 1"},
		},
		{
			name:     "empty input",
			script:   "",
			expected: nil,
		},
		{
			name:     "comments only",
			script:   "-- just a comment\n/* and another */",
			expected: nil,
		},
		{
			name:   "multi-line statement",
			script: "CREATE TABLE t (\n  id INT,\n  name TEXT\n);",
			expected: []string{
				"CREATE TABLE t (\n  id INT,\n  name TEXT\n)",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitStatements(tc.script))
		})
	}
}

func TestSplitStatements_CountMatchesSegments(t *testing.T) {
	script := "SELECT 1;\nSELECT 2;\n-- noise\nSELECT 3;\nINSERT INTO t VALUES (4);"
	assert.Len(t, SplitStatements(script), 4)
}

func TestShouldSkipStatement(t *testing.T) {
	tests := []struct {
		stmt string
		skip bool
	}{
		{"CREATE DATABASE shop", true},
		{"create database shop", true},
		{"USE shop", true},
		{"use shop", true},
		{"CREATE TABLE users (id INT)", false},
		{"SELECT * FROM users", false},
		{"INSERT INTO used_cars VALUES (1)", false},
	}

	for _, tc := range tests {
		t.Run(tc.stmt, func(t *testing.T) {
			assert.Equal(t, tc.skip, shouldSkipStatement(tc.stmt))
		})
	}
}
