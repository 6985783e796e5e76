package main

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Insight is a free-text note captured during a session. Insights live only
// in process memory and are lost on restart.
type Insight struct {
	ID        int
	Text      string
	CreatedAt time.Time
}

// InsightStore is an append-only in-memory log of insights shared across
// concurrently handled requests. Append assigns 1-based strictly increasing
// identifiers; an identifier is never reused.
type InsightStore struct {
	mu       sync.Mutex
	insights []Insight
	nextID   int
	now      func() time.Time
}

func NewInsightStore() *InsightStore {
	return &InsightStore{nextID: 1, now: time.Now}
}

// Append records a new insight and returns its identifier.
func (s *InsightStore) Append(text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.insights = append(s.insights, Insight{
		ID:        id,
		Text:      text,
		CreatedAt: s.now(),
	})
	return id
}

// Len returns the number of recorded insights.
func (s *InsightStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.insights)
}

// Memo renders the insight log as a text document, oldest insight first.
func (s *InsightStore) Memo() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("Business Insights Memo\n")
	b.WriteString("======================\n\n")

	if len(s.insights) == 0 {
		b.WriteString("No insights have been recorded yet.\n")
		return b.String()
	}

	for _, in := range s.insights {
		fmt.Fprintf(&b, "%d. [%s] %s\n", in.ID, in.CreatedAt.UTC().Format(time.RFC3339), in.Text)
	}
	return b.String()
}
