package session

import (
	"sync"
	"time"
)

// RecentLimit is how many history entries the shell displays.
const RecentLimit = 10

// HistoryEntry is one successful submission
type HistoryEntry struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// Ledger is the append-only log of successful searches for this session.
type Ledger struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

func (l *Ledger) Record(query string, ts time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, HistoryEntry{Query: query, Timestamp: ts})
}

// Recent returns up to n entries, newest first.
func (l *Ledger) Recent(n int) []HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return nil
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(l.entries) - 1; i >= len(l.entries)-n; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
