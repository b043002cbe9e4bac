// Package scores keeps the local leaderboard
package scores

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no entry has the requested ID
var ErrNotFound = errors.New("scores: entry not found")

// Entry is one finished game
type Entry struct {
	ID       uuid.UUID     `json:"id"`
	Player   string        `json:"player"`
	Score    int           `json:"score"`
	Level    int           `json:"level"`
	Duration time.Duration `json:"duration"`
	When     time.Time     `json:"when"`
}

// NewEntry stamps a finished game with a fresh ID
func NewEntry(player string, score, level int, played time.Duration, when time.Time) Entry {
	return Entry{
		ID:       uuid.New(),
		Player:   player,
		Score:    score,
		Level:    level,
		Duration: played,
		When:     when,
	}
}

// Store persists leaderboard entries
// Ordering is score descending, then earlier When first
type Store interface {
	Put(e Entry) error
	Get(id uuid.UUID) (Entry, error)
	// Top returns at most n best entries
	Top(n int) ([]Entry, error)
	// Rank returns the 1-based position a new entry with score would take
	Rank(score int) (int, error)
	Close() error
}

// less orders entries for the leaderboard
func less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.When.Before(b.When)
}

// MemoryStore is a Store kept in a sorted slice
type MemoryStore struct {
	entries []Entry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Put(e Entry) error {
	i := sort.Search(len(m.entries), func(i int) bool { return less(e, m.entries[i]) })
	m.entries = append(m.entries, Entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = e
	return nil
}

func (m *MemoryStore) Get(id uuid.UUID) (Entry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

func (m *MemoryStore) Top(n int) ([]Entry, error) {
	n = max(0, min(n, len(m.entries)))
	out := make([]Entry, n)
	copy(out, m.entries[:n])
	return out, nil
}

func (m *MemoryStore) Rank(score int) (int, error) {
	// Ties rank below existing entries since the newcomer is later
	return sort.Search(len(m.entries), func(i int) bool { return m.entries[i].Score < score }) + 1, nil
}

func (m *MemoryStore) Close() error { return nil }
