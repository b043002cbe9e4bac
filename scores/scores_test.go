package scores

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

var testEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// storeFactories runs every test against both implementations
func storeFactories(t *testing.T) map[string]func() Store {
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"badger": func() Store {
			s, err := OpenBadgerInMemory()
			if err != nil {
				t.Fatalf("Failed to open badger store: %v", err)
			}
			return s
		},
	}
}

func testEntries() []Entry {
	return []Entry{
		NewEntry("ann", 300, 2, time.Minute, testEpoch.Add(2*time.Minute)),
		NewEntry("bob", 900, 4, 3*time.Minute, testEpoch.Add(time.Minute)),
		NewEntry("cid", 300, 2, time.Minute, testEpoch),
		NewEntry("dee", 50, 1, 10*time.Second, testEpoch.Add(3*time.Minute)),
	}
}

func players(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Player
	}
	return out
}

func TestTopOrdering(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			for _, e := range testEntries() {
				if err := s.Put(e); err != nil {
					t.Fatalf("Put failed: %v", err)
				}
			}

			top, err := s.Top(10)
			if err != nil {
				t.Fatalf("Top failed: %v", err)
			}
			// Equal scores: the earlier game ranks first
			want := []string{"bob", "cid", "ann", "dee"}
			if diff := cmp.Diff(want, players(top)); diff != "" {
				t.Errorf("Top order mismatch (-want +got):\n%s", diff)
			}

			top, _ = s.Top(2)
			if len(top) != 2 {
				t.Errorf("Expected 2 entries, got %d", len(top))
			}
			top, _ = s.Top(0)
			if len(top) != 0 {
				t.Errorf("Expected no entries, got %d", len(top))
			}
		})
	}
}

func TestRank(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			if r, _ := s.Rank(100); r != 1 {
				t.Errorf("Empty board rank = %d, want 1", r)
			}
			for _, e := range testEntries() {
				s.Put(e)
			}

			tests := []struct {
				score, want int
			}{
				{1000, 1},
				{900, 2},
				{500, 2},
				{300, 4},
				{0, 5},
			}
			for _, tt := range tests {
				got, err := s.Rank(tt.score)
				if err != nil {
					t.Fatalf("Rank failed: %v", err)
				}
				if got != tt.want {
					t.Errorf("Rank(%d) = %d, want %d", tt.score, got, tt.want)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			defer s.Close()

			e := testEntries()[1]
			s.Put(e)

			got, err := s.Get(e.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if diff := cmp.Diff(e, got); diff != "" {
				t.Errorf("Entry mismatch (-want +got):\n%s", diff)
			}

			if _, err := s.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestBadgerPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scores")

	s, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	e := NewEntry("ann", 420, 3, time.Minute, testEpoch)
	if err := s.Put(e); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	top, err := s.Top(1)
	if err != nil || len(top) != 1 {
		t.Fatalf("Expected 1 entry after reopen, got %d (%v)", len(top), err)
	}
	if top[0].ID != e.ID || top[0].Score != 420 {
		t.Errorf("Unexpected entry after reopen: %+v", top[0])
	}
}
