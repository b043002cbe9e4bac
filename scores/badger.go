package scores

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("scores")

// Key layout:
//   r/<score uint64 BE><inverted unix nanos uint64 BE><id> -> Entry JSON
//   i/<id> -> rank key
// Reverse iteration over r/ yields score descending, earlier games first on ties.
var (
	rankPrefix = []byte("r/")
	idPrefix   = []byte("i/")
)

// BadgerStore is a Store persisted in a badger database
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens or creates the database in dir
func OpenBadger(dir string) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions(dir))
}

// OpenBadgerInMemory opens a throwaway database
func OpenBadgerInMemory() (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true))
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// rankKey encodes the ordering; scores below zero sort as zero
func rankKey(e Entry) []byte {
	k := make([]byte, 0, len(rankPrefix)+16+len(e.ID))
	k = append(k, rankPrefix...)
	k = binary.BigEndian.AppendUint64(k, uint64(max(e.Score, 0)))
	k = binary.BigEndian.AppendUint64(k, math.MaxUint64-uint64(e.When.UnixNano()))
	return append(k, e.ID[:]...)
}

func idKey(id uuid.UUID) []byte {
	return append(append([]byte{}, idPrefix...), id[:]...)
}

func (s *BadgerStore) Put(e Entry) error {
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry %s: %w", e.ID, err)
	}
	rk := rankKey(e)

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(rk, val); err != nil {
			return err
		}
		return txn.Set(idKey(e.ID), rk)
	})
	if err != nil {
		return fmt.Errorf("put entry %s: %w", e.ID, err)
	}
	log.Debugf("stored score %d for %s", e.Score, e.Player)
	return nil
}

func (s *BadgerStore) Get(id uuid.UUID) (Entry, error) {
	var e Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(idKey(id))
		if err != nil {
			return err
		}
		rk, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if item, err = txn.Get(rk); err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

// scan walks entries best first until fn returns false
func (s *BadgerStore) scan(fn func(e Entry) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = rankPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append(append([]byte{}, rankPrefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(rankPrefix); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return err
			}
			if !fn(e) {
				return nil
			}
		}
		return nil
	})
}

func (s *BadgerStore) Top(n int) ([]Entry, error) {
	out := make([]Entry, 0, max(n, 0))
	if n <= 0 {
		return out, nil
	}
	err := s.scan(func(e Entry) bool {
		out = append(out, e)
		return len(out) < n
	})
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return out, nil
}

func (s *BadgerStore) Rank(score int) (int, error) {
	rank := 1
	err := s.scan(func(e Entry) bool {
		if e.Score < score {
			return false
		}
		rank++
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("rank score: %w", err)
	}
	return rank, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
