package player

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

var (
	// Bucket names
	bucketBundle    = []byte("bundle")
	bucketTelemetry = []byte("telemetry")
)

var bundleKey = []byte("current")

// Store is the player's on-disk state: the last accepted content bundle
// and the pending telemetry queue. Every mutation is one bbolt write
// transaction, so readers see either the previous state or the new one,
// never a partial write.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the player database under dataDir.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "player.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open player database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketBundle, bucketTelemetry} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StoreBundle replaces the cached bundle wholesale.
func (s *Store) StoreBundle(bundle model.ResolvedBundle, storedAt time.Time) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(model.CachedBundle{Bundle: bundle, StoredAt: storedAt})
		if err != nil {
			return err
		}
		return tx.Bucket(bucketBundle).Put(bundleKey, data)
	})
}

// Bundle returns the most recently stored bundle. The second return is
// false when nothing has ever been cached — callers must treat that as a
// distinct "nothing to show yet" state, not as stale content.
func (s *Store) Bundle() (model.CachedBundle, bool, error) {
	var cached model.CachedBundle
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketBundle).Get(bundleKey)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &cached); err != nil {
			return err
		}
		found = true
		return nil
	})
	return cached, found, err
}

// AppendEvent adds one telemetry event to the tail of the queue.
func (s *Store) AppendEvent(ev model.PlayEvent) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTelemetry)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
}

// PendingEvents returns up to limit queued events in original order,
// along with the queue key of the last one.
func (s *Store) PendingEvents(limit int) ([]model.PlayEvent, uint64, error) {
	var events []model.PlayEvent
	var lastSeq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketTelemetry).Cursor()
		for k, v := cur.First(); k != nil && len(events) < limit; k, v = cur.Next() {
			var ev model.PlayEvent
			if err := json.Unmarshal(v, &ev); err != nil {
				return err
			}
			events = append(events, ev)
			lastSeq = binary.BigEndian.Uint64(k)
		}
		return nil
	})
	return events, lastSeq, err
}

// DeleteThrough removes the acknowledged prefix of the queue, up to and
// including the given key. Unacknowledged events stay put.
func (s *Store) DeleteThrough(seq uint64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bucketTelemetry).Cursor()
		for k, _ := cur.First(); k != nil && binary.BigEndian.Uint64(k) <= seq; k, _ = cur.Next() {
			if err := cur.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}

// PendingCount reports how many events await delivery.
func (s *Store) PendingCount() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketTelemetry).Stats().KeyN
		return nil
	})
	return n, err
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
