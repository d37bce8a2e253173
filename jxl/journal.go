package jxl

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	journalDirName  = ".jxlsweep"
	journalFileName = "journal.db"
)

var completedBucket = []byte("completed")

// Journal persists completed conversions under the scanned root so an
// interrupted batch can resume without redoing work. Keys are paths
// relative to the root, which keeps the journal valid if the whole
// tree is moved.
type Journal struct {
	db   *bolt.DB
	root string
}

// OpenJournal opens or creates the journal for root. The one-second
// timeout keeps a second jxlsweep on the same tree from hanging on the
// file lock.
func OpenJournal(root string) (*Journal, error) {
	dir := filepath.Join(root, journalDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, journalFileName), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(completedBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize journal: %w", err)
	}

	return &Journal{db: db, root: root}, nil
}

// MarkDone records path as completed at the current time.
func (j *Journal) MarkDone(path string) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		stamp := time.Now().UTC().Format(time.RFC3339)
		return tx.Bucket(completedBucket).Put([]byte(j.key(path)), []byte(stamp))
	})
}

// IsDone reports whether path was recorded by an earlier run.
func (j *Journal) IsDone(path string) bool {
	var done bool
	_ = j.db.View(func(tx *bolt.Tx) error {
		done = tx.Bucket(completedBucket).Get([]byte(j.key(path))) != nil
		return nil
	})
	return done
}

// Count returns the number of recorded completions.
func (j *Journal) Count() int {
	var n int
	_ = j.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(completedBucket).Stats().KeyN
		return nil
	})
	return n
}

// Close releases the journal's file lock.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) key(path string) string {
	if rel, err := filepath.Rel(j.root, path); err == nil {
		return rel
	}
	return path
}
