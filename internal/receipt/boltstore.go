package receipt

import (
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const pointsBucket = "points"

// BoltStore implements Store on a bbolt file, for deployments that want the
// points map to survive a restart.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(pointsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Insert adds a record to the points bucket.
func (b *BoltStore) Insert(id string, points int) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(pointsBucket))
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(points))
		return bucket.Put([]byte(id), buf[:])
	})
}

// Lookup retrieves the points for an id.
func (b *BoltStore) Lookup(id string) (int, error) {
	var points int
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(pointsBucket))
		data := bucket.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		points = int(binary.BigEndian.Uint64(data))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return points, nil
}

// Close closes the underlying database.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
