// Package boltdb stores courses, assignments & students in a single bbolt file, one JSON value per record.
package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/studyflow/core"
)

var (
	courseBucket     = []byte("Courses")
	assignmentBucket = []byte("Assignments")
	studentBucket    = []byte("Students")

	errBucketNotFound = errors.New("bucket not found")
)

type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the database file at path and its buckets.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating database directory")
	}
	bdb, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt database")
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{courseBucket, assignmentBucket, studentBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, errors.Wrap(err, "creating buckets")
	}
	return &DB{bolt: bdb}, nil
}

func (db *DB) Close() error {
	return db.bolt.Close()
}

func (db *DB) view(fn func(tx *bbolt.Tx) error) error {
	return checkOpen(db.bolt.View(fn))
}

func (db *DB) update(fn func(tx *bbolt.Tx) error) error {
	return checkOpen(db.bolt.Update(fn))
}

// checkOpen turns the use of a closed database into a shutdown error.
func checkOpen(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return core.NewShutdownError("bolt database is closed")
	}
	return err
}

// itob encodes ids big endian, so that cursors iterate records by ascending ID.
func itob(id int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func bucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	b := tx.Bucket(name)
	if b == nil {
		return nil, errors.Wrapf(errBucketNotFound, "%s", name)
	}
	return b, nil
}

// put stores value under id in the bucket. A zero id gets the next sequence value, passed to setID.
func put[T any](tx *bbolt.Tx, name []byte, id int, value *T, setID func(*T, int)) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	if id == 0 {
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		id = int(seq)
		setID(value, id)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.Put(itob(id), data)
}

// get decodes the record stored under id; found is false when there is none.
func get[T any](tx *bbolt.Tx, name []byte, id int) (value T, found bool, err error) {
	b, err := bucket(tx, name)
	if err != nil {
		return value, false, err
	}
	data := b.Get(itob(id))
	if data == nil {
		return value, false, nil
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

// list decodes the records of a bucket that keep returns true for (all of them when keep is nil).
func list[T any](tx *bbolt.Tx, name []byte, keep func(T) bool) ([]T, error) {
	b, err := bucket(tx, name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	err = b.ForEach(func(_, v []byte) error {
		var value T
		if err := json.Unmarshal(v, &value); err != nil {
			return err
		}
		if keep == nil || keep(value) {
			out = append(out, value)
		}
		return nil
	})
	return out, err
}

func remove(tx *bbolt.Tx, name []byte, ids ...int) error {
	b, err := bucket(tx, name)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := b.Delete(itob(id)); err != nil {
			return err
		}
	}
	return nil
}
