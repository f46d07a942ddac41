package kvstore

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var collectionsBucket = []byte("collections")

type (
	boltStore struct {
		db *bolt.DB
	}

	boltTx struct {
		bkt *bolt.Bucket
	}
)

var _ Store = (*boltStore)(nil)

// OpenBolt opens (creating if needed) the bbolt-backed store at path.
func OpenBolt(path string) (Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening store %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "initializing store")
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) View(fn func(tx Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&boltTx{bkt: btx.Bucket(collectionsBucket)})
	})
}

func (s *boltStore) Update(fn func(tx Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&boltTx{bkt: btx.Bucket(collectionsBucket)})
	})
}

func (s *boltStore) Close() error { return s.db.Close() }

func (tx *boltTx) Load(collection string, out interface{}) error {
	data := tx.bkt.Get([]byte(collection))
	if data == nil {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding collection %s", collection)
	}
	return nil
}

func (tx *boltTx) Save(collection string, records interface{}) error {
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding collection %s", collection)
	}
	if err := tx.bkt.Put([]byte(collection), data); err != nil {
		return errors.Wrapf(err, "saving collection %s", collection)
	}
	return nil
}
