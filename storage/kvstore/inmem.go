package kvstore

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

type (
	inmemStore struct {
		mutex sync.RWMutex
		data  map[string][]byte
	}

	inmemTx struct {
		store   *inmemStore
		pending map[string][]byte // nil on read-only transactions
	}
)

var _ Store = (*inmemStore)(nil)

// NewInmem returns an in-memory store. Used in tests and as a throwaway
// backend for local experimentation.
func NewInmem() Store {
	return &inmemStore{data: make(map[string][]byte)}
}

func (s *inmemStore) View(fn func(tx Tx) error) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return fn(&inmemTx{store: s})
}

func (s *inmemStore) Update(fn func(tx Tx) error) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tx := &inmemTx{store: s, pending: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for collection, data := range tx.pending {
		s.data[collection] = data
	}
	return nil
}

func (s *inmemStore) Close() error { return nil }

func (tx *inmemTx) Load(collection string, out interface{}) error {
	data, ok := tx.pending[collection]
	if !ok {
		data, ok = tx.store.data[collection]
	}
	if !ok {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding collection %s", collection)
	}
	return nil
}

func (tx *inmemTx) Save(collection string, records interface{}) error {
	if tx.pending == nil {
		return errors.New("save on read-only transaction")
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding collection %s", collection)
	}
	tx.pending[collection] = data
	return nil
}
