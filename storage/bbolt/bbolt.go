// Package bbolt provides a BBolt-backed token store.
package bbolt

import (
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/jdoyle/centavo/storage"
)

var (
	sessionBucket   = []byte("session")
	keyAccessToken  = []byte("auth_token")
	keyRefreshToken = []byte("refresh_token")
)

// Store implements storage.TokenStore backed by a BBolt database.
type Store struct {
	db *bbolt.DB
}

var _ storage.TokenStore = (*Store)(nil)

// NewStore returns a TokenStore backed by the given BBolt database.
func NewStore(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// NewStoreFromFile opens a BBolt database at the given path and returns a
// new Store.
func NewStoreFromFile(path string, options *bbolt.Options) (*Store, error) {
	db, err := bbolt.Open(path, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return NewStore(db), nil
}

// Close closes the underlying BBolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Tokens() (storage.TokenPair, error) {
	var pair storage.TokenPair
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		pair.Access = string(b.Get(keyAccessToken))
		pair.Refresh = string(b.Get(keyRefreshToken))
		return nil
	})
	if err != nil {
		return storage.TokenPair{}, err
	}
	return pair, nil
}

// WritePair stores both tokens in a single transaction, so a reader never
// observes a half-written pair.
func (s *Store) WritePair(pair storage.TokenPair) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		if err := b.Put(keyAccessToken, []byte(pair.Access)); err != nil {
			return err
		}
		return b.Put(keyRefreshToken, []byte(pair.Refresh))
	})
}

func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		if err := b.Delete(keyAccessToken); err != nil {
			return err
		}
		return b.Delete(keyRefreshToken)
	})
}
