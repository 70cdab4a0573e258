// Package memory provides a non-durable in-memory implementation of
// storage.TokenStore.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/jdoyle/centavo/storage"
)

// Store is a thread-safe in-memory implementation of storage.TokenStore.
// The pair is sealed in a memguard Enclave between uses, so tokens do not
// sit in plain heap memory at rest. Suitable for testing and for callers
// that opt out of durable persistence.
type Store struct {
	mu      sync.Mutex
	enclave *memguard.Enclave
}

var _ storage.TokenStore = (*Store)(nil)

// NewStore creates a new empty in-memory Store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Tokens() (storage.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enclave == nil {
		return storage.TokenPair{}, nil
	}
	buf, err := s.enclave.Open()
	if err != nil {
		return storage.TokenPair{}, err
	}
	defer buf.Destroy()

	var pair storage.TokenPair
	if err := json.Unmarshal(buf.Bytes(), &pair); err != nil {
		return storage.TokenPair{}, err
	}
	return pair, nil
}

func (s *Store) WritePair(pair storage.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// NewEnclave wipes the source slice after sealing.
	s.enclave = memguard.NewEnclave(data)
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enclave = nil
	return nil
}
