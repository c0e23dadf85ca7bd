// Package memkv is a volatile kv.Store, used for tests and the "memory" storage driver.
package memkv

import (
	"sync"

	"github.com/trezcool/kazi/storage/kv"
)

type Store struct {
	sync.RWMutex
	table map[string][]byte

	// FailWrites makes every Set fail with this error, to simulate a full disk.
	FailWrites error
}

var _ kv.Store = (*Store)(nil) // interface compliance check

func Open() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	v, ok := s.table[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(key string, value []byte) error {
	s.Lock()
	defer s.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.table[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Close() error { return nil }
