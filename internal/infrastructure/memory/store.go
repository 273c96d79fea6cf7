// Package memory KV en memoria para pruebas y modo demo.
package memory

import (
	"context"
	"sync"
)

// Store mapa clave -> documento protegido por RWMutex.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// WriteBatch aplica todas las escrituras bajo un único lock.
func (s *Store) WriteBatch(_ context.Context, sets map[string][]byte, deletes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range sets {
		s.data[k] = append([]byte(nil), v...)
	}
	for _, k := range deletes {
		delete(s.data, k)
	}
	return nil
}

// Keys claves presentes (sin orden).
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
