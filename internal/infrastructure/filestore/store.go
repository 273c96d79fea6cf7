// Package filestore KV en disco: un archivo JSON por clave dentro de un directorio.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store guarda cada clave en <dir>/<clave>.json. Cada escritura usa archivo temporal + rename,
// atómica por documento.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open crea el directorio si no existe.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAtomic(p, value)
}

func (s *Store) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// WriteBatch escribe primero todos los temporales y luego los renombra uno por uno. Cada
// documento queda completo (viejo o nuevo), pero el lote no es atómico: si un rename falla a
// mitad, los anteriores ya quedaron aplicados. Para lotes transaccionales usar sqlitestore.
func (s *Store) WriteBatch(_ context.Context, sets map[string][]byte, deletes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type pending struct{ tmp, dst string }
	staged := make([]pending, 0, len(sets))
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p.tmp)
		}
	}
	for key, value := range sets {
		dst, err := s.path(key)
		if err != nil {
			cleanup()
			return err
		}
		tmp, err := writeTemp(dst, value)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, pending{tmp: tmp, dst: dst})
	}
	for _, p := range staged {
		if err := os.Rename(p.tmp, p.dst); err != nil {
			cleanup()
			return fmt.Errorf("renombrar %s: %w", filepath.Base(p.dst), err)
		}
	}
	for _, key := range deletes {
		p, err := s.path(key)
		if err != nil {
			return err
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func writeAtomic(dst string, value []byte) error {
	tmp, err := writeTemp(dst, value)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renombrar %s: %w", filepath.Base(dst), err)
	}
	return nil
}

func writeTemp(dst string, value []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
