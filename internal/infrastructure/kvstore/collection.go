package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// Collection persiste []T como un único documento JSON bajo key.
type Collection[T any] struct {
	kv  repository.KV
	key string
	log zerolog.Logger
}

// NewCollection construye la colección.
func NewCollection[T any](kv repository.KV, key string, log zerolog.Logger) Collection[T] {
	return Collection[T]{kv: kv, key: key, log: log}
}

// Key clave del documento.
func (c Collection[T]) Key() string { return c.key }

// Load devuelve los registros. Clave ausente o contenido ilegible => colección vacía (con warning).
func (c Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: leer %s: %w", domain.ErrStorage, c.key, err)
	}
	items := []T{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Str("key", c.key).Msg("documento ilegible, se trata como colección vacía")
		return []T{}, nil
	}
	return items, nil
}

// Save serializa y sobrescribe el documento completo.
func (c Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: serializar %s: %w", domain.ErrStorage, c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("%w: escribir %s: %w", domain.ErrStorage, c.key, err)
	}
	return nil
}

// Append carga, agrega al final y guarda.
func (c Collection[T]) Append(ctx context.Context, item T) error {
	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	return c.Save(ctx, append(items, item))
}

// Find devuelve el primer registro que cumple match.
func (c Collection[T]) Find(ctx context.Context, match func(T) bool) (*T, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(items, match); i >= 0 {
		return &items[i], nil
	}
	return nil, nil
}

// Replace reemplaza el primer registro que cumple match. Devuelve ErrNotFound si no hay coincidencia.
func (c Collection[T]) Replace(ctx context.Context, item T, match func(T) bool) error {
	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, match)
	if i < 0 {
		return domain.ErrNotFound
	}
	items[i] = item
	return c.Save(ctx, items)
}

// Remove filtra los registros que cumplen match. Sin coincidencias no escribe ni falla.
func (c Collection[T]) Remove(ctx context.Context, match func(T) bool) error {
	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return c.Save(ctx, kept)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i := range items {
		if match(items[i]) {
			return i
		}
	}
	return -1
}
