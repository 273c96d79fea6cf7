package kvstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// BatchWriter lo implementan los backends que pueden aplicar varias escrituras de forma atómica.
type BatchWriter interface {
	WriteBatch(ctx context.Context, sets map[string][]byte, deletes []string) error
}

// Locker serializa las ejecuciones de Runner.Run (mutex local o lock distribuido).
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// MutexLocker Locker de un solo proceso.
type MutexLocker struct {
	mu sync.Mutex
}

func (l *MutexLocker) Lock(ctx context.Context) (func(), error) {
	l.mu.Lock()
	return l.mu.Unlock, nil
}

var _ repository.TxRunner = (*Runner)(nil)

// Runner ejecuta fn sobre una capa de escrituras pendientes y las aplica solo si fn retorna nil.
type Runner struct {
	base   repository.KV
	locker Locker
	log    zerolog.Logger
}

// NewRunner construye el runner. locker nil usa un MutexLocker.
func NewRunner(base repository.KV, locker Locker, log zerolog.Logger) *Runner {
	if locker == nil {
		locker = &MutexLocker{}
	}
	return &Runner{base: base, locker: locker, log: log}
}

// Run ejecuta fn de forma serializada; si fn falla no se escribe nada.
func (r *Runner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	unlock, err := r.locker.Lock(ctx)
	if err != nil {
		return fmt.Errorf("%w: obtener lock: %w", domain.ErrStorage, err)
	}
	defer unlock()

	staged := newStagedKV(r.base)
	if err := fn(NewRepos(staged, r.log)); err != nil {
		return err
	}
	if err := staged.commit(ctx); err != nil {
		r.log.Error().Err(err).Int("writes", len(staged.writes)).Msg("falló la aplicación de escrituras")
		return fmt.Errorf("%w: aplicar cambios: %w", domain.ErrStorage, err)
	}
	return nil
}

type stagedKV struct {
	base    repository.KV
	writes  map[string][]byte
	deletes map[string]bool
}

func newStagedKV(base repository.KV) *stagedKV {
	return &stagedKV{base: base, writes: map[string][]byte{}, deletes: map[string]bool{}}
}

func (s *stagedKV) Get(ctx context.Context, key string) ([]byte, error) {
	if s.deletes[key] {
		return nil, nil
	}
	if v, ok := s.writes[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return s.base.Get(ctx, key)
}

func (s *stagedKV) Set(_ context.Context, key string, value []byte) error {
	s.writes[key] = append([]byte(nil), value...)
	delete(s.deletes, key)
	return nil
}

func (s *stagedKV) Delete(_ context.Context, key string) error {
	s.deletes[key] = true
	delete(s.writes, key)
	return nil
}

func (s *stagedKV) commit(ctx context.Context) error {
	if len(s.writes) == 0 && len(s.deletes) == 0 {
		return nil
	}
	deletes := make([]string, 0, len(s.deletes))
	for k := range s.deletes {
		deletes = append(deletes, k)
	}
	sort.Strings(deletes)
	if bw, ok := s.base.(BatchWriter); ok {
		return bw.WriteBatch(ctx, s.writes, deletes)
	}
	keys := make([]string, 0, len(s.writes))
	for k := range s.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.base.Set(ctx, k, s.writes[k]); err != nil {
			return err
		}
	}
	for _, k := range deletes {
		if err := s.base.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
