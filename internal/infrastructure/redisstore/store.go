// Package redisstore KV sobre Redis con lock distribuido (bsm/redislock) para el TxRunner.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/kvstore"
)

const (
	defaultPrefix = "farmacia:"
	lockKey       = "lock:tx"
)

// NewClient crea el cliente desde una URL redis:// y verifica la conexión.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

var (
	_ repository.KV       = (*Store)(nil)
	_ kvstore.BatchWriter = (*Store)(nil)
)

// Store guarda cada documento como un string bajo <prefix><clave>.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewStore construye el store. prefix vacío usa "farmacia:".
func NewStore(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

// Key nombre real de la clave en Redis.
func (s *Store) Key(key string) string { return s.prefix + key }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, s.Key(key), value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.Key(key)).Err()
}

// WriteBatch aplica todas las escrituras en un MULTI/EXEC.
func (s *Store) WriteBatch(ctx context.Context, sets map[string][]byte, deletes []string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range sets {
			pipe.Set(ctx, s.Key(k), v, 0)
		}
		if len(deletes) > 0 {
			keys := make([]string, len(deletes))
			for i, k := range deletes {
				keys[i] = s.Key(k)
			}
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	return err
}

// Locker kvstore.Locker sobre redislock.
type Locker struct {
	client *redislock.Client
	key    string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewLocker construye el lock distribuido. ttl es la vida máxima de una transacción.
func NewLocker(s *Store, ttl time.Duration, log zerolog.Logger) *Locker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Locker{client: redislock.New(s.rdb), key: s.Key(lockKey), ttl: ttl, log: log}
}

// Lock espera el lock reintentando cada 50ms hasta agotar ttl (o el contexto).
func (l *Locker) Lock(ctx context.Context) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()
	lock, err := l.client.Obtain(waitCtx, l.key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(50 * time.Millisecond),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, fmt.Errorf("lock ocupado: %w", err)
		}
		return nil, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Msg("no se pudo liberar el lock")
		}
	}, nil
}

// NewTxRunner runner con escrituras en MULTI/EXEC y lock distribuido.
func NewTxRunner(s *Store, ttl time.Duration, log zerolog.Logger) *kvstore.Runner {
	return kvstore.NewRunner(s, NewLocker(s, ttl, log), log)
}
