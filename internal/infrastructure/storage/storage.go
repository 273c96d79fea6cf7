// Package storage selecciona el backend clave-valor según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/filestore"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/kvstore"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/memory"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/redisstore"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/sqlitestore"
	"github.com/jhoicas/farmacia-pos/pkg/config"
)

// SQLiteFile nombre de la base dentro de STORE_DATA_DIR para el driver sqlite.
const SQLiteFile = "farmacia.db"

// Store KV abierto con sus repositorios de lectura y su TxRunner.
type Store struct {
	Driver string
	KV     repository.KV
	Repos  repository.Repos
	Tx     repository.TxRunner
	close  func()
}

// Close libera conexiones (no-op para memory y file).
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewMemory store en memoria (tests y modo demo).
func NewMemory(log zerolog.Logger) *Store {
	kv := memory.NewStore()
	return &Store{
		Driver: config.StoreMemory,
		KV:     kv,
		Repos:  kvstore.NewRepos(kv, log),
		Tx:     kvstore.NewRunner(kv, nil, log),
	}
}

// Open abre el backend configurado.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return NewMemory(log), nil

	case config.StoreFile:
		fs, err := filestore.Open(cfg.Store.DataDir)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.Store.Driver,
			KV:     fs,
			Repos:  kvstore.NewRepos(fs, log),
			Tx:     kvstore.NewRunner(fs, nil, log),
		}, nil

	case config.StoreSQLite:
		db, err := sqlitestore.Open(filepath.Join(cfg.Store.DataDir, SQLiteFile), cfg.App.LogLevel == "debug")
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver: cfg.Store.Driver,
			KV:     db,
			Repos:  kvstore.NewRepos(db, log),
			Tx:     kvstore.NewRunner(db, nil, log),
			close:  func() { _ = db.Close() },
		}, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		kv := postgres.NewKVStore(pool)
		return &Store{
			Driver: cfg.Store.Driver,
			KV:     kv,
			Repos:  kvstore.NewRepos(kv, log),
			Tx:     postgres.NewTxRunner(pool, log),
			close:  pool.Close,
		}, nil

	case config.StoreRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		kv := redisstore.NewStore(rdb, "")
		return &Store{
			Driver: cfg.Store.Driver,
			KV:     kv,
			Repos:  kvstore.NewRepos(kv, log),
			Tx:     redisstore.NewTxRunner(kv, cfg.Redis.LockTTL, log),
			close:  func() { _ = rdb.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Store.Driver)
}
