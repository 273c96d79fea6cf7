// Package sqlitestore KV embebido sobre SQLite (gorm): una fila por clave en kv_documents.
// A diferencia de filestore, WriteBatch corre en una sola transacción.
package sqlitestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// document fila de kv_documents.
type document struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (document) TableName() string { return "kv_documents" }

// Store KV sobre una base SQLite.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base en path y migra la tabla. debug activa el log SQL de gorm.
func Open(path string, debug bool) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}

	gormLogger := logger.Default
	if !debug {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("obtener sql db: %w", err)
	}
	// un solo escritor; WAL deja leer mientras se escribe
	sqlDB.SetMaxOpenConns(1)
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	if err := db.AutoMigrate(&document{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrar kv_documents: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc document
	err := s.db.WithContext(ctx).Take(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return upsert(s.db.WithContext(ctx), key, value)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&document{}, "key = ?", key).Error
}

// WriteBatch aplica sets y deletes en una transacción: o se ven todos o ninguno.
func (s *Store) WriteBatch(ctx context.Context, sets map[string][]byte, deletes []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range sets {
			if err := upsert(tx, key, value); err != nil {
				return fmt.Errorf("escribir %s: %w", key, err)
			}
		}
		if len(deletes) > 0 {
			if err := tx.Delete(&document{}, "key IN ?", deletes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(db *gorm.DB, key string, value []byte) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&document{Key: key, Value: value, UpdatedAt: time.Now().UTC()}).Error
}
