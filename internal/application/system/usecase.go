// Package system arranque de la aplicación: reinicio único de datos y administrador por defecto.
package system

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// AdminEnsurer crea el administrador principal si falta.
type AdminEnsurer interface {
	EnsureDefaultAdmin(ctx context.Context) (bool, error)
}

// InitResult qué hizo InitializeApp.
type InitResult struct {
	Reset        bool `json:"reset"`
	AdminCreated bool `json:"adminCreated"`
}

// UseCase casos de uso de sistema.
type UseCase struct {
	tx    repository.TxRunner
	admin AdminEnsurer
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, admin AdminEnsurer, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, admin: admin, log: log}
}

// InitializeApp se ejecuta en cada arranque. La primera vez (sin la marca de reinicio) borra todas
// las colecciones y deja la marca; luego asegura el administrador por defecto.
func (uc *UseCase) InitializeApp(ctx context.Context) (*InitResult, error) {
	res := &InitResult{}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		done, err := r.System.ResetCompleted(ctx)
		if err != nil || done {
			return err
		}
		if err := r.System.ClearCollections(ctx); err != nil {
			return err
		}
		res.Reset = true
		return r.System.MarkResetCompleted(ctx)
	})
	if err != nil {
		return nil, err
	}
	if res.Reset {
		uc.log.Warn().Msg("reinicio inicial del sistema: colecciones borradas")
	}
	if uc.admin != nil {
		created, err := uc.admin.EnsureDefaultAdmin(ctx)
		if err != nil {
			return nil, err
		}
		res.AdminCreated = created
	}
	return res, nil
}

// Reset borra todas las colecciones y deja la marca de reinicio. Uso administrativo (CLI).
func (uc *UseCase) Reset(ctx context.Context) error {
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.System.ClearCollections(ctx); err != nil {
			return err
		}
		return r.System.MarkResetCompleted(ctx)
	})
	if err != nil {
		return err
	}
	uc.log.Warn().Msg("colecciones borradas por reinicio manual")
	return nil
}
