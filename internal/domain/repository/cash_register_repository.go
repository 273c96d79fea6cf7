package repository

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// CashRegisterRepository documento de caja anidado en settings. Get devuelve (nil, nil) si nunca se guardó.
type CashRegisterRepository interface {
	Get(ctx context.Context) (*entity.CashRegister, error)
	Save(ctx context.Context, cash *entity.CashRegister) error
}

// LedgerPeriodRepository periodos de caja por día.
type LedgerPeriodRepository interface {
	List(ctx context.Context) ([]entity.LedgerPeriod, error)
	GetByDate(ctx context.Context, date string) (*entity.LedgerPeriod, error)
	Upsert(ctx context.Context, period *entity.LedgerPeriod) error
	SaveAll(ctx context.Context, periods []entity.LedgerPeriod) error
}

// SystemRepository banderas de sistema (reinicio único) y borrado de colecciones.
type SystemRepository interface {
	ResetCompleted(ctx context.Context) (bool, error)
	MarkResetCompleted(ctx context.Context) error
	ClearCollections(ctx context.Context) error
}
