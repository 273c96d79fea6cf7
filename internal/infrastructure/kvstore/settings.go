package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

const cashRegisterField = "cashRegister"

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo guarda la caja dentro del documento settings, preservando las demás claves.
type CashRegisterRepo struct {
	kv  repository.KV
	log zerolog.Logger
}

// NewCashRegisterRepository construye el repositorio.
func NewCashRegisterRepository(kv repository.KV, log zerolog.Logger) *CashRegisterRepo {
	return &CashRegisterRepo{kv: kv, log: log}
}

func (r *CashRegisterRepo) loadSettings(ctx context.Context) (map[string]json.RawMessage, error) {
	raw, err := r.kv.Get(ctx, KeySettings)
	if err != nil {
		return nil, fmt.Errorf("%w: leer %s: %w", domain.ErrStorage, KeySettings, err)
	}
	settings := map[string]json.RawMessage{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil || settings == nil {
		r.log.Warn().Err(err).Str("key", KeySettings).Msg("configuración ilegible, se descarta")
		return map[string]json.RawMessage{}, nil
	}
	return settings, nil
}

// Get devuelve la caja guardada o nil si nunca se guardó (o está ilegible).
func (r *CashRegisterRepo) Get(ctx context.Context) (*entity.CashRegister, error) {
	settings, err := r.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	raw, ok := settings[cashRegisterField]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	var cash entity.CashRegister
	if err := json.Unmarshal(raw, &cash); err != nil {
		r.log.Warn().Err(err).Msg("caja ilegible, se usa la predeterminada")
		return nil, nil
	}
	if cash.Expenses == nil {
		cash.Expenses = []entity.Expense{}
	}
	return &cash, nil
}

// Save escribe settings.cashRegister sin tocar el resto del documento.
func (r *CashRegisterRepo) Save(ctx context.Context, cash *entity.CashRegister) error {
	settings, err := r.loadSettings(ctx)
	if err != nil {
		return err
	}
	c := *cash
	if c.Expenses == nil {
		c.Expenses = []entity.Expense{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: serializar caja: %w", domain.ErrStorage, err)
	}
	settings[cashRegisterField] = raw
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: serializar %s: %w", domain.ErrStorage, KeySettings, err)
	}
	if err := r.kv.Set(ctx, KeySettings, doc); err != nil {
		return fmt.Errorf("%w: escribir %s: %w", domain.ErrStorage, KeySettings, err)
	}
	return nil
}

var _ repository.LedgerPeriodRepository = (*PeriodRepo)(nil)

// PeriodRepo periodos de caja, ordenados por fecha.
type PeriodRepo struct {
	col Collection[entity.LedgerPeriod]
}

// NewPeriodRepository construye el repositorio.
func NewPeriodRepository(kv repository.KV, log zerolog.Logger) *PeriodRepo {
	return &PeriodRepo{col: NewCollection[entity.LedgerPeriod](kv, KeyLedgerPeriods, log)}
}

func (r *PeriodRepo) List(ctx context.Context) ([]entity.LedgerPeriod, error) {
	return r.col.Load(ctx)
}

func (r *PeriodRepo) GetByDate(ctx context.Context, date string) (*entity.LedgerPeriod, error) {
	return r.col.Find(ctx, func(p entity.LedgerPeriod) bool { return p.Date == date })
}

// Upsert inserta o reemplaza el periodo de la misma fecha.
func (r *PeriodRepo) Upsert(ctx context.Context, period *entity.LedgerPeriod) error {
	periods, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	if i := indexOf(periods, func(p entity.LedgerPeriod) bool { return p.Date == period.Date }); i >= 0 {
		periods[i] = *period
	} else {
		periods = append(periods, *period)
	}
	sort.SliceStable(periods, func(i, j int) bool { return periods[i].Date < periods[j].Date })
	return r.col.Save(ctx, periods)
}

func (r *PeriodRepo) SaveAll(ctx context.Context, periods []entity.LedgerPeriod) error {
	return r.col.Save(ctx, periods)
}

var _ repository.SystemRepository = (*SystemRepo)(nil)

// SystemRepo bandera de reinicio y borrado de colecciones.
type SystemRepo struct {
	kv repository.KV
}

// NewSystemRepository construye el repositorio.
func NewSystemRepository(kv repository.KV) *SystemRepo {
	return &SystemRepo{kv: kv}
}

func (r *SystemRepo) ResetCompleted(ctx context.Context) (bool, error) {
	raw, err := r.kv.Get(ctx, KeyResetComplete)
	if err != nil {
		return false, fmt.Errorf("%w: leer %s: %w", domain.ErrStorage, KeyResetComplete, err)
	}
	return string(bytes.TrimSpace(raw)) == "true", nil
}

func (r *SystemRepo) MarkResetCompleted(ctx context.Context) error {
	if err := r.kv.Set(ctx, KeyResetComplete, []byte("true")); err != nil {
		return fmt.Errorf("%w: escribir %s: %w", domain.ErrStorage, KeyResetComplete, err)
	}
	return nil
}

// ClearCollections borra todas las colecciones; la bandera de reinicio se conserva.
func (r *SystemRepo) ClearCollections(ctx context.Context) error {
	for _, key := range CollectionKeys {
		if err := r.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("%w: borrar %s: %w", domain.ErrStorage, key, err)
		}
	}
	return nil
}
