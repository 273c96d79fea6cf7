// Package cashregister caja diaria: saldo inicial, egresos, resumen del día y cierre por periodo.
package cashregister

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// DefaultOpening saldo inicial cuando la caja nunca se guardó.
var DefaultOpening = decimal.RequireFromString("1200.00")

// Config parámetros de caja.
type Config struct {
	DefaultOpening *decimal.Decimal // nil usa DefaultOpening; cero es un saldo válido
	Location       *time.Location
	Now            func() time.Time
}

// DailyReport resumen de caja de un día. Ventas y egresos se filtran por el mismo día.
type DailyReport struct {
	Date     string               `json:"date"`
	Summary  ledger.Summary       `json:"summary"`
	Period   *entity.LedgerPeriod `json:"period,omitempty"`
	Sales    []entity.Sale        `json:"sales"`
	Expenses []entity.Expense     `json:"expenses"`
}

// UseCase casos de uso de la caja.
type UseCase struct {
	repos   repository.Repos
	tx      repository.TxRunner
	cfg     Config
	opening decimal.Decimal
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso. repos se usa para lecturas; las escrituras van por tx.
func NewUseCase(repos repository.Repos, tx repository.TxRunner, cfg Config, log zerolog.Logger) *UseCase {
	opening := DefaultOpening
	if cfg.DefaultOpening != nil {
		opening = *cfg.DefaultOpening
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &UseCase{repos: repos, tx: tx, cfg: cfg, opening: opening, log: log}
}

// Load devuelve la caja guardada o la predeterminada {initialBalance: def, expenses: []}.
func Load(ctx context.Context, repo repository.CashRegisterRepository, def decimal.Decimal) (*entity.CashRegister, error) {
	cash, err := repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cash == nil {
		return &entity.CashRegister{InitialBalance: def, Expenses: []entity.Expense{}}, nil
	}
	return cash, nil
}

// Get estado actual de la caja.
func (uc *UseCase) Get(ctx context.Context) (*entity.CashRegister, error) {
	return Load(ctx, uc.repos.CashRegister, uc.opening)
}

// SetOpeningBalance fija el saldo inicial y lo registra como apertura del periodo de hoy.
// Si el periodo de hoy ya está cerrado devuelve ErrConflict.
func (uc *UseCase) SetOpeningBalance(ctx context.Context, in dto.OpeningBalanceRequest) (*entity.CashRegister, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.cfg.Now()
	date := ledger.Day(now, uc.cfg.Location).Date()
	var out *entity.CashRegister
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		period, err := r.Periods.GetByDate(ctx, date)
		if err != nil {
			return err
		}
		if period != nil && period.Closed {
			return domain.ErrConflict
		}
		if period == nil {
			period = &entity.LedgerPeriod{Date: date, OpenedAt: now}
		}
		period.OpeningBalance = in.Amount
		if err := r.Periods.Upsert(ctx, period); err != nil {
			return err
		}
		cash, err := Load(ctx, r.CashRegister, uc.opening)
		if err != nil {
			return err
		}
		cash.InitialBalance = in.Amount
		if err := r.CashRegister.Save(ctx, cash); err != nil {
			return err
		}
		out = cash
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("date", date).Str("amount", in.Amount.StringFixed(2)).Msg("saldo inicial de caja")
	return out, nil
}

// PostExpense registra un egreso.
func (uc *UseCase) PostExpense(ctx context.Context, in dto.ExpenseRequest) (*entity.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	expense := entity.Expense{
		ID:          uuid.New().String(),
		Description: in.Description,
		Amount:      in.Amount,
		CreatedAt:   uc.cfg.Now(),
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		cash, err := Load(ctx, r.CashRegister, uc.opening)
		if err != nil {
			return err
		}
		cash.Expenses = append(cash.Expenses, expense)
		return r.CashRegister.Save(ctx, cash)
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// RemoveExpense elimina un egreso. Un ID inexistente no es error.
func (uc *UseCase) RemoveExpense(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		cash, err := Load(ctx, r.CashRegister, uc.opening)
		if err != nil {
			return err
		}
		kept := make([]entity.Expense, 0, len(cash.Expenses))
		for _, e := range cash.Expenses {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(cash.Expenses) {
			return nil
		}
		cash.Expenses = kept
		return r.CashRegister.Save(ctx, cash)
	})
}

// Daily resumen del día date (AAAA-MM-DD; vacío = hoy).
func (uc *UseCase) Daily(ctx context.Context, date string) (*DailyReport, error) {
	day, err := uc.day(date)
	if err != nil {
		return nil, err
	}
	return uc.daily(ctx, uc.repos, day)
}

// ClosePeriod calcula y guarda el cierre del día date (vacío = hoy). Cerrar dos veces devuelve ErrConflict.
func (uc *UseCase) ClosePeriod(ctx context.Context, date string) (*entity.LedgerPeriod, error) {
	day, err := uc.day(date)
	if err != nil {
		return nil, err
	}
	var closed *entity.LedgerPeriod
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		report, err := uc.daily(ctx, r, day)
		if err != nil {
			return err
		}
		period := report.Period
		if period != nil && period.Closed {
			return domain.ErrConflict
		}
		now := uc.cfg.Now()
		if period == nil {
			period = &entity.LedgerPeriod{
				Date:           day.Date(),
				OpeningBalance: report.Summary.Opening,
				OpenedAt:       now,
			}
		}
		sales := report.Summary.Income
		expenses := report.Summary.Expenses
		closing := report.Summary.Closing
		period.Closed = true
		period.SalesTotal = &sales
		period.ExpensesTotal = &expenses
		period.ClosingBalance = &closing
		period.SalesCount = report.Summary.SalesCount
		period.ClosedAt = &now
		if err := r.Periods.Upsert(ctx, period); err != nil {
			return err
		}
		closed = period
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("date", closed.Date).Str("closing", closed.ClosingBalance.StringFixed(2)).Msg("cierre de caja")
	return closed, nil
}

// Periods historial de aperturas y cierres.
func (uc *UseCase) Periods(ctx context.Context) ([]entity.LedgerPeriod, error) {
	return uc.repos.Periods.List(ctx)
}

func (uc *UseCase) day(date string) (ledger.Range, error) {
	if date == "" {
		return ledger.Day(uc.cfg.Now(), uc.cfg.Location), nil
	}
	day, err := ledger.ParseDay(date, uc.cfg.Location)
	if err != nil {
		return ledger.Range{}, domain.NewValidationError("date", "fecha inválida (AAAA-MM-DD)")
	}
	return day, nil
}

// daily usa la apertura registrada del periodo si existe; si no, el saldo inicial actual.
func (uc *UseCase) daily(ctx context.Context, r repository.Repos, day ledger.Range) (*DailyReport, error) {
	cash, err := Load(ctx, r.CashRegister, uc.opening)
	if err != nil {
		return nil, err
	}
	period, err := r.Periods.GetByDate(ctx, day.Date())
	if err != nil {
		return nil, err
	}
	allSales, err := r.Sales.List(ctx)
	if err != nil {
		return nil, err
	}
	opening := cash.InitialBalance
	if period != nil {
		opening = period.OpeningBalance
	}
	sales := ledger.FilterSales(allSales, day)
	expenses := ledger.FilterExpenses(cash.Expenses, day)
	return &DailyReport{
		Date:     day.Date(),
		Summary:  ledger.Summarize(opening, sales, expenses),
		Period:   period,
		Sales:    sales,
		Expenses: expenses,
	}, nil
}
