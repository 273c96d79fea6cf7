// Package sales registra ventas de caja: guarda la venta, descuenta stock y, si es a crédito,
// carga el monto a la cuenta del cliente en la misma transacción.
package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// Config reloj y zona horaria de los filtros por día.
type Config struct {
	Location *time.Location
	Now      func() time.Time
}

// SaleResult venta registrada más los avisos de stock (líneas sin producto o con stock insuficiente).
type SaleResult struct {
	Sale     entity.Sale `json:"sale"`
	Warnings []string    `json:"warnings,omitempty"`
}

// UseCase registro de ventas.
type UseCase struct {
	sales repository.SaleRepository
	tx    repository.TxRunner
	cfg   Config
	log   zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(sales repository.SaleRepository, tx repository.TxRunner, cfg Config, log zerolog.Logger) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &UseCase{sales: sales, tx: tx, cfg: cfg, log: log}
}

// RecordSale valida el carrito, guarda la venta y descuenta stock (piso en cero).
// Total cero se calcula de las líneas; un total distinto de la suma es un error de validación.
// Una venta a crédito rechazada por el límite del cliente no deja rastro (ni venta ni cambio de stock).
func (uc *UseCase) RecordSale(ctx context.Context, in dto.CreateSaleRequest) (*SaleResult, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	sale := entity.Sale{
		ID:            uuid.New().String(),
		Items:         make([]entity.SaleItem, 0, len(in.Items)),
		PaymentMethod: in.PaymentMethod,
		ClientID:      strings.TrimSpace(in.ClientID),
		CreatedAt:     uc.cfg.Now(),
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = entity.PaymentCash
	}
	for _, it := range in.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	sum := sale.ItemsTotal()
	switch {
	case in.Total.IsZero():
		sale.Total = sum
	case in.Total.Equal(sum):
		sale.Total = in.Total
	default:
		return nil, domain.NewValidationError("total",
			fmt.Sprintf("no coincide con la suma de las líneas (%s)", sum.StringFixed(2)))
	}
	if sale.IsCredit() && !sale.Total.IsPositive() {
		return nil, domain.NewValidationError("total", "una venta a crédito debe tener total mayor que cero")
	}

	var warnings []string
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		warnings = nil
		if err := r.Sales.Create(ctx, &sale); err != nil {
			return err
		}
		if sale.IsCredit() {
			if err := postCredit(ctx, r, &sale); err != nil {
				return err
			}
		}
		w, err := decrementStock(ctx, r, sale)
		if err != nil {
			return err
		}
		warnings = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		uc.log.Warn().Str("sale_id", sale.ID).Msg(w)
	}
	uc.log.Info().Str("sale_id", sale.ID).Str("total", sale.Total.StringFixed(2)).
		Str("payment_method", sale.PaymentMethod).Int("items", len(sale.Items)).Msg("venta registrada")
	return &SaleResult{Sale: sale, Warnings: warnings}, nil
}

func postCredit(ctx context.Context, r repository.Repos, sale *entity.Sale) error {
	client, err := r.Clients.GetByID(ctx, sale.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("cliente %s: %w", sale.ClientID, domain.ErrNotFound)
	}
	if err := ledger.PostCreditSale(client, sale.Total, sale.ID, uuid.New().String(), sale.CreatedAt); err != nil {
		return err
	}
	return r.Clients.Update(ctx, client)
}

// decrementStock busca cada línea por productId y, para ventas antiguas sin id, por nombre exacto.
func decrementStock(ctx context.Context, r repository.Repos, sale entity.Sale) ([]string, error) {
	products, err := r.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	var warnings []string
	changed := false
	for _, it := range sale.Items {
		idx := -1
		for i := range products {
			if it.ProductID != "" && products[i].ID == it.ProductID {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i := range products {
				if products[i].Name == it.Name {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			warnings = append(warnings, fmt.Sprintf("producto no encontrado: %q (stock sin descontar)", it.Name))
			continue
		}
		if short := products[idx].DecrementStock(it.Quantity); short > 0 {
			warnings = append(warnings, fmt.Sprintf("stock insuficiente para %q: faltaron %d unidades", products[idx].Name, short))
		}
		now := sale.CreatedAt
		products[idx].UpdatedAt = &now
		changed = true
	}
	if changed {
		if err := r.Products.SaveAll(ctx, products); err != nil {
			return nil, err
		}
	}
	return warnings, nil
}

// List ventas en el rango [from, to] (días inclusive, vacío = abierto), en orden de registro.
func (uc *UseCase) List(ctx context.Context, f dto.DateRangeFilter) ([]entity.Sale, error) {
	if err := dto.Validate(f); err != nil {
		return nil, err
	}
	rng, err := ledger.Between(f.From, f.To, uc.cfg.Location)
	if err != nil {
		return nil, domain.NewValidationError("from", err.Error())
	}
	all, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.FilterSales(all, rng), nil
}

// GetByID obtiene una venta.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}
