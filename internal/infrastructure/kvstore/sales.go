package kvstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre KV.
type SaleRepo struct {
	col Collection[entity.Sale]
}

// NewSaleRepository construye el repositorio.
func NewSaleRepository(kv repository.KV, log zerolog.Logger) *SaleRepo {
	return &SaleRepo{col: NewCollection[entity.Sale](kv, KeySales, log)}
}

func (r *SaleRepo) List(ctx context.Context) ([]entity.Sale, error) {
	return r.col.Load(ctx)
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.col.Find(ctx, func(s entity.Sale) bool { return s.ID == id })
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.col.Append(ctx, *sale)
}

func (r *SaleRepo) SaveAll(ctx context.Context, sales []entity.Sale) error {
	return r.col.Save(ctx, sales)
}
