package repository

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// SaleRepository colección de ventas (solo alta, sin edición ni borrado).
type SaleRepository interface {
	List(ctx context.Context) ([]entity.Sale, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Create(ctx context.Context, sale *entity.Sale) error
	SaveAll(ctx context.Context, sales []entity.Sale) error
}
