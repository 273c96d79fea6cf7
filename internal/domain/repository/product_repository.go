package repository

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// ProductRepository colección de productos. GetBy* devuelven (nil, nil) si no existe.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	SaveAll(ctx context.Context, products []entity.Product) error
	// Delete es idempotente: un id inexistente no es error.
	Delete(ctx context.Context, id string) error
}
