package kvstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre KV.
type ProductRepo struct {
	col Collection[entity.Product]
}

// NewProductRepository construye el repositorio.
func NewProductRepository(kv repository.KV, log zerolog.Logger) *ProductRepo {
	return &ProductRepo{col: NewCollection[entity.Product](kv, KeyProducts, log)}
}

func byProductID(id string) func(entity.Product) bool {
	return func(p entity.Product) bool { return p.ID == id }
}

// List devuelve todos los productos en orden de alta.
func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	return r.col.Load(ctx)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.col.Find(ctx, byProductID(id))
}

// GetBySKU obtiene el primer producto con ese SKU (lector de código de barras).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.col.Find(ctx, func(p entity.Product) bool { return p.SKU == sku })
}

// Create agrega el producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.col.Append(ctx, *product)
}

// Update reemplaza el producto con el mismo ID.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.col.Replace(ctx, *product, byProductID(product.ID))
}

// SaveAll sobrescribe la colección completa.
func (r *ProductRepo) SaveAll(ctx context.Context, products []entity.Product) error {
	return r.col.Save(ctx, products)
}

// Delete elimina por ID (idempotente).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.col.Remove(ctx, byProductID(id))
}
