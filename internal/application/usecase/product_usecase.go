package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/collation"
)

// DefaultExpiryWindowDays ventana de alerta de vencimiento cuando no se configura otra.
const DefaultExpiryWindowDays = 30

// ProductConfig parámetros del catálogo.
type ProductConfig struct {
	ExpiryWindowDays int
	Location         *time.Location
	Now              func() time.Time
}

// ProductUseCase casos de uso del catálogo de productos. El stock solo baja por ventas o por edición manual.
type ProductUseCase struct {
	repo repository.ProductRepository
	tx   repository.TxRunner
	cfg  ProductConfig
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, tx repository.TxRunner, cfg ProductConfig) *ProductUseCase {
	if cfg.ExpiryWindowDays <= 0 {
		cfg.ExpiryWindowDays = DefaultExpiryWindowDays
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ProductUseCase{repo: repo, tx: tx, cfg: cfg}
}

// Create valida y agrega un producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		CreatedAt: uc.cfg.Now(),
	}
	applyProductRequest(product, in)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// FindBySKU búsqueda exacta por código (lector de código de barras en caja).
func (uc *ProductUseCase) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es obligatorio")
	}
	product, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update reemplaza los campos editables del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*entity.Product, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var updated *entity.Product
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		applyProductRequest(product, in)
		now := uc.cfg.Now()
		product.UpdatedAt = &now
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un producto por ID. Un ID inexistente no es error.
// Las ventas históricas conservan su copia de nombre y precio.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Products.Delete(ctx, id)
	})
}

// List lista el inventario ordenado por nombre, con búsqueda por nombre o SKU.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilter) ([]entity.Product, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.TrimSpace(f.Search)
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !collation.Contains(p.Name, search) && !strings.Contains(strings.ToLower(p.SKU), strings.ToLower(search)) {
			continue
		}
		if f.Category != "" && !collation.Equal(p.Category, f.Category) {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		out = append(out, p)
	}
	collation.SortBy(out, func(p entity.Product) string { return p.Name })
	return out, nil
}

// LowStock productos con stock <= stock mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]entity.Product, error) {
	return uc.List(ctx, dto.ProductFilter{LowStock: true})
}

// Expiring productos que vencen entre hoy y hoy+days, ordenados por fecha de vencimiento.
// days <= 0 usa la ventana configurada.
func (uc *ProductUseCase) Expiring(ctx context.Context, days int) ([]entity.Product, error) {
	if days <= 0 {
		days = uc.cfg.ExpiryWindowDays
	}
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.cfg.Now().In(uc.cfg.Location)
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.ExpiresWithin(now, days) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiryDate < out[j].ExpiryDate })
	return out, nil
}

// Categories categorías distintas del inventario, en orden alfabético.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		dup := false
		for _, c := range out {
			if collation.Equal(c, p.Category) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p.Category)
		}
	}
	collation.SortBy(out, func(s string) string { return s })
	return out, nil
}

func applyProductRequest(p *entity.Product, in dto.ProductRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.SKU = strings.TrimSpace(in.SKU)
	p.Category = strings.TrimSpace(in.Category)
	p.Price = in.Price
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.ExpiryDate = in.ExpiryDate
	p.Supplier = strings.TrimSpace(in.Supplier)
}
