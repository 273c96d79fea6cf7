package repository

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// ClientRepository colección de clientes con su cuenta corriente.
type ClientRepository interface {
	List(ctx context.Context) ([]entity.Client, error)
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	SaveAll(ctx context.Context, clients []entity.Client) error
	Delete(ctx context.Context, id string) error
}
