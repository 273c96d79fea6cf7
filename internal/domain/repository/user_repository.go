package repository

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// UserRepository colección de usuarios.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	SaveAll(ctx context.Context, users []entity.User) error
	Delete(ctx context.Context, id string) error
}
