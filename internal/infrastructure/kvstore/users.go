package kvstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre KV.
type UserRepo struct {
	col Collection[entity.User]
}

// NewUserRepository construye el repositorio.
func NewUserRepository(kv repository.KV, log zerolog.Logger) *UserRepo {
	return &UserRepo{col: NewCollection[entity.User](kv, KeyUsers, log)}
}

func byUserID(id string) func(entity.User) bool {
	return func(u entity.User) bool { return u.ID == id }
}

func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	return r.col.Load(ctx)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.col.Find(ctx, byUserID(id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.col.Find(ctx, func(u entity.User) bool { return u.Username == username })
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.col.Append(ctx, *user)
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.col.Replace(ctx, *user, byUserID(user.ID))
}

func (r *UserRepo) SaveAll(ctx context.Context, users []entity.User) error {
	return r.col.Save(ctx, users)
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.col.Remove(ctx, byUserID(id))
}
