package kvstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre KV.
type ClientRepo struct {
	col Collection[entity.Client]
}

// NewClientRepository construye el repositorio.
func NewClientRepository(kv repository.KV, log zerolog.Logger) *ClientRepo {
	return &ClientRepo{col: NewCollection[entity.Client](kv, KeyClients, log)}
}

func byClientID(id string) func(entity.Client) bool {
	return func(c entity.Client) bool { return c.ID == id }
}

func (r *ClientRepo) List(ctx context.Context) ([]entity.Client, error) {
	return r.col.Load(ctx)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return r.col.Find(ctx, byClientID(id))
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	return r.col.Append(ctx, *client)
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	return r.col.Replace(ctx, *client, byClientID(client.ID))
}

func (r *ClientRepo) SaveAll(ctx context.Context, clients []entity.Client) error {
	return r.col.Save(ctx, clients)
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return r.col.Remove(ctx, byClientID(id))
}
