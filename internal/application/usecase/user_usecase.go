package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-pos/internal/application/auth"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/collation"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo              repository.UserRepository
	tx                repository.TxRunner
	protectedUsername string
}

// NewUserUseCase construye el caso de uso. protectedUsername es el administrador principal (no se puede eliminar).
func NewUserUseCase(repo repository.UserRepository, tx repository.TxRunner, protectedUsername string) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx, protectedUsername: protectedUsername}
}

// List usuarios ordenados por nombre, sin contraseñas.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	collation.SortBy(users, func(u entity.User) string { return u.Name })
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, auth.ToUserResponse(&users[i]))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// Create agrega un usuario. El nombre de usuario debe ser único.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		CreatedAt:    time.Now(),
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Users.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUsernameTaken
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// Delete elimina un usuario. No se puede eliminar al administrador principal ni al último administrador.
// Un ID inexistente no es error.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		users, err := r.Users.List(ctx)
		if err != nil {
			return err
		}
		var target *entity.User
		admins := 0
		for i := range users {
			if users[i].ID == id {
				target = &users[i]
			}
			if users[i].IsAdmin() {
				admins++
			}
		}
		if target == nil {
			return nil
		}
		if uc.protectedUsername != "" && target.Username == uc.protectedUsername {
			return domain.ErrProtectedUser
		}
		if target.IsAdmin() && admins <= 1 {
			return domain.ErrProtectedUser
		}
		return r.Users.Delete(ctx, id)
	})
}
