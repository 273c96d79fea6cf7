package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminConfig administrador principal que se crea si no existe.
type AdminConfig struct {
	Username string
	Password string
	Name     string
}

// AuthUseCase casos de uso de autenticación: login y administrador por defecto.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tx       repository.TxRunner
	jwtCfg   JWTConfig
	admin    AdminConfig
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tx repository.TxRunner, jwtCfg JWTConfig, admin AdminConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tx: tx, jwtCfg: jwtCfg, admin: admin, log: log}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Una contraseña en texto plano (respaldo antiguo) se reemplaza por su hash en el primer login correcto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	ok, upgrade := CheckPassword(user, in.Password)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if upgrade {
		if err := uc.upgradePassword(ctx, user.ID, in.Password); err != nil {
			return nil, err
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  ToUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) upgradePassword(ctx context.Context, userID, plain string) error {
	hash, err := HashPassword(plain)
	if err != nil {
		return err
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		u, err := r.Users.GetByID(ctx, userID)
		if err != nil || u == nil {
			return err
		}
		u.PasswordHash = hash
		u.Password = ""
		return r.Users.Update(ctx, u)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Msg("contraseña en texto plano reemplazada por hash")
	return nil
}

// EnsureDefaultAdmin crea el administrador principal si no existe un usuario con ese nombre.
// Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	if uc.admin.Username == "" {
		return false, nil
	}
	hash, err := HashPassword(uc.admin.Password)
	if err != nil {
		return false, err
	}
	created := false
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Users.GetByUsername(ctx, uc.admin.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		name := uc.admin.Name
		if name == "" {
			name = uc.admin.Username
		}
		created = true
		return r.Users.Create(ctx, &entity.User{
			ID:           uuid.New().String(),
			Username:     uc.admin.Username,
			PasswordHash: hash,
			Name:         name,
			Role:         entity.RoleAdmin,
			CreatedAt:    time.Now(),
		})
	})
	if err != nil {
		return false, err
	}
	if created {
		uc.log.Info().Str("username", uc.admin.Username).Msg("administrador por defecto creado")
	}
	return created, nil
}

// ToUserResponse convierte la entidad en la salida pública (sin contraseña).
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
