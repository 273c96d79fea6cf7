// Package credit clientes con cuenta corriente: alta, ventas a crédito, abonos y estado de cuenta.
package credit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/collation"
	"github.com/jhoicas/farmacia-pos/pkg/phone"
)

// Config parámetros del ledger de clientes.
type Config struct {
	PhoneRegion string // vacío = sin validar teléfonos
	Now         func() time.Time
}

// Statement estado de cuenta. Drift es saldo guardado - saldo recalculado de los asientos
// (distinto de cero en clientes importados de respaldos sin asientos).
type Statement struct {
	Client          entity.Client        `json:"client"`
	Entries         []entity.LedgerEntry `json:"entries"`
	Balance         decimal.Decimal      `json:"balance"`
	LedgerBalance   decimal.Decimal      `json:"ledgerBalance"`
	Drift           decimal.Decimal      `json:"drift"`
	AvailableCredit decimal.Decimal      `json:"availableCredit"`
}

// UseCase casos de uso de clientes y crédito.
type UseCase struct {
	clients repository.ClientRepository
	tx      repository.TxRunner
	cfg     Config
	log     zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(clients repository.ClientRepository, tx repository.TxRunner, cfg Config, log zerolog.Logger) *UseCase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &UseCase{clients: clients, tx: tx, cfg: cfg, log: log}
}

func (uc *UseCase) normalize(in *dto.ClientRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	if err := dto.Validate(*in); err != nil {
		return err
	}
	p, err := phone.Normalize(in.Phone, uc.cfg.PhoneRegion)
	if err != nil {
		return domain.NewValidationError("phone", err.Error())
	}
	in.Phone = p
	return nil
}

// Create da de alta un cliente con saldo cero.
func (uc *UseCase) Create(ctx context.Context, in dto.ClientRequest) (*entity.Client, error) {
	if err := uc.normalize(&in); err != nil {
		return nil, err
	}
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Phone:       in.Phone,
		Address:     in.Address,
		CreditLimit: in.CreditLimit,
		Balance:     decimal.Zero,
		Payments:    []entity.Payment{},
		CreatedAt:   uc.cfg.Now(),
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		return r.Clients.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Update edita datos y límite. Bajar el límite por debajo del saldo actual es un error de validación.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*entity.Client, error) {
	if err := uc.normalize(&in); err != nil {
		return nil, err
	}
	var out *entity.Client
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		client, err := r.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if in.CreditLimit.LessThan(client.Balance) {
			return domain.NewValidationError("creditLimit", "no puede ser menor que el saldo pendiente ("+client.Balance.StringFixed(2)+")")
		}
		client.Name = in.Name
		client.Phone = in.Phone
		client.Address = in.Address
		client.CreditLimit = in.CreditLimit
		now := uc.cfg.Now()
		client.UpdatedAt = &now
		if err := r.Clients.Update(ctx, client); err != nil {
			return err
		}
		out = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un cliente.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// List clientes por nombre; search filtra por nombre (sin tildes) o teléfono.
func (uc *UseCase) List(ctx context.Context, f dto.ClientFilter) ([]entity.Client, error) {
	clients, err := uc.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.TrimSpace(f.Search)
	out := make([]entity.Client, 0, len(clients))
	for _, c := range clients {
		if search == "" || collation.Contains(c.Name, search) || strings.Contains(c.Phone, search) {
			out = append(out, c)
		}
	}
	collation.SortBy(out, func(c entity.Client) string { return c.Name })
	return out, nil
}

// Delete elimina un cliente sin deuda. Con saldo distinto de cero devuelve ErrClientHasBalance.
// Un ID inexistente no es error.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		client, err := r.Clients.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if client == nil {
			return nil
		}
		if !client.Balance.IsZero() {
			return domain.ErrClientHasBalance
		}
		return r.Clients.Delete(ctx, id)
	})
}

// PostCreditSale carga amount a la cuenta del cliente (sin venta asociada si saleID es vacío).
func (uc *UseCase) PostCreditSale(ctx context.Context, clientID string, amount decimal.Decimal, saleID string) (*entity.Client, error) {
	var out *entity.Client
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		client, err := r.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if err := ledger.PostCreditSale(client, amount, saleID, uuid.New().String(), uc.cfg.Now()); err != nil {
			return err
		}
		if err := r.Clients.Update(ctx, client); err != nil {
			return err
		}
		out = client
		return nil
	})
	if err != nil {
		var limitErr *domain.CreditLimitExceededError
		if errors.As(err, &limitErr) {
			uc.log.Warn().Str("client_id", clientID).Str("projected", limitErr.Projected.StringFixed(2)).
				Str("limit", limitErr.Limit.StringFixed(2)).Msg("venta a crédito rechazada")
		}
		return nil, err
	}
	return out, nil
}

// PostPayment registra un abono (0 < monto <= saldo).
func (uc *UseCase) PostPayment(ctx context.Context, clientID string, in dto.PaymentRequest) (*entity.Payment, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var out *entity.Payment
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		client, err := r.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		payment, err := ledger.PostPayment(client, in.Amount, in.Description, uuid.New().String(), uuid.New().String(), uc.cfg.Now())
		if err != nil {
			return err
		}
		if err := r.Clients.Update(ctx, client); err != nil {
			return err
		}
		out = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", clientID).Str("amount", out.Amount.StringFixed(2)).Msg("abono registrado")
	return out, nil
}

// Statement estado de cuenta con el saldo recalculado desde los asientos.
func (uc *UseCase) Statement(ctx context.Context, clientID string) (*Statement, error) {
	client, err := uc.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	entries := client.Entries
	if entries == nil {
		entries = []entity.LedgerEntry{}
	}
	recomputed := client.LedgerBalance()
	return &Statement{
		Client:          *client,
		Entries:         entries,
		Balance:         client.Balance,
		LedgerBalance:   recomputed,
		Drift:           client.Balance.Sub(recomputed),
		AvailableCredit: client.AvailableCredit(),
	}, nil
}
