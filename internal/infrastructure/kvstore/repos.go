package kvstore

import (
	"github.com/rs/zerolog"

	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// NewRepos ata todos los repositorios al mismo KV.
func NewRepos(kv repository.KV, log zerolog.Logger) repository.Repos {
	return repository.Repos{
		Products:     NewProductRepository(kv, log),
		Sales:        NewSaleRepository(kv, log),
		Clients:      NewClientRepository(kv, log),
		Users:        NewUserRepository(kv, log),
		CashRegister: NewCashRegisterRepository(kv, log),
		Periods:      NewPeriodRepository(kv, log),
		System:       NewSystemRepository(kv),
	}
}
