package repository

import "context"

// KV puerto del almacenamiento clave-valor: un documento JSON completo por clave.
// Get devuelve (nil, nil) si la clave no existe.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Repos agrupa los repositorios de colecciones atados a un mismo KV (o a una misma transacción).
type Repos struct {
	Products     ProductRepository
	Sales        SaleRepository
	Clients      ClientRepository
	Users        UserRepository
	CashRegister CashRegisterRepository
	Periods      LedgerPeriodRepository
	System       SystemRepository
}

// TxRunner ejecuta fn con repositorios cuyas escrituras solo se aplican si fn retorna nil.
// Las ejecuciones se serializan entre sí.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
