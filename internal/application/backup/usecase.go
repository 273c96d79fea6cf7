// Package backup exporta e importa el documento de respaldo completo del sistema.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// Version versión del formato de respaldo.
const Version = "1.0"

// Data colecciones del respaldo. Settings es la caja (initialBalance + expenses).
// Las listas vacías se exportan como [] para que al importar vacíen la colección destino.
type Data struct {
	Products []entity.Product      `json:"products"`
	Sales    []entity.Sale         `json:"sales"`
	Settings *entity.CashRegister  `json:"settings"`
	Clients  []entity.Client       `json:"clients"`
	Users    []entity.User         `json:"users"`
	Periods  []entity.LedgerPeriod `json:"periods"`
}

// Document respaldo completo.
type Document struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      Data      `json:"data"`
}

// ImportResult cantidad de registros restaurados por colección; las ausentes en el respaldo no aparecen.
type ImportResult struct {
	Restored map[string]int `json:"restored"`
}

// UseCase exportación e importación de respaldos.
type UseCase struct {
	repos          repository.Repos
	tx             repository.TxRunner
	defaultOpening decimal.Decimal
	now            func() time.Time
	log            zerolog.Logger
}

// NewUseCase construye el caso de uso. defaultOpening nil usa cashregister.DefaultOpening; now nil usa time.Now.
func NewUseCase(repos repository.Repos, tx repository.TxRunner, defaultOpening *decimal.Decimal, now func() time.Time, log zerolog.Logger) *UseCase {
	if now == nil {
		now = time.Now
	}
	opening := cashregister.DefaultOpening
	if defaultOpening != nil {
		opening = *defaultOpening
	}
	return &UseCase{repos: repos, tx: tx, defaultOpening: opening, now: now, log: log}
}

// Export lee todas las colecciones en una sola corrida para obtener una foto consistente.
func (uc *UseCase) Export(ctx context.Context) (*Document, error) {
	doc := &Document{Version: Version, Timestamp: uc.now().UTC()}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if doc.Data.Products, err = r.Products.List(ctx); err != nil {
			return err
		}
		if doc.Data.Sales, err = r.Sales.List(ctx); err != nil {
			return err
		}
		if doc.Data.Settings, err = cashregister.Load(ctx, r.CashRegister, uc.defaultOpening); err != nil {
			return err
		}
		if doc.Data.Clients, err = r.Clients.List(ctx); err != nil {
			return err
		}
		if doc.Data.Users, err = r.Users.List(ctx); err != nil {
			return err
		}
		doc.Data.Periods, err = r.Periods.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	doc.Data.Products = nonNil(doc.Data.Products)
	doc.Data.Sales = nonNil(doc.Data.Sales)
	doc.Data.Clients = nonNil(doc.Data.Clients)
	doc.Data.Users = nonNil(doc.Data.Users)
	doc.Data.Periods = nonNil(doc.Data.Periods)
	return doc, nil
}

// ExportJSON serializa el respaldo con sangría.
func (uc *UseCase) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := uc.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import restaura un respaldo. Si el documento no es JSON, no trae "data" o alguna colección presente
// no se puede decodificar devuelve *domain.InvalidBackupFormatError sin tocar el almacenamiento.
// Cada colección presente reemplaza a la guardada; las ausentes quedan igual. También deja la marca
// de reinicio, así el primer arranque posterior no borra lo restaurado.
func (uc *UseCase) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	p, err := parse(raw)
	if err != nil {
		return nil, err
	}
	res := &ImportResult{Restored: map[string]int{}}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if p.products != nil {
			if err := r.Products.SaveAll(ctx, p.products); err != nil {
				return err
			}
			res.Restored["products"] = len(p.products)
		}
		if p.sales != nil {
			if err := r.Sales.SaveAll(ctx, p.sales); err != nil {
				return err
			}
			res.Restored["sales"] = len(p.sales)
		}
		if p.settings != nil {
			if err := r.CashRegister.Save(ctx, p.settings); err != nil {
				return err
			}
			res.Restored["settings"] = 1
		}
		if p.clients != nil {
			if err := r.Clients.SaveAll(ctx, p.clients); err != nil {
				return err
			}
			res.Restored["clients"] = len(p.clients)
		}
		if p.users != nil {
			if err := r.Users.SaveAll(ctx, p.users); err != nil {
				return err
			}
			res.Restored["users"] = len(p.users)
		}
		if p.periods != nil {
			if err := r.Periods.SaveAll(ctx, p.periods); err != nil {
				return err
			}
			res.Restored["periods"] = len(p.periods)
		}
		return r.System.MarkResetCompleted(ctx)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("version", p.version).Interface("restored", res.Restored).Msg("respaldo restaurado")
	return res, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

type parsed struct {
	version  string
	products []entity.Product
	sales    []entity.Sale
	settings *entity.CashRegister
	clients  []entity.Client
	users    []entity.User
	periods  []entity.LedgerPeriod
}

func invalid(reason string, err error) error {
	return &domain.InvalidBackupFormatError{Reason: reason, Err: err}
}

func parse(raw []byte) (*parsed, error) {
	var top struct {
		Version string                     `json:"version"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, invalid("el archivo no es JSON válido", err)
	}
	if top.Data == nil {
		return nil, invalid("falta el objeto data", nil)
	}
	p := &parsed{version: top.Version}
	if err := decodeList(top.Data, "products", &p.products); err != nil {
		return nil, err
	}
	if err := decodeList(top.Data, "sales", &p.sales); err != nil {
		return nil, err
	}
	if err := decodeList(top.Data, "clients", &p.clients); err != nil {
		return nil, err
	}
	if err := decodeList(top.Data, "users", &p.users); err != nil {
		return nil, err
	}
	if err := decodeList(top.Data, "periods", &p.periods); err != nil {
		return nil, err
	}
	settings, err := decodeSettings(top.Data["settings"])
	if err != nil {
		return nil, err
	}
	p.settings = settings
	return p, nil
}

func present(msg json.RawMessage) bool {
	trimmed := bytes.TrimSpace(msg)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// decodeList decodifica data[key] en out. Una colección ausente o null deja out en nil;
// una lista vacía deja un slice vacío no nil (la colección se vacía al importar).
func decodeList[T any](data map[string]json.RawMessage, key string, out *[]T) error {
	msg, ok := data[key]
	if !ok || !present(msg) {
		return nil
	}
	items := []T{}
	if err := json.Unmarshal(msg, &items); err != nil {
		return invalid(fmt.Sprintf("colección %s", key), err)
	}
	*out = items
	return nil
}

// decodeSettings acepta la caja directamente o anidada como {"cashRegister": {...}}.
func decodeSettings(msg json.RawMessage) (*entity.CashRegister, error) {
	if !present(msg) {
		return nil, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(msg, &wrapped); err != nil {
		return nil, invalid("settings", err)
	}
	if inner, ok := wrapped["cashRegister"]; ok {
		if !present(inner) {
			return nil, nil
		}
		msg = inner
	}
	var cash entity.CashRegister
	if err := json.Unmarshal(msg, &cash); err != nil {
		return nil, invalid("settings", err)
	}
	if cash.Expenses == nil {
		cash.Expenses = []entity.Expense{}
	}
	return &cash, nil
}
