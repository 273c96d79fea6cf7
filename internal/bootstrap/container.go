// Package bootstrap arma los casos de uso sobre el almacenamiento configurado.
// Lo comparten la API HTTP y la CLI.
package bootstrap

import (
	"context"
	"time"

	appanalytics "github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/auth"
	"github.com/jhoicas/farmacia-pos/internal/application/backup"
	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/application/credit"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/application/system"
	"github.com/jhoicas/farmacia-pos/internal/application/usecase"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/farmacia-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/storage"
	"github.com/jhoicas/farmacia-pos/pkg/config"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// Container casos de uso listos para usar.
type Container struct {
	Store     *storage.Store
	Auth      *auth.AuthUseCase
	Users     *usecase.UserUseCase
	Products  *usecase.ProductUseCase
	Sales     *sales.UseCase
	Cash      *cashregister.UseCase
	Credit    *credit.UseCase
	Backup    *backup.UseCase
	System    *system.UseCase
	Dashboard *appanalytics.DashboardUseCase
	Reports   *appanalytics.ReportUseCase
}

// New abre el almacenamiento de cfg y construye los casos de uso. Close libera el store.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	store, err := storage.Open(ctx, cfg, log.Component("kvstore"))
	if err != nil {
		return nil, err
	}
	return Build(store, cfg, log), nil
}

// Start abre el almacenamiento y ejecuta InitializeApp: reinicio único (si falta la marca) y
// administrador por defecto. Toda apertura del store pasa por aquí, sea la API o la CLI.
func Start(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, *system.InitResult, error) {
	ctr, err := New(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	res, err := ctr.System.InitializeApp(ctx)
	if err != nil {
		ctr.Close()
		return nil, nil, err
	}
	return ctr, res, nil
}

// Build construye los casos de uso sobre un store ya abierto.
func Build(store *storage.Store, cfg *config.Config, log *logger.Logger) *Container {
	loc := cfg.Cash.Location()
	now := time.Now
	repos := store.Repos

	authUC := auth.NewAuthUseCase(repos.Users, store.Tx, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.AdminConfig{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	}, log.Component("auth"))

	renderers := map[string]appanalytics.ReportRenderer{
		appanalytics.FormatPDF:  infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		appanalytics.FormatXLSX: excel.NewExporter(),
	}

	return &Container{
		Store: store,
		Auth:  authUC,
		Users: usecase.NewUserUseCase(repos.Users, store.Tx, cfg.Admin.Username),
		Products: usecase.NewProductUseCase(repos.Products, store.Tx, usecase.ProductConfig{
			ExpiryWindowDays: cfg.App.ExpiryWindowDays,
			Location:         loc,
			Now:              now,
		}),
		Sales: sales.NewUseCase(repos.Sales, store.Tx, sales.Config{Location: loc, Now: now}, log.Component("ventas")),
		Cash: cashregister.NewUseCase(repos, store.Tx, cashregister.Config{
			DefaultOpening: &cfg.Cash.DefaultOpening,
			Location:       loc,
			Now:            now,
		}, log.Component("caja")),
		Credit: credit.NewUseCase(repos.Clients, store.Tx, credit.Config{
			PhoneRegion: cfg.App.PhoneRegion,
			Now:         now,
		}, log.Component("credito")),
		Backup: backup.NewUseCase(repos, store.Tx, &cfg.Cash.DefaultOpening, now, log.Component("respaldo")),
		System: system.NewUseCase(store.Tx, authUC, log.Component("sistema")),
		Dashboard: appanalytics.NewDashboardUseCase(repos.Products, repos.Sales, appanalytics.DashboardConfig{
			ExpiryWindowDays: cfg.App.ExpiryWindowDays,
			Location:         loc,
			Now:              now,
		}),
		Reports: appanalytics.NewReportUseCase(repos, renderers, appanalytics.ReportConfig{
			DefaultOpening: &cfg.Cash.DefaultOpening,
			Currency:       cfg.Cash.Currency,
			Location:       loc,
			Now:            now,
		}),
	}
}

// Close cierra el almacenamiento.
func (c *Container) Close() {
	c.Store.Close()
}
