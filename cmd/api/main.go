package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
	httpRouter "github.com/jhoicas/farmacia-pos/internal/interfaces/http"
	"github.com/jhoicas/farmacia-pos/pkg/config"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// @title                       Farmacia POS API
// @version                     1.0
// @description                 API de punto de venta para farmacia: inventario, ventas, caja diaria, crédito de clientes y respaldos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT con el prefijo Bearer
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("JWT_SECRET es obligatorio")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON, igual que los respaldos.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	ctr, res, err := bootstrap.Start(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar aplicación")
	}
	defer ctr.Close()
	log.Info().
		Bool("reset", res.Reset).
		Bool("admin_created", res.AdminCreated).
		Msg("aplicación inicializada")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // respaldos completos
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if !httpRouter.MountDocs(app, "./docs/swagger.json") {
		log.Warn().Msg("docs/swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      ctr.Auth,
		UserUC:      ctr.Users,
		ProductUC:   ctr.Products,
		SalesUC:     ctr.Sales,
		CashUC:      ctr.Cash,
		CreditUC:    ctr.Credit,
		BackupUC:    ctr.Backup,
		DashboardUC: ctr.Dashboard,
		ReportUC:    ctr.Reports,
		JWTSecret:   cfg.JWT.Secret,
		UIDir:       cfg.App.UIDir,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
