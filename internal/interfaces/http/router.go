package http

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/auth"
	"github.com/jhoicas/farmacia-pos/internal/application/backup"
	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/application/credit"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/application/usecase"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	SalesUC     *sales.UseCase
	CashUC      *cashregister.UseCase
	CreditUC    *credit.UseCase
	BackupUC    *backup.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	JWTSecret   string
	UIDir       string // build estático de la interfaz; vacío = solo API
}

// Router registra las rutas de la API y, si hay UIDir, sirve la interfaz.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/ping", ping)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/expiring", productHandler.Expiring)
	products.Get("/categories", productHandler.Categories)
	products.Get("/sku/:sku", productHandler.BySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Cash register
	cash := protected.Group("/cash")
	cashHandler := NewCashHandler(deps.CashUC)
	cash.Get("/", cashHandler.Get)
	cash.Put("/opening", cashHandler.SetOpening)
	cash.Post("/expenses", cashHandler.AddExpense)
	cash.Delete("/expenses/:id", cashHandler.DeleteExpense)
	cash.Get("/daily", cashHandler.Daily)
	cash.Post("/close", cashHandler.Close)
	cash.Get("/periods", cashHandler.Periods)

	// Clients (crédito)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.CreditUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Post("/:id/charges", clientHandler.Charge)
	clients.Post("/:id/payments", clientHandler.Payment)
	clients.Get("/:id/statement", clientHandler.Statement)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	reports := protected.Group("/reports")
	reports.Get("/sales", dashboardHandler.SalesReport)
	reports.Get("/sales/export", dashboardHandler.ExportSales)
	reports.Get("/inventory/export", dashboardHandler.ExportInventory)

	// Backup (solo admin)
	backupGroup := protected.Group("/backup", adminOnly)
	backupHandler := NewBackupHandler(deps.BackupUC)
	backupGroup.Get("/", backupHandler.Export)
	backupGroup.Post("/", backupHandler.Import)

	if deps.UIDir != "" {
		serveUI(app, deps.UIDir)
	}
}

// ping godoc
// @Summary      Verificar que la API responde
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "pong"
// @Router       /api/ping [get]
func ping(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// serveUI sirve el build estático y devuelve index.html para las rutas del cliente (SPA).
func serveUI(app *fiber.App, dir string) {
	index := filepath.Join(dir, "index.html")
	app.Static("/", dir, fiber.Static{Index: "index.html"})
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Next()
		}
		if _, err := os.Stat(index); err != nil {
			return c.Next()
		}
		return c.SendFile(index)
	})
}
