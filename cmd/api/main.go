package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/loyalty"
	"github.com/jhoicas/Inventario-pos/internal/application/purchasing"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/application/usecase"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// @title                      Inventario POS API
// @version                    1.0
// @description                Inventario, ventas, compras y fidelización de un punto de venta.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
// @description                "Bearer <token>"; el token se emite con cmd/token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	var (
		repos    repository.TxRepos
		txRunner repository.TxRunner
	)
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = store.Repos()
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = postgres.NewRepos(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	ledger := inventory.NewLedger()
	deps := httpRouter.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(txRunner, repos.Products, ledger),
		CustomerUC: usecase.NewCustomerUseCase(txRunner, repos.Customers),
		SupplierUC: usecase.NewSupplierUseCase(repos.Suppliers),
		LoyaltyUC:  loyalty.NewLoyaltyUseCase(txRunner, repos.Customers),
		SaleUC: sales.NewSaleUseCase(
			txRunner, repos.Customers, repos.Sales, ledger, cfg.Numbering.InvoicePrefix,
		),
		PurchaseUC: purchasing.NewPurchaseUseCase(
			txRunner, repos.Suppliers, repos.Products, repos.Purchases, ledger, cfg.Numbering.PurchasePrefix,
		),
		StockUC:   inventory.NewStockUseCase(txRunner, repos.Movements, ledger),
		AlertUC:   inventory.NewAlertUseCase(repos.Products),
		JWTSecret: cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(httpRouter.Docs(cfg.App.Name))

	app.Get("/health", httpRouter.Health(cfg.App.Name))
	httpRouter.Router(app, deps)

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
