// @title        Apskaita API
// @version      1.0
// @description  Cheques, líneas, categorías y reportes de gasto.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/apskaita-api/docs"
	"github.com/jhoicas/apskaita-api/internal/application/purchases"
	"github.com/jhoicas/apskaita-api/internal/application/reporting"
	"github.com/jhoicas/apskaita-api/internal/domain/repository"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/apskaita-api/internal/infrastructure/pdf"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/postgres"
	"github.com/jhoicas/apskaita-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/apskaita-api/internal/interfaces/http"
	"github.com/jhoicas/apskaita-api/pkg/config"
	"github.com/jhoicas/apskaita-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner purchases.TxRunner
		reports  repository.ReportRepository
		ping     func(context.Context) error
	)
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		store := memory.New()
		txRunner, reports, ping = store, store.Reports(), store.Ping
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
	default:
		backend, err := postgres.Open(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer backend.Close()
		txRunner, reports, ping = backend.Tx, backend.Reports, backend.Ping
	}

	receiptUC := purchases.NewReceiptUseCase(txRunner)
	lineItemUC := purchases.NewLineItemUseCase(txRunner)
	categoryUC := purchases.NewCategoryUseCase(txRunner)
	receiptPDFUC := purchases.NewPDFUseCase(txRunner, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	reportUC := reporting.NewReportUseCase(reports, xlsx.NewReportExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Apskaita API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := ping(c.UserContext()); err != nil {
			log.Error().Err(err).Msg("health")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReceiptUC:  receiptUC,
		LineItemUC: lineItemUC,
		CategoryUC: categoryUC,
		ReceiptPDF: receiptPDFUC,
		ReportUC:   reportUC,
		Logger:     log.Component("http"),
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
