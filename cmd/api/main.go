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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	appanalytics "github.com/jhoicas/Cotiza-api/internal/application/analytics"
	"github.com/jhoicas/Cotiza-api/internal/application/auth"
	"github.com/jhoicas/Cotiza-api/internal/application/billing"
	"github.com/jhoicas/Cotiza-api/internal/application/quoting"
	"github.com/jhoicas/Cotiza-api/internal/application/subscription"
	"github.com/jhoicas/Cotiza-api/internal/application/usecase"
	infrapayment "github.com/jhoicas/Cotiza-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/Cotiza-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotiza-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cotiza-api/internal/interfaces/http"
	"github.com/jhoicas/Cotiza-api/pkg/config"
	"github.com/jhoicas/Cotiza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	defaultVatRate, err := decimal.NewFromString(cfg.Billing.DefaultVatRate)
	if err != nil {
		log.Warn().Str("valor", cfg.Billing.DefaultVatRate).Msg("tasa de IVA inválida, usando 5")
		defaultVatRate = decimal.NewFromInt(5)
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	discountRepo := postgres.NewDiscountRequestRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	usageRepo := postgres.NewTokenUsageRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	vatRepo := postgres.NewVatReturnRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	catalogUC := usecase.NewCatalogUseCase(productRepo, categoryRepo)

	quoteUC := quoting.NewQuoteUseCase(txRunner, quoteRepo, userRepo, quoting.Options{
		QuotePrefix:    cfg.Billing.QuotePrefix,
		DefaultVatRate: defaultVatRate,
		QuoteDays:      cfg.Billing.QuoteDays,
	})
	discountUC := quoting.NewDiscountUseCase(txRunner, discountRepo, quoteRepo, userRepo)

	gateway := infrapayment.NewStubGateway()
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, quoteRepo, userRepo, gateway, billing.Options{
		InvoicePrefix:  cfg.Billing.InvoicePrefix,
		DefaultVatRate: defaultVatRate,
		DueDays:        cfg.Billing.InvoiceDueDays,
	})

	// PDF: representación imprimible de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	pdfUC := billing.NewPDFUseCase(invoiceRepo, userRepo, pdfGenerator)

	subscriptionUC := subscription.NewUseCase(txRunner, planRepo, subRepo, usageRepo, userRepo)
	expenseUC := accounting.NewExpenseUseCase(txRunner, expenseRepo, accountRepo, defaultVatRate)
	vatUC := accounting.NewVatUseCase(vatRepo, invoiceRepo, expenseRepo)
	accountUC := accounting.NewAccountUseCase(accountRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CotizaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		CatalogUC:      catalogUC,
		QuoteUC:        quoteUC,
		DiscountUC:     discountUC,
		InvoiceUC:      invoiceUC,
		PDFUC:          pdfUC,
		SubscriptionUC: subscriptionUC,
		ExpenseUC:      expenseUC,
		VatUC:          vatUC,
		AccountUC:      accountUC,
		DashboardUC:    dashboardUC,
		JWTSecret:      cfg.JWT.Secret,
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
