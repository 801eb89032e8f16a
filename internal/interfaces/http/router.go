package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cotiza-api/internal/application/accounting"
	"github.com/jhoicas/Cotiza-api/internal/application/analytics"
	"github.com/jhoicas/Cotiza-api/internal/application/auth"
	"github.com/jhoicas/Cotiza-api/internal/application/billing"
	"github.com/jhoicas/Cotiza-api/internal/application/quoting"
	"github.com/jhoicas/Cotiza-api/internal/application/subscription"
	"github.com/jhoicas/Cotiza-api/internal/application/usecase"
	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CatalogUC      *usecase.CatalogUseCase
	QuoteUC        *quoting.QuoteUseCase
	DiscountUC     *quoting.DiscountUseCase
	InvoiceUC      *billing.InvoiceUseCase
	PDFUC          *billing.PDFUseCase
	SubscriptionUC *subscription.UseCase
	ExpenseUC      *accounting.ExpenseUseCase
	VatUC          *accounting.VatUseCase
	AccountUC      *accounting.AccountUseCase
	DashboardUC    *analytics.DashboardUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staffOnly := RequireRole(entity.RoleAdmin, entity.RoleSales, entity.RoleFinance)
	salesOnly := RequireRole(entity.RoleAdmin, entity.RoleSales)
	financeOnly := RequireRole(entity.RoleAdmin, entity.RoleFinance)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Users (solo admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/:id/approve", userHandler.Approve)
	users.Post("/:id/suspend", userHandler.Suspend)
	users.Post("/:id/reactivate", userHandler.Reactivate)
	users.Patch("/:id/role", userHandler.ChangeRole)
	users.Post("/:id/reset-password", userHandler.ResetPassword)
	users.Patch("/:id/discount-limit", userHandler.UpdateDiscountLimit)

	// Catálogo: lectura para cualquier autenticado, escritura para ventas
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Post("/", salesOnly, catalogHandler.CreateProduct)
	products.Put("/:id", salesOnly, catalogHandler.UpdateProduct)
	products.Delete("/:id", salesOnly, catalogHandler.DeleteProduct)

	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", salesOnly, catalogHandler.CreateCategory)
	categories.Put("/:id", salesOnly, catalogHandler.UpdateCategory)
	categories.Delete("/:id", salesOnly, catalogHandler.DeleteCategory)

	// Quotes: creación solo ventas; lectura y transición según dueño/rol
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", salesOnly, quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id/status", quoteHandler.UpdateStatus)

	// Discount requests (staff; la decisión final exige admin vía policy)
	discounts := protected.Group("/discount-requests", staffOnly)
	discountHandler := NewDiscountHandler(deps.DiscountUC)
	discounts.Post("/", discountHandler.Create)
	discounts.Get("/", discountHandler.List)
	discounts.Get("/:id", discountHandler.GetByID)
	discounts.Put("/:id/approve", discountHandler.Approve)
	discounts.Put("/:id/reject", discountHandler.Reject)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", salesOnly, invoiceHandler.Create)
	invoices.Post("/from-quote/:quoteId", salesOnly, invoiceHandler.CreateFromQuote)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Put("/:id/status", staffOnly, invoiceHandler.UpdateStatus)
	invoices.Post("/:id/pay", staffOnly, invoiceHandler.MarkAsPaid)
	invoices.Post("/:id/payment-intent", invoiceHandler.CreatePaymentIntent)

	// Plans y subscriptions
	subHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	plans := protected.Group("/plans")
	plans.Get("/", subHandler.ListPlans)
	plans.Post("/", adminOnly, subHandler.CreatePlan)
	plans.Put("/:id", adminOnly, subHandler.UpdatePlan)

	subs := protected.Group("/subscriptions")
	subs.Post("/", adminOnly, subHandler.Subscribe)
	subs.Get("/", subHandler.ListSubscriptions)
	subs.Get("/:id", subHandler.GetSubscription)
	subs.Post("/:id/topup", adminOnly, subHandler.TopUp)
	subs.Get("/:id/usage", subHandler.ListUsage)

	protected.Post("/token-usage", subHandler.DeductTokens)

	// Expenses: cualquier staff registra y consulta; decide finanzas
	expenses := protected.Group("/expenses", staffOnly)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)
	expenses.Post("/:id/approve", financeOnly, expenseHandler.Approve)
	expenses.Post("/:id/reject", financeOnly, expenseHandler.Reject)

	// VAT returns (finanzas)
	vat := protected.Group("/vat-returns", financeOnly)
	vatHandler := NewVatHandler(deps.VatUC)
	vat.Get("/calculate", vatHandler.Calculate)
	vat.Post("/", vatHandler.Create)
	vat.Get("/", vatHandler.List)
	vat.Get("/:id", vatHandler.GetByID)
	vat.Put("/:id", vatHandler.Update)

	// Accounts (finanzas)
	accounts := protected.Group("/accounts", financeOnly)
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Get("/:id/transactions", accountHandler.ListTransactions)

	// Dashboard (staff)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", staffOnly, dashboardHandler.Summary)
}
