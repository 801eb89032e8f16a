// seed puebla una base de datos vacía con los datos mínimos de arranque:
// un usuario admin, los planes de suscripción iniciales y el plan de cuentas.
//
// Uso: go run ./cmd/seed
// Credenciales del admin vía SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD
// (por defecto admin@cotizapro.local / cambiar-ya).
// Es idempotente: los registros ya existentes se dejan intactos.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Cotiza-api/internal/domain/entity"
	"github.com/jhoicas/Cotiza-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotiza-api/pkg/config"
	"github.com/jhoicas/Cotiza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)

	// 1. Usuario admin
	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@cotizapro.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "cambiar-ya")

	existing, err := userRepo.GetByEmail(adminEmail)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar admin")
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		now := time.Now()
		admin := &entity.User{
			ID:            uuid.New().String(),
			Username:      "admin",
			Email:         adminEmail,
			PasswordHash:  string(hash),
			Role:          entity.RoleAdmin,
			Status:        entity.UserStatusActive,
			DiscountLimit: decimal.NewFromInt(100),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear admin")
		}
		log.Info().Str("email", adminEmail).Msg("admin creado")
	} else {
		log.Info().Str("email", adminEmail).Msg("admin ya existe, se omite")
	}

	// 2. Planes de suscripción
	plans := []*entity.Plan{
		{Name: "Starter", Description: "1.000 tokens mensuales", PriceCents: 990_00, TokenAmount: 1000},
		{Name: "Pro", Description: "10.000 tokens mensuales", PriceCents: 4990_00, TokenAmount: 10000},
		{Name: "Enterprise", Description: "100.000 tokens mensuales", PriceCents: 19990_00, TokenAmount: 100000},
	}
	existingPlans, err := planRepo.List(false)
	if err != nil {
		log.Fatal().Err(err).Msg("listar planes")
	}
	planNames := make(map[string]bool, len(existingPlans))
	for _, p := range existingPlans {
		planNames[p.Name] = true
	}
	for _, p := range plans {
		if planNames[p.Name] {
			continue
		}
		p.ID = uuid.New().String()
		p.Active = true
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
		if err := planRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("plan", p.Name).Msg("crear plan")
		}
		log.Info().Str("plan", p.Name).Msg("plan creado")
	}

	// 3. Plan de cuentas básico
	accounts := []*entity.Account{
		{Code: "1000", Name: "Caja y bancos", Type: entity.AccountTypeAsset},
		{Code: "1100", Name: "Cuentas por cobrar", Type: entity.AccountTypeAsset},
		{Code: "2000", Name: "Cuentas por pagar", Type: entity.AccountTypeLiability},
		{Code: "2100", Name: "IVA por pagar", Type: entity.AccountTypeLiability},
		{Code: "3000", Name: "Capital", Type: entity.AccountTypeEquity},
		{Code: "4000", Name: "Ingresos por servicios", Type: entity.AccountTypeIncome},
		{Code: "5000", Name: "Gastos operativos", Type: entity.AccountTypeExpense},
		{Code: "5100", Name: "Gastos de viaje", Type: entity.AccountTypeExpense},
	}
	existingAccounts, err := accountRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("listar cuentas")
	}
	accountCodes := make(map[string]bool, len(existingAccounts))
	for _, a := range existingAccounts {
		accountCodes[a.Code] = true
	}
	for _, a := range accounts {
		if accountCodes[a.Code] {
			continue
		}
		a.ID = uuid.New().String()
		a.Active = true
		a.CreatedAt = time.Now()
		a.UpdatedAt = a.CreatedAt
		if err := accountRepo.Create(a); err != nil {
			log.Fatal().Err(err).Str("cuenta", a.Code).Msg("crear cuenta")
		}
		log.Info().Str("cuenta", a.Code).Str("nombre", a.Name).Msg("cuenta creada")
	}

	log.Info().Msg("seed completado")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
