// seed_admin crea o promueve el administrador inicial a partir de ADMIN_EMAIL,
// ADMIN_PASSWORD, ADMIN_NAME y ADMIN_CODE.
//
// Uso: go run ./cmd/seed_admin
// Si la cuenta ya existe solo se marca is_admin; la contraseña no cambia.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/attendly-api/internal/application/auth"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/infrastructure/postgres"
	"github.com/jhoicas/attendly-api/pkg/config"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.App.Storage != "postgres" {
		log.Error().Str("storage", cfg.App.Storage).Msg("seed_admin requiere STORAGE=postgres")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoSchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
	}

	loc, err := cfg.Attendance.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de asistencia")
	}
	authUC := auth.NewAuthUseCase(
		postgres.NewUserRepository(pool, nil),
		postgres.NewEmployeeRepository(pool, nil),
		policy.NewRules(loc),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		log,
	)

	user, created, err := authUC.EnsureAdmin(ctx, auth.AdminSeed{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		Password:     cfg.Admin.Password,
		EmployeeCode: cfg.Admin.EmployeeCode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().
		Str("user_id", user.ID).
		Str("employee_code", user.EmployeeCode).
		Bool("creado", created).
		Msg("administrador listo")
}
