package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/attendly-api/docs"
	"github.com/jhoicas/attendly-api/internal/application/attendance"
	"github.com/jhoicas/attendly-api/internal/application/auth"
	"github.com/jhoicas/attendly-api/internal/application/usecase"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/internal/domain/repository"
	"github.com/jhoicas/attendly-api/internal/infrastructure/memory"
	"github.com/jhoicas/attendly-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/attendly-api/internal/infrastructure/pdf"
	"github.com/jhoicas/attendly-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/attendly-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/attendly-api/internal/interfaces/http"
	"github.com/jhoicas/attendly-api/pkg/config"
	"github.com/jhoicas/attendly-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// storage repositorios y transacciones del backend elegido.
type storage struct {
	users      repository.UserRepository
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	leaves     repository.LeaveRepository
	tx         repository.TxRunner
	ping       func(ctx context.Context) error
	close      func()
}

// @title                       Attendly API
// @version                     1.0
// @description                 API de control de asistencia: nómina, marcado diario, salida, consultas e informe PDF.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	loc, err := cfg.Attendance.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de asistencia")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.New(reg)

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, prom, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	rules := policy.NewRules(loc)

	authUC := auth.NewAuthUseCase(store.users, store.employees, rules, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	employeeUC := usecase.NewEmployeeUseCase(store.tx, store.users, store.employees, store.attendance,
		rules, cfg.Attendance.DefaultPassword, log)
	attendanceUC := attendance.NewAttendanceUseCase(store.tx, store.employees, store.attendance, rules,
		infrapdf.NewReportGenerator(loc), prom, attendance.Config{
			Location:     loc,
			DefaultLimit: cfg.Attendance.ListLimit,
		}, log)
	leaveUC := usecase.NewLeaveUseCase(store.leaves, rules, log)

	var authLimit httpRouter.RateLimitFunc
	if cfg.Redis.Enabled() {
		rdb := infraredis.NewClient(cfg.Redis)
		defer rdb.Close()
		if err := infraredis.Ping(ctx, rdb); err != nil {
			// el limitador deja pasar mientras Redis no responda
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible al iniciar")
		}
		limiter := infraredis.NewFixedWindowLimiter(rdb, "attendly:auth", cfg.RateLimit.AuthPerMinute, time.Minute)
		authLimit = func(ctx context.Context, key string) (bool, time.Duration, error) {
			d, err := limiter.Allow(ctx, key)
			return d.Allowed, d.RetryAfter, err
		}
		log.Info().Int("por_minuto", limiter.Limit()).Msg("rate limiting de autenticación activo")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(prom.Middleware())
	if cfg.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.ReplaceAll(cfg.HTTP.CORSOrigins, " ", ""),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderRequestID,
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Attendly API",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		EmployeeUC:   employeeUC,
		AttendanceUC: attendanceUC,
		LeaveUC:      leaveUC,
		Policy:       rules,
		JWTSecret:    cfg.JWT.Secret,
		AuthLimit:    authLimit,
		Ping:         store.ping,
		ServiceName:  cfg.App.Name,
		Storage:      cfg.App.Storage,
		Log:          log,
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

func openStorage(ctx context.Context, cfg *config.Config, obs postgres.Observer, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		mem := memory.NewStore()
		return &storage{
			users:      mem.Users(),
			employees:  mem.Employees(),
			attendance: mem.Attendance(),
			leaves:     mem.Leaves(),
			tx:         memory.NewTxRunner(mem),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoSchema {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema de base de datos verificado")
	}
	return &storage{
		users:      postgres.NewUserRepository(pool, obs),
		employees:  postgres.NewEmployeeRepository(pool, obs),
		attendance: postgres.NewAttendanceRepository(pool, obs),
		leaves:     postgres.NewLeaveRepository(pool, obs),
		tx:         postgres.NewTxRunner(pool, obs),
		ping:       pool.Ping,
		close:      pool.Close,
	}, nil
}
