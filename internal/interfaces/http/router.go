package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendly-api/internal/application/attendance"
	"github.com/jhoicas/attendly-api/internal/application/auth"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/internal/application/usecase"
	"github.com/jhoicas/attendly-api/internal/domain/policy"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	AttendanceUC *attendance.AttendanceUseCase
	LeaveUC      *usecase.LeaveUseCase
	Policy       policy.AttendancePolicy
	JWTSecret    string
	// AuthLimit limita login, signup y reset por IP; nil desactiva el límite.
	AuthLimit RateLimitFunc
	// Ping comprueba el almacenamiento para /health; nil responde siempre ok.
	Ping        func(ctx context.Context) error
	ServiceName string
	Storage     string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth", RateLimit(deps.AuthLimit, log))
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas: Bearer Token + actor resuelto desde la base.
	// Se montan por grupo para que una ruta desconocida siga respondiendo 404.
	protected := []fiber.Handler{AuthMiddleware(deps.JWTSecret), ActorMiddleware(deps.AuthUC)}
	adminOnly := RequireAdmin(deps.Policy)

	me := api.Group("/me", protected...)
	me.Get("/", authHandler.Me)
	me.Get("/permissions", authHandler.Permissions)

	employees := api.Group("/employees", protected...)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Get("/deleted", adminOnly, employeeHandler.ListDeleted)
	employees.Get("/:id/details", adminOnly, employeeHandler.Details)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)
	employees.Put("/:id/status", adminOnly, employeeHandler.UpdateStatus)

	leave := api.Group("/leave", protected...)
	leaveHandler := NewLeaveHandler(deps.LeaveUC)
	leave.Post("/request", leaveHandler.Request)
	leave.Get("/history", leaveHandler.History)
	leave.Put("/:id/status", adminOnly, leaveHandler.Resolve)

	att := api.Group("/attendance", protected...)
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	att.Get("/", attendanceHandler.List)
	att.Post("/mark", attendanceHandler.Mark)
	att.Post("/check-out", attendanceHandler.CheckOut)
	att.Get("/date/:date", attendanceHandler.ByDate)
	att.Get("/summary", attendanceHandler.Summary)
	att.Get("/report.pdf", attendanceHandler.Report)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := dto.HealthResponse{Status: "ok", Service: deps.ServiceName, Storage: deps.Storage}
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				resp.Status = "degraded"
				return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
			}
		}
		return c.JSON(resp)
	}
}
