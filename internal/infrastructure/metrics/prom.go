// Package metrics expone métricas Prometheus de HTTP, base de datos y de las
// decisiones de asistencia.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Prom agrupa los collectors registrados.
type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	DBQueryDuration *prometheus.HistogramVec
	DBErrorsTotal   *prometheus.CounterVec

	Decisions *prometheus.CounterVec
}

// New crea y registra los collectors en reg.
func New(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attendly",
				Name:      "http_requests_total",
				Help:      "Total de peticiones HTTP atendidas.",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "attendly",
				Name:      "http_request_duration_seconds",
				Help:      "Latencia de las peticiones HTTP.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "attendly",
				Name:      "http_in_flight_requests",
				Help:      "Peticiones HTTP en curso.",
			},
			[]string{"method"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "attendly",
				Subsystem: "db",
				Name:      "query_duration_seconds",
				Help:      "Latencia por operación lógica de base de datos.",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2},
			},
			[]string{"op", "status"},
		),
		DBErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attendly",
				Subsystem: "db",
				Name:      "errors_total",
				Help:      "Errores de base de datos por operación y clase.",
			},
			[]string{"op", "class"},
		),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attendly",
				Subsystem: "attendance",
				Name:      "decisions_total",
				Help:      "Resultados de la política de asistencia por operación.",
			},
			[]string{"operation", "outcome"},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.DBQueryDuration, p.DBErrorsTotal, p.Decisions)
	return p
}

// Middleware mide cada petición usando la plantilla de ruta de fiber.
func (p *Prom) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()

		p.InFlight.WithLabelValues(method).Inc()
		defer p.InFlight.WithLabelValues(method).Dec()

		err := c.Next()

		// la plantilla solo se conoce después del enrutado
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		code := strconv.Itoa(status)

		p.RequestsTotal.WithLabelValues(method, route, code).Inc()
		p.RequestsDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordDecision cuenta un resultado de la política (allowed, already_marked, ...).
func (p *Prom) RecordDecision(operation, outcome string) {
	p.Decisions.WithLabelValues(operation, outcome).Inc()
}
