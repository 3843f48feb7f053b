package http

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/attendly-api/internal/application/dto"
	"github.com/jhoicas/attendly-api/pkg/logger"
)

// RateLimitFunc consulta el limitador para key. Con error la petición pasa.
type RateLimitFunc func(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)

// RateLimit limita por IP. Con limit nil no hace nada.
func RateLimit(limit RateLimitFunc, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit == nil {
			return c.Next()
		}
		allowed, retryAfter, err := limit(c.UserContext(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.IP()).Msg("rate limiter no disponible")
			return c.Next()
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, intente más tarde"})
		}
		return c.Next()
	}
}
