// Package redis contiene el cliente Redis y el limitador de peticiones de ventana fija.
package redis

import (
	"context"
	"time"

	"github.com/jhoicas/attendly-api/pkg/config"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient crea el cliente con timeouts cortos: el limitador no debe frenar el login.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Ping comprueba la conectividad.
func Ping(ctx context.Context, c *goredis.Client) error {
	return c.Ping(ctx).Err()
}
