package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Decision resultado de una consulta al limitador.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// FixedWindowLimiter cuenta peticiones por clave en ventanas fijas (INCR + EXPIRE NX),
// compartidas entre todas las réplicas.
type FixedWindowLimiter struct {
	rdb    goredis.Cmdable
	prefix string
	limit  int
	window time.Duration
}

// NewFixedWindowLimiter construye el limitador: limit peticiones por window y clave.
func NewFixedWindowLimiter(rdb goredis.Cmdable, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

// Allow registra una petición para key y decide si se admite.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	k := l.prefix + ":" + key

	var incr *goredis.IntCmd
	var ttl *goredis.DurationCmd
	_, err := l.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, l.window)
		ttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", k, err)
	}

	count := int(incr.Val())
	retry := ttl.Val()
	if retry < 0 {
		retry = l.window
	}
	if count > l.limit {
		return Decision{Allowed: false, RetryAfter: retry}, nil
	}
	return Decision{Allowed: true, Remaining: l.limit - count}, nil
}

// Limit máximo de peticiones por ventana.
func (l *FixedWindowLimiter) Limit() int { return l.limit }
