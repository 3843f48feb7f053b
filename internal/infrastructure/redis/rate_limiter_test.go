package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/attendly-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_UnreachableRedisReturnsError(t *testing.T) {
	rdb := NewClient(config.RedisConfig{Addr: "127.0.0.1:1"})
	defer rdb.Close()

	l := NewFixedWindowLimiter(rdb, "auth", 5, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	d, err := l.Allow(ctx, "10.0.0.1")
	require.Error(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 5, l.Limit())
}

func TestAllow_CuentaPorVentanaYClave(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewClient(config.RedisConfig{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	l := NewFixedWindowLimiter(rdb, "auth", 3, time.Minute)

	for i := 1; i <= 3; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "petición %d", i)
		assert.Equal(t, 3-i, d.Remaining)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)

	// la clave expira con la primera petición de la ventana, no se renueva
	assert.Equal(t, time.Minute, mr.TTL("auth:10.0.0.1"))

	// otra IP tiene su propio contador
	d, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	mr.FastForward(time.Minute + time.Second)

	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}
