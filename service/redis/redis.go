package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/bidhaus/goapi/base/ctx"
)

// Forever means the key never expires
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil

	// ErrPoolExhausted is returned when no connection is available
	ErrPoolExhausted = errors.New("redis pool exhausted")
)

// Service provides the redis operations the engine needs: plain KV for the
// cache provider and health check, SetNX for idempotency guards.
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets the key only if it does not exist yet and reports whether
	// this call claimed it.
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(context ctx.Ctx, key string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, delta int) (int64, error)
	TTL(context ctx.Ctx, key string) (int64, error)
}
