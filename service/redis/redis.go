package redis

import (
	"time"

	"github.com/pixeldonor/goapi/base/ctx"
)

// ErrNotFound is returned when the key does not exist
var ErrNotFound = Err("redis: key not found")

type Err string

func (e Err) Error() string { return string(e) }

// Service is the redis surface this api uses
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets the key only when it does not exist yet, returns ErrConflict-like false on existed key
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error)
	Del(context ctx.Ctx, keys ...string) (int, error)
}
