package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"golang.org/x/xerrors"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/base/metrics"
)

type redImpl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New creates a redis service backed by the given pool
func New(name string, met metrics.Service, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		met:  met,
		pool: pool,
	}
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.pool.GetContext(context)
	if err != nil {
		r.met.BumpSum("conn.err", 1, "cluster", r.name)
		return nil, xerrors.Errorf("failed to get conn from pool: %w", err)
	}
	defer conn.Close()
	return conn.Do(commandName, args...)
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	defer r.met.BumpTime("time", "func", "get", "cluster", r.name).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	}
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis GET failed")
		return nil, err
	}
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	defer r.met.BumpTime("time", "func", "set", "cluster", r.name).End()

	_, err := r.connDo(context, "SET", key, val, "PX", int64(expire/time.Millisecond))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis SET failed")
		return err
	}
	return nil
}

func (r *redImpl) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	defer r.met.BumpTime("time", "func", "setnx", "cluster", r.name).End()

	reply, err := r.connDo(context, "SET", key, val, "PX", int64(expire/time.Millisecond), "NX")
	if err != nil {
		context.WithFields(log.Fields{"err": err, "key": key}).Error("redis SETNX failed")
		return false, err
	}
	return reply != nil, nil
}

func (r *redImpl) Del(context ctx.Ctx, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	defer r.met.BumpTime("time", "func", "del", "cluster", r.name).End()

	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	n, err := redis.Int(r.connDo(context, "DEL", args...))
	if err != nil {
		context.WithFields(log.Fields{"err": err, "keys": keys}).Error("redis DEL failed")
		return 0, err
	}
	return n, nil
}
