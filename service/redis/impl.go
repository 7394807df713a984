package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/metrics"
	"github.com/bidhaus/goapi/domain/keys"
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis pool
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()
	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getconn.err", 1, "cluster", r.name)
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(context ctx.Ctx, command string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		context.WithField("err", err).Error("redis getConn failed")
		return nil, err
	}
	defer conn.Close()
	return conn.Do(command, args...)
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := []string{"func", "get", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		r.met.BumpSum("miss", 1, tags...)
		return nil, ErrNotFound
	}
	if err != nil {
		context.WithField("err", err).Error("get redis failed")
		return nil, err
	}
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := []string{"func", "set", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		_, err = r.connDo(context, "SET", key, val)
	} else {
		_, err = r.connDo(context, "SET", key, val, "PX", int(expire/time.Millisecond))
	}
	if err != nil {
		context.WithField("err", err).Error("set redis failed")
	}
	return err
}

func (r *redImpl) SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (bool, error) {
	tags := []string{"func", "setnx", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	var reply interface{}
	var err error
	if expire == Forever {
		reply, err = r.connDo(context, "SET", key, val, "NX")
	} else {
		reply, err = r.connDo(context, "SET", key, val, "NX", "PX", int(expire/time.Millisecond))
	}
	if err != nil {
		context.WithField("err", err).Error("setnx redis failed")
		return false, err
	}
	// reply is nil when the key already existed
	return reply != nil, nil
}

func (r *redImpl) Del(context ctx.Ctx, key string) (int, error) {
	tags := []string{"func", "del", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	affected, err := redis.Int(r.connDo(context, "DEL", key))
	if err != nil {
		context.WithField("err", err).Error("del redis failed")
		return 0, err
	}
	return affected, nil
}

func (r *redImpl) Exists(context ctx.Ctx, key string) (bool, error) {
	tags := []string{"func", "exists", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	exists, err := redis.Bool(r.connDo(context, "EXISTS", key))
	if err != nil {
		context.WithField("err", err).Error("exists redis failed")
		return false, err
	}
	return exists, nil
}

func (r *redImpl) Incrby(context ctx.Ctx, key string, delta int) (int64, error) {
	tags := []string{"func", "incrby", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Int64(r.connDo(context, "INCRBY", key, delta))
	if err != nil {
		context.WithField("err", err).Error("incrby redis failed")
		return 0, err
	}
	return val, nil
}

func (r *redImpl) TTL(context ctx.Ctx, key string) (int64, error) {
	tags := []string{"func", "ttl", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	ttl, err := redis.Int64(r.connDo(context, "TTL", key))
	if err != nil {
		context.WithField("err", err).Error("ttl redis failed")
		return 0, err
	}
	return ttl, nil
}
