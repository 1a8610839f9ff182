package repository

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/database/mongoclient"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/service/query"
	"github.com/pixeldonor/goapi/service/redis"
)

const cacheTtl = time.Hour

type impl struct {
	query query.Mongo
	redis redis.Service
}

// New creates new account repo. redis is optional, without it every read
// hits mongo.
func New(query query.Mongo, redis redis.Service) account.Repo {
	return &impl{
		query: query,
		redis: redis,
	}
}

func cacheKey(address domain.Address) string {
	return "account:" + address.ToLowerStr()
}

func (im *impl) Get(c bCtx.Ctx, address domain.Address) (*account.Account, error) {
	if im.redis != nil {
		if raw, err := im.redis.Get(c, cacheKey(address)); err == nil {
			res := &account.Account{}
			if err := json.Unmarshal(raw, res); err == nil {
				return res, nil
			}
		}
	}

	res := &account.Account{}
	err := im.query.FindOne(c, domain.TableAccounts, bson.M{"address": address.ToLower()}, res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("q.FindOne failed")
		return nil, err
	}

	im.fillCache(c, res)
	return res, nil
}

func (im *impl) Insert(c bCtx.Ctx, a *account.Account) error {
	a.Address = a.Address.ToLower()
	if err := im.query.Insert(c, domain.TableAccounts, a); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": a.Address,
		}).Error("q.Insert failed")
		return err
	}
	im.fillCache(c, a)
	return nil
}

func (im *impl) Update(c bCtx.Ctx, address domain.Address, updater *account.Updater) error {
	updaterBson, err := mongoclient.MakeBsonM(updater)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.query.Patch(c, domain.TableAccounts, bson.M{"address": address.ToLower()}, updaterBson); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("q.Patch failed")
		return err
	}
	im.dropCache(c, address)
	return nil
}

func (im *impl) fillCache(c bCtx.Ctx, a *account.Account) {
	if im.redis == nil {
		return
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := im.redis.Set(c, cacheKey(a.Address), raw, cacheTtl); err != nil {
		c.WithField("err", err).Warn("redis.Set failed")
	}
}

func (im *impl) dropCache(c bCtx.Ctx, address domain.Address) {
	if im.redis == nil {
		return
	}
	if _, err := im.redis.Del(c, cacheKey(address)); err != nil {
		c.WithField("err", err).Warn("redis.Del failed")
	}
}
