package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/database/mongoclient"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/market"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type settingsMongoRepo struct {
	q query.Mongo
}

func NewSettingsRepo(q query.Mongo) market.SettingsRepo {
	return &settingsMongoRepo{q: q}
}

func (r *settingsMongoRepo) Get(ctx bCtx.Ctx) (*market.Settings, error) {
	res := &market.Settings{}
	qry := bson.M{"key": market.SettingsKey}
	if err := r.q.FindOne(ctx, domain.TableSettings, qry, res); err == query.ErrNotFound {
		return &market.Settings{
			Key:            market.SettingsKey,
			BidLockSeconds: int64(market.DefaultBidLock.Seconds()),
		}, nil
	} else if err != nil {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *settingsMongoRepo) Update(ctx bCtx.Ctx, patchable market.SettingsPatchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	updater["key"] = market.SettingsKey
	selector := bson.M{"key": market.SettingsKey}
	if err := r.q.Upsert(ctx, domain.TableSettings, selector, updater); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"updater": updater,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
