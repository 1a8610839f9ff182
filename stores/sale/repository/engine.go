package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/database/mongoclient"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/sale"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type engineMongoRepo struct {
	q query.Mongo
}

func NewEngineRepo(q query.Mongo) sale.EngineRepo {
	return &engineMongoRepo{q: q}
}

func (r *engineMongoRepo) Get(ctx bCtx.Ctx) (*sale.Engine, error) {
	res := &sale.Engine{}
	qry := bson.M{"key": sale.EngineKey}
	if err := r.q.FindOne(ctx, domain.TableSaleEngine, qry, res); err == query.ErrNotFound {
		return &sale.Engine{
			Key:     sale.EngineKey,
			Active:  false,
			Revenue: "0",
		}, nil
	} else if err != nil {
		ctx.WithField("err", err).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *engineMongoRepo) Update(ctx bCtx.Ctx, patchable sale.EnginePatchable) error {
	if patchable.Custodian != nil {
		patchable.Custodian = patchable.Custodian.ToLowerPtr()
	}
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	updater["key"] = sale.EngineKey
	selector := bson.M{"key": sale.EngineKey}
	if err := r.q.Upsert(ctx, domain.TableSaleEngine, selector, updater); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"updater": updater,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
