package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/market"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type askMongoRepo struct {
	q query.Mongo
}

func NewAskRepo(q query.Mongo) market.AskRepo {
	return &askMongoRepo{q: q}
}

func (r *askMongoRepo) FindOne(ctx bCtx.Ctx, assetId domain.AssetId) (*market.Ask, error) {
	res := &market.Ask{}
	qry := bson.M{"assetId": assetId}
	if err := r.q.FindOne(ctx, domain.TableAsks, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *askMongoRepo) Upsert(ctx bCtx.Ctx, ask *market.Ask) error {
	selector := bson.M{"assetId": ask.AssetId}
	if err := r.q.Upsert(ctx, domain.TableAsks, selector, ask); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"ask": ask,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *askMongoRepo) Remove(ctx bCtx.Ctx, assetId domain.AssetId) error {
	selector := bson.M{"assetId": assetId}
	if err := r.q.Remove(ctx, domain.TableAsks, selector); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
