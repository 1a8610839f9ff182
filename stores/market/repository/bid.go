package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/market"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type bidMongoRepo struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) market.BidRepo {
	return &bidMongoRepo{q: q}
}

func (r *bidMongoRepo) FindOne(ctx bCtx.Ctx, assetId domain.AssetId) (*market.Bid, error) {
	res := &market.Bid{}
	qry := bson.M{"assetId": assetId}
	if err := r.q.FindOne(ctx, domain.TableBids, qry, res); err == query.ErrNotFound {
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

func (r *bidMongoRepo) Upsert(ctx bCtx.Ctx, bid *market.Bid) error {
	bid.Bidder = bid.Bidder.ToLower()
	selector := bson.M{"assetId": bid.AssetId}
	if err := r.q.Upsert(ctx, domain.TableBids, selector, bid); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": bid,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *bidMongoRepo) Remove(ctx bCtx.Ctx, assetId domain.AssetId) error {
	selector := bson.M{"assetId": assetId}
	if err := r.q.Remove(ctx, domain.TableBids, selector); err == query.ErrNotFound {
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
