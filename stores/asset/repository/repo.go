package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/database/mongoclient"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type assetMongoRepo struct {
	q query.Mongo
}

func NewAssetRepo(q query.Mongo) asset.Repo {
	return &assetMongoRepo{q: q}
}

func makeFindQuery(optFns ...asset.FindAllOptionsFunc) (bson.M, error) {
	opts, err := asset.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.Owner != nil {
		qry["owner"] = *opts.Owner
	}

	if opts.ClassId != nil {
		qry["classId"] = *opts.ClassId
	}

	return qry, nil
}

func (r *assetMongoRepo) FindOne(ctx bCtx.Ctx, assetId domain.AssetId) (*asset.Asset, error) {
	res := &asset.Asset{}
	qry := bson.M{"assetId": assetId}
	if err := r.q.FindOne(ctx, domain.TableAssets, qry, res); err == query.ErrNotFound {
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

func (r *assetMongoRepo) FindAll(ctx bCtx.Ctx, optFns ...asset.FindAllOptionsFunc) ([]*asset.Asset, error) {
	opts, err := asset.GetFindAllOptions(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("asset.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset := 0
	limit := 0

	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}

	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	res := []*asset.Asset{}
	if err := r.q.Search(ctx, domain.TableAssets, offset, limit, "assetId", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *assetMongoRepo) Count(ctx bCtx.Ctx, optFns ...asset.FindAllOptionsFunc) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		ctx.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	cnt, err := r.q.Count(ctx, domain.TableAssets, qry)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}

func (r *assetMongoRepo) Insert(ctx bCtx.Ctx, a *asset.Asset) error {
	a.Owner = a.Owner.ToLower()
	if err := r.q.Insert(ctx, domain.TableAssets, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"asset": a,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *assetMongoRepo) Update(ctx bCtx.Ctx, assetId domain.AssetId, patchable asset.Patchable) error {
	if patchable.Owner != nil {
		patchable.Owner = patchable.Owner.ToLowerPtr()
	}
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	selector := bson.M{"assetId": assetId}
	if err := r.q.Patch(ctx, domain.TableAssets, selector, updater); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}

type counter struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

func (r *assetMongoRepo) NextId(ctx bCtx.Ctx) (domain.AssetId, error) {
	res := &counter{}
	selector := bson.M{"name": "assets"}
	if err := r.q.Increment(ctx, domain.TableCounters, selector, res, "seq", int64(1)); err != nil {
		ctx.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.AssetId(res.Seq), nil
}
