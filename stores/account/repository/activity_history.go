package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

func makeFindQuery(optFns ...account.FindActivityOptions) (bson.M, error) {
	opts, err := account.GetFindActivityOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.Account != nil {
		qry["$or"] = bson.A{
			bson.M{"account": *opts.Account},
			bson.M{"to": opts.Account},
		}
	}

	if opts.AssetId != nil {
		qry["assetId"] = *opts.AssetId
	}

	if opts.ClassId != nil {
		qry["classId"] = *opts.ClassId
	}

	if opts.TimeGTE != nil {
		qry["time"] = bson.M{"$gte": *opts.TimeGTE}
	}

	if len(opts.Types) > 1 {
		qry["type"] = bson.M{"$in": opts.Types}
	} else if len(opts.Types) > 0 {
		qry["type"] = opts.Types[0]
	}

	return qry, nil
}

type activityRepo struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) account.ActivityRepo {
	return &activityRepo{q: q}
}

func (r *activityRepo) Insert(ctx bCtx.Ctx, a *account.Activity) error {
	if err := r.q.Insert(ctx, domain.TableActivities, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": a,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *activityRepo) FindActivities(c bCtx.Ctx, optFns ...account.FindActivityOptions) ([]account.Activity, error) {
	opts, err := account.GetFindActivityOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("account.GetFindActivityOptions failed")
		return nil, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return nil, err
	}

	offset := 0
	limit := 0

	if opts.Offset != nil {
		offset = *opts.Offset
	}

	if opts.Limit != nil {
		limit = *opts.Limit
	}

	res := []account.Activity{}
	if err := r.q.Search(c, domain.TableActivities, offset, limit, "-time", qry, &res); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *activityRepo) CountActivities(c bCtx.Ctx, optFns ...account.FindActivityOptions) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		c.WithField("err", err).Error("makeFindQuery failed")
		return 0, err
	}

	cnt, err := r.q.Count(c, domain.TableActivities, qry)
	if err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("q.Count failed")
		return 0, err
	}
	return cnt, nil
}
