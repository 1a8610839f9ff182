package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/sale"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type classMongoRepo struct {
	q query.Mongo
}

func NewClassRepo(q query.Mongo) sale.ClassRepo {
	return &classMongoRepo{q: q}
}

func (r *classMongoRepo) FindOne(ctx bCtx.Ctx, classId domain.ClassId) (*sale.Class, error) {
	res := &sale.Class{}
	qry := bson.M{"classId": classId}
	if err := r.q.FindOne(ctx, domain.TableSaleClasses, qry, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"classId": classId,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *classMongoRepo) FindAll(ctx bCtx.Ctx) ([]*sale.Class, error) {
	res := []*sale.Class{}
	if err := r.q.Search(ctx, domain.TableSaleClasses, 0, 0, "classId", bson.M{}, &res); err != nil {
		ctx.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *classMongoRepo) Upsert(ctx bCtx.Ctx, class *sale.Class) error {
	selector := bson.M{"classId": class.ClassId}
	if err := r.q.Upsert(ctx, domain.TableSaleClasses, selector, class); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"class": class,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (r *classMongoRepo) IncrementUnitsSold(ctx bCtx.Ctx, classId domain.ClassId) (*sale.Class, error) {
	res := &sale.Class{}
	selector := bson.M{"classId": classId}
	if err := r.q.Increment(ctx, domain.TableSaleClasses, selector, res, "unitsSold", int64(1)); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"classId": classId,
		}).Error("q.Increment failed")
		return nil, err
	}
	return res, nil
}
