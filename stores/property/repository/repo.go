package repository

import (
	"fmt"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/property"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type propertyMongoRepo struct {
	q query.Mongo
}

func NewPropertyRepo(q query.Mongo) property.Repo {
	return &propertyMongoRepo{q: q}
}

func (r *propertyMongoRepo) FindOne(ctx bCtx.Ctx, assetId domain.AssetId) (*property.Properties, error) {
	res := &property.Properties{}
	qry := bson.M{"assetId": assetId}
	if err := r.q.FindOne(ctx, domain.TableProperties, qry, res); err == query.ErrNotFound {
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

func (r *propertyMongoRepo) Init(ctx bCtx.Ctx, assetId domain.AssetId, slots []string) error {
	if err := r.q.Insert(ctx, domain.TableProperties, &property.Properties{
		AssetId: assetId,
		Slots:   slots,
	}); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *propertyMongoRepo) Append(ctx bCtx.Ctx, assetId domain.AssetId, text string) error {
	res := &property.Properties{}
	qry := bson.M{"assetId": assetId}
	if err := r.q.Push(ctx, domain.TableProperties, qry, res, "slots", text); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("q.Push failed")
		return err
	}
	return nil
}

func (r *propertyMongoRepo) SetUserContent(ctx bCtx.Ctx, assetId domain.AssetId, text string) error {
	selector := bson.M{"assetId": assetId}
	updater := bson.M{fmt.Sprintf("slots.%d", property.UserSlot): text}
	if err := r.q.Patch(ctx, domain.TableProperties, selector, updater); err == query.ErrNotFound {
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

type templateMongoRepo struct {
	q query.Mongo
}

func NewTemplateRepo(q query.Mongo) property.TemplateRepo {
	return &templateMongoRepo{q: q}
}

func (r *templateMongoRepo) FindOne(ctx bCtx.Ctx, classId domain.ClassId) (*property.ClassTemplate, error) {
	res := &property.ClassTemplate{}
	qry := bson.M{"classId": classId}
	if err := r.q.FindOne(ctx, domain.TableClassTemplates, qry, res); err == query.ErrNotFound {
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

func (r *templateMongoRepo) Upsert(ctx bCtx.Ctx, tmpl *property.ClassTemplate) error {
	selector := bson.M{"classId": tmpl.ClassId}
	if err := r.q.Upsert(ctx, domain.TableClassTemplates, selector, tmpl); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"template": tmpl,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
