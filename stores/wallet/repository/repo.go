package repository

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/wallet"
	"github.com/pixeldonor/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type walletMongoRepo struct {
	q query.Mongo
}

func NewWalletRepo(q query.Mongo) wallet.Repo {
	return &walletMongoRepo{q: q}
}

func (r *walletMongoRepo) FindOne(ctx bCtx.Ctx, addr domain.Address) (*wallet.Balance, error) {
	balance := &wallet.Balance{}
	qry := bson.M{"address": addr.ToLower()}
	if err := r.q.FindOne(ctx, domain.TableBalances, qry, balance); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": addr,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return balance, nil
}

func (r *walletMongoRepo) Upsert(ctx bCtx.Ctx, balance *wallet.Balance) error {
	balance.Address = balance.Address.ToLower()
	selector := bson.M{"address": balance.Address}
	if err := r.q.Upsert(ctx, domain.TableBalances, selector, balance); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"balance": balance,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
