package usecase

import (
	"time"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/market"
	"github.com/pixeldonor/goapi/domain/property"
)

var timeNow = time.Now

type AssetUseCaseCfg struct {
	AssetRepo    asset.Repo
	PropertyUC   property.Usecase
	AskRepo      market.AskRepo
	BidRepo      market.BidRepo
	ActivityRepo account.ActivityRepo
	Minters      domain.MinterCapability
}

type assetUseCase struct {
	repo         asset.Repo
	propertyUC   property.Usecase
	askRepo      market.AskRepo
	bidRepo      market.BidRepo
	activityRepo account.ActivityRepo
	minters      domain.MinterCapability
}

func New(cfg *AssetUseCaseCfg) asset.Usecase {
	return &assetUseCase{
		repo:         cfg.AssetRepo,
		propertyUC:   cfg.PropertyUC,
		askRepo:      cfg.AskRepo,
		bidRepo:      cfg.BidRepo,
		activityRepo: cfg.ActivityRepo,
		minters:      cfg.Minters,
	}
}

func (u *assetUseCase) Mint(ctx bCtx.Ctx, caller, to domain.Address, classId domain.ClassId) (domain.AssetId, error) {
	if !u.minters.Allows(caller) {
		ctx.WithField("caller", caller).Warn("mint by non-minter")
		return 0, domain.ErrNotMinter
	}
	if to.IsEmpty() {
		return 0, domain.ErrInvalidAddress
	}

	assetId, err := u.repo.NextId(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("repo.NextId failed")
		return 0, err
	}

	if err := u.repo.Insert(ctx, &asset.Asset{
		AssetId:  assetId,
		Owner:    to.ToLower(),
		ClassId:  classId,
		MintedAt: timeNow(),
	}); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("repo.Insert failed")
		return 0, err
	}

	if err := u.propertyUC.InitForMint(ctx, assetId, classId); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("propertyUC.InitForMint failed")
		return 0, err
	}

	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		ClassId: classId,
		Type:    account.ActivityTypeMint,
		Account: caller.ToLower(),
		To:      to.ToLower(),
		Time:    timeNow(),
	})

	return assetId, nil
}

func (u *assetUseCase) Transfer(ctx bCtx.Ctx, caller, from, to domain.Address, assetId domain.AssetId, auxData string) error {
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}

	a, err := u.repo.FindOne(ctx, assetId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("repo.FindOne failed")
		return err
	}
	if a.Owner.IsEmpty() {
		return domain.ErrNoOwner
	}
	if !a.Owner.Equals(from) || !caller.Equals(from) {
		ctx.WithFields(log.Fields{
			"caller":  caller,
			"from":    from,
			"owner":   a.Owner,
			"assetId": assetId,
		}).Warn("transfer by non-owner")
		return domain.ErrNotOwner
	}

	owner := to.ToLower()
	if err := u.repo.Update(ctx, assetId, asset.Patchable{Owner: &owner}); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("repo.Update failed")
		return err
	}

	// ownership change always invalidates the listing, bids survive
	if err := u.askRepo.Remove(ctx, assetId); err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("askRepo.Remove failed")
		return err
	}

	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypeTransfer,
		Account: from.ToLower(),
		To:      owner,
		AuxData: auxData,
		Time:    timeNow(),
	})

	return nil
}

func (u *assetUseCase) Burn(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId) error {
	a, err := u.repo.FindOne(ctx, assetId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("repo.FindOne failed")
		return err
	}
	if a.Owner.IsEmpty() {
		return domain.ErrNoOwner
	}
	if !a.Owner.Equals(caller) {
		return domain.ErrNotOwner
	}

	if ask, err := u.askRepo.FindOne(ctx, assetId); err != nil && err != domain.ErrNotFound {
		return err
	} else if ask != nil {
		return domain.ErrAssetEncumbered
	}
	if bid, err := u.bidRepo.FindOne(ctx, assetId); err != nil && err != domain.ErrNotFound {
		return err
	} else if bid != nil {
		return domain.ErrAssetEncumbered
	}

	empty := domain.Address("")
	if err := u.repo.Update(ctx, assetId, asset.Patchable{Owner: &empty}); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("repo.Update failed")
		return err
	}

	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypeBurn,
		Account: caller.ToLower(),
		Time:    timeNow(),
	})

	return nil
}

func (u *assetUseCase) OwnerOf(ctx bCtx.Ctx, assetId domain.AssetId) (domain.Address, error) {
	a, err := u.repo.FindOne(ctx, assetId)
	if err != nil {
		return "", err
	}
	return a.Owner, nil
}

func (u *assetUseCase) BalanceOf(ctx bCtx.Ctx, owner domain.Address) (int, error) {
	return u.repo.Count(ctx, asset.WithOwner(owner))
}

func (u *assetUseCase) Get(ctx bCtx.Ctx, assetId domain.AssetId) (*asset.Asset, error) {
	return u.repo.FindOne(ctx, assetId)
}

func (u *assetUseCase) FindAll(ctx bCtx.Ctx, opts ...asset.FindAllOptionsFunc) ([]*asset.Asset, error) {
	return u.repo.FindAll(ctx, opts...)
}

// activity records are history, failing to write one never fails the
// ledger operation itself
func (u *assetUseCase) recordActivity(ctx bCtx.Ctx, a *account.Activity) {
	if err := u.activityRepo.Insert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": a,
		}).Error("activityRepo.Insert failed")
	}
}
