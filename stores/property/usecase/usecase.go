package usecase

import (
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/property"
)

type PropertyUseCaseCfg struct {
	PropertyRepo property.Repo
	TemplateRepo property.TemplateRepo
	AssetRepo    asset.Repo
	Minters      domain.MinterCapability
	Admins       domain.AdminCapability
}

type propertyUseCase struct {
	repo         property.Repo
	templateRepo property.TemplateRepo
	assetRepo    asset.Repo
	minters      domain.MinterCapability
	admins       domain.AdminCapability
}

func New(cfg *PropertyUseCaseCfg) property.Usecase {
	return &propertyUseCase{
		repo:         cfg.PropertyRepo,
		templateRepo: cfg.TemplateRepo,
		assetRepo:    cfg.AssetRepo,
		minters:      cfg.Minters,
		admins:       cfg.Admins,
	}
}

func (u *propertyUseCase) Append(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, text string) error {
	if !u.minters.Allows(caller) {
		ctx.WithField("caller", caller).Warn("append by non-minter")
		return domain.ErrNotMinter
	}
	if _, err := u.assetRepo.FindOne(ctx, assetId); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("assetRepo.FindOne failed")
		return err
	}
	return u.repo.Append(ctx, assetId, text)
}

func (u *propertyUseCase) Get(ctx bCtx.Ctx, assetId domain.AssetId, index int) (string, error) {
	props, err := u.repo.FindOne(ctx, assetId)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(props.Slots) {
		return "", domain.ErrNotFound
	}
	return props.Slots[index], nil
}

func (u *propertyUseCase) GetAll(ctx bCtx.Ctx, assetId domain.AssetId) ([]string, error) {
	props, err := u.repo.FindOne(ctx, assetId)
	if err != nil {
		return nil, err
	}
	return props.Slots, nil
}

func (u *propertyUseCase) SetUserContent(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, text string) error {
	a, err := u.assetRepo.FindOne(ctx, assetId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("assetRepo.FindOne failed")
		return err
	}
	if !a.Owner.Equals(caller) {
		ctx.WithFields(log.Fields{
			"caller":  caller,
			"owner":   a.Owner,
			"assetId": assetId,
		}).Warn("user content edit by non-owner")
		return domain.ErrNotOwner
	}
	return u.repo.SetUserContent(ctx, assetId, text)
}

func (u *propertyUseCase) SetClassTemplate(ctx bCtx.Ctx, caller domain.Address, classId domain.ClassId, slots []string) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("class template edit by non-admin")
		return domain.ErrNotAdmin
	}
	return u.templateRepo.Upsert(ctx, &property.ClassTemplate{
		ClassId: classId,
		Slots:   slots,
	})
}

func (u *propertyUseCase) InitForMint(ctx bCtx.Ctx, assetId domain.AssetId, classId domain.ClassId) error {
	// slot 0 is reserved for the owner, template slots follow
	slots := []string{""}
	tmpl, err := u.templateRepo.FindOne(ctx, classId)
	if err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":     err,
			"classId": classId,
		}).Error("templateRepo.FindOne failed")
		return err
	}
	if tmpl != nil {
		slots = append(slots, tmpl.Slots...)
	}
	return u.repo.Init(ctx, assetId, slots)
}
