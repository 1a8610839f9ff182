package usecase

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/base/metrics"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/property"
	"github.com/pixeldonor/goapi/domain/sale"
	"github.com/pixeldonor/goapi/domain/wallet"
)

var timeNow = time.Now

type SaleUseCaseCfg struct {
	ClassRepo    sale.ClassRepo
	EngineRepo   sale.EngineRepo
	AssetUC      asset.Usecase
	PropertyUC   property.Usecase
	WalletUC     wallet.Usecase
	ActivityRepo account.ActivityRepo
	Admins       domain.AdminCapability

	// EngineAddress is the identity the engine mints and appends
	// receipts under, it must hold the minter capability
	EngineAddress domain.Address

	// Decimals converts retained smallest-unit amounts to the whole
	// units printed on receipts
	Decimals int32
}

type saleUseCase struct {
	classRepo     sale.ClassRepo
	engineRepo    sale.EngineRepo
	assetUC       asset.Usecase
	propertyUC    property.Usecase
	walletUC      wallet.Usecase
	activityRepo  account.ActivityRepo
	admins        domain.AdminCapability
	engineAddress domain.Address
	decimals      int32
	met           metrics.Service

	mu sync.Mutex
}

func New(cfg *SaleUseCaseCfg) sale.UseCase {
	return &saleUseCase{
		classRepo:     cfg.ClassRepo,
		engineRepo:    cfg.EngineRepo,
		assetUC:       cfg.AssetUC,
		propertyUC:    cfg.PropertyUC,
		walletUC:      cfg.WalletUC,
		activityRepo:  cfg.ActivityRepo,
		admins:        cfg.Admins,
		engineAddress: cfg.EngineAddress.ToLower(),
		decimals:      cfg.Decimals,
		met:           metrics.New("sale"),
	}
}

func (u *saleUseCase) CreateClass(ctx bCtx.Ctx, caller domain.Address, classId domain.ClassId, startTime time.Time, unitPrice string) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("class creation by non-admin")
		return domain.ErrNotAdmin
	}
	price, err := domain.ParseAmount(unitPrice)
	if err != nil {
		return err
	}
	if price.Sign() <= 0 {
		return domain.ErrBadParamInput
	}

	// redefining a class resets its sold counter
	if err := u.classRepo.Upsert(ctx, &sale.Class{
		ClassId:   classId,
		UnitPrice: domain.AmountString(price),
		StartTime: startTime,
		UnitsSold: 0,
	}); err != nil {
		return err
	}
	u.recordActivity(ctx, &account.Activity{
		ClassId: classId,
		Type:    account.ActivityTypeAdminChange,
		Account: caller.ToLower(),
		Price:   domain.AmountString(price),
		AuxData: "createClass",
		Time:    timeNow(),
	})
	return nil
}

func (u *saleUseCase) GetClass(ctx bCtx.Ctx, classId domain.ClassId) (*sale.Class, error) {
	return u.classRepo.FindOne(ctx, classId)
}

func (u *saleUseCase) ListClasses(ctx bCtx.Ctx) ([]*sale.Class, error) {
	return u.classRepo.FindAll(ctx)
}

func (u *saleUseCase) Purchase(ctx bCtx.Ctx, caller domain.Address, classId domain.ClassId, attached string) (*sale.Purchased, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	engine, err := u.engineRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !engine.Active {
		return nil, domain.ErrSaleInactive
	}

	class, err := u.classRepo.FindOne(ctx, classId)
	if err != nil {
		return nil, err
	}
	if timeNow().Before(class.StartTime) {
		ctx.WithFields(log.Fields{
			"classId":   classId,
			"startTime": class.StartTime,
		}).Warn("sale not started")
		return nil, domain.ErrSaleNotStarted
	}

	price, err := domain.ParseAmount(class.UnitPrice)
	if err != nil {
		return nil, err
	}
	if price.Sign() <= 0 {
		return nil, domain.ErrSaleInactive
	}
	attachedAmount, err := domain.ParseAmount(attached)
	if err != nil {
		return nil, err
	}
	if attachedAmount.Cmp(price) < 0 {
		ctx.WithFields(log.Fields{
			"classId":  classId,
			"attached": attachedAmount.String(),
			"price":    price.String(),
		}).Warn("payment below unit price")
		return nil, domain.ErrPaymentBelowPrice
	}

	// the full attached payment is retained, overpaying is donating
	if err := u.walletUC.Debit(ctx, caller, attachedAmount); err != nil {
		return nil, err
	}

	assetId, err := u.assetUC.Mint(ctx, u.engineAddress, u.engineAddress, classId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"classId": classId,
		}).Error("assetUC.Mint failed")
		return nil, err
	}

	receipt := u.makeReceipt(attachedAmount)
	if err := u.propertyUC.Append(ctx, u.engineAddress, assetId, receipt); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
		}).Error("propertyUC.Append failed")
		return nil, err
	}

	if _, err := u.classRepo.IncrementUnitsSold(ctx, classId); err != nil {
		return nil, err
	}

	if err := u.assetUC.Transfer(ctx, u.engineAddress, u.engineAddress, caller, assetId, ""); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
			"buyer":   caller,
		}).Error("assetUC.Transfer failed")
		return nil, err
	}

	revenue, err := domain.ParseAmount(engine.Revenue)
	if err != nil {
		return nil, err
	}
	newRevenue := domain.AmountString(new(big.Int).Add(revenue, attachedAmount))
	if err := u.engineRepo.Update(ctx, sale.EnginePatchable{Revenue: &newRevenue}); err != nil {
		return nil, err
	}

	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		ClassId: classId,
		Type:    account.ActivityTypeBuy,
		Account: caller.ToLower(),
		Price:   domain.AmountString(attachedAmount),
		Time:    timeNow(),
	})
	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		ClassId: classId,
		Type:    account.ActivityTypeTokenSold,
		Account: u.engineAddress,
		To:      caller.ToLower(),
		Price:   domain.AmountString(attachedAmount),
		Time:    timeNow(),
	})
	u.met.BumpSum("purchase", 1)

	return &sale.Purchased{
		AssetId: assetId,
		ClassId: classId,
		Buyer:   caller.ToLower(),
		Paid:    domain.AmountString(attachedAmount),
		Receipt: receipt,
	}, nil
}

func (u *saleUseCase) WithdrawRevenue(ctx bCtx.Ctx, caller domain.Address) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	engine, err := u.engineRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if engine.Custodian.IsEmpty() || !engine.Custodian.Equals(caller) {
		ctx.WithFields(log.Fields{
			"caller":    caller,
			"custodian": engine.Custodian,
		}).Warn("revenue withdrawal by non-custodian")
		return "", domain.ErrNotCustodian
	}

	amount, err := domain.ParseAmount(engine.Revenue)
	if err != nil {
		return "", err
	}
	if amount.Sign() == 0 {
		return "0", nil
	}

	// unlike seller payouts, a failed withdrawal leaves the retained
	// balance untouched
	if err := u.walletUC.Credit(ctx, engine.Custodian, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"custodian": engine.Custodian,
			"amount":    amount.String(),
		}).Error("walletUC.Credit failed")
		return "", err
	}

	zero := "0"
	if err := u.engineRepo.Update(ctx, sale.EnginePatchable{Revenue: &zero}); err != nil {
		return "", err
	}

	u.recordActivity(ctx, &account.Activity{
		Type:    account.ActivityTypeRevenueWithdrawn,
		Account: engine.Custodian,
		Price:   domain.AmountString(amount),
		Time:    timeNow(),
	})
	u.met.BumpSum("withdraw_revenue", 1)

	return domain.AmountString(amount), nil
}

func (u *saleUseCase) SetActive(ctx bCtx.Ctx, caller domain.Address, active bool) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("engine toggle by non-admin")
		return domain.ErrNotAdmin
	}
	if err := u.engineRepo.Update(ctx, sale.EnginePatchable{Active: &active}); err != nil {
		return err
	}
	u.recordActivity(ctx, &account.Activity{
		Type:    account.ActivityTypeAdminChange,
		Account: caller.ToLower(),
		AuxData: "setActive",
		Time:    timeNow(),
	})
	return nil
}

func (u *saleUseCase) SetCustodian(ctx bCtx.Ctx, caller, custodian domain.Address) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("custodian change by non-admin")
		return domain.ErrNotAdmin
	}
	if custodian.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	lowered := custodian.ToLower()
	if err := u.engineRepo.Update(ctx, sale.EnginePatchable{Custodian: &lowered}); err != nil {
		return err
	}
	u.recordActivity(ctx, &account.Activity{
		Type:    account.ActivityTypeAdminChange,
		Account: caller.ToLower(),
		To:      lowered,
		AuxData: "setCustodian",
		Time:    timeNow(),
	})
	return nil
}

func (u *saleUseCase) GetEngine(ctx bCtx.Ctx) (*sale.Engine, error) {
	return u.engineRepo.Get(ctx)
}

// makeReceipt renders the immutable donation record stamped onto each
// sold token, the amount in whole currency units rounded down.
func (u *saleUseCase) makeReceipt(amount *big.Int) string {
	units := decimal.NewFromBigInt(amount, 0).Shift(-u.decimals).Truncate(0)
	return fmt.Sprintf("Donated: %s at %s", units.String(), timeNow().UTC().Format(time.RFC3339))
}

func (u *saleUseCase) recordActivity(ctx bCtx.Ctx, a *account.Activity) {
	if err := u.activityRepo.Insert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": a,
		}).Error("activityRepo.Insert failed")
	}
}
