package usecase

import (
	"math/big"
	"sync"
	"time"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/base/metrics"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/market"
	"github.com/pixeldonor/goapi/domain/wallet"
)

var timeNow = time.Now

type MarketUseCaseCfg struct {
	AskRepo      market.AskRepo
	BidRepo      market.BidRepo
	SettingsRepo market.SettingsRepo
	AssetUC      asset.Usecase
	WalletUC     wallet.Usecase
	ActivityRepo account.ActivityRepo
	Admins       domain.AdminCapability
}

type marketUseCase struct {
	askRepo      market.AskRepo
	bidRepo      market.BidRepo
	settingsRepo market.SettingsRepo
	assetUC      asset.Usecase
	walletUC     wallet.Usecase
	activityRepo account.ActivityRepo
	admins       domain.AdminCapability
	met          metrics.Service

	// serializes every fund-moving entry point, the settlement
	// postcondition must observe a quiescent book
	mu sync.Mutex
}

func New(cfg *MarketUseCaseCfg) market.UseCase {
	return &marketUseCase{
		askRepo:      cfg.AskRepo,
		bidRepo:      cfg.BidRepo,
		settingsRepo: cfg.SettingsRepo,
		assetUC:      cfg.AssetUC,
		walletUC:     cfg.WalletUC,
		activityRepo: cfg.ActivityRepo,
		admins:       cfg.Admins,
		met:          metrics.New("market"),
	}
}

func (u *marketUseCase) SetAsk(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, price string, auxData string) (*market.Trade, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	owner, err := u.assetUC.OwnerOf(ctx, assetId)
	if err != nil {
		return nil, err
	}
	if owner.IsEmpty() {
		return nil, domain.ErrNoOwner
	}
	if !owner.Equals(caller) {
		ctx.WithFields(log.Fields{
			"caller":  caller,
			"owner":   owner,
			"assetId": assetId,
		}).Warn("listing by non-owner")
		return nil, domain.ErrNotOwner
	}

	amount, err := domain.ParseAmount(price)
	if err != nil {
		return nil, err
	}

	if amount.Sign() == 0 {
		// zero price delists
		if err := u.askRepo.Remove(ctx, assetId); err != nil && err != domain.ErrNotFound {
			return nil, err
		}
		u.recordActivity(ctx, &account.Activity{
			AssetId: assetId,
			Type:    account.ActivityTypeCancelListing,
			Account: caller.ToLower(),
			Time:    timeNow(),
		})
		return nil, nil
	}

	if err := u.askRepo.Upsert(ctx, &market.Ask{
		AssetId:   assetId,
		Price:     domain.AmountString(amount),
		UpdatedAt: timeNow(),
	}); err != nil {
		return nil, err
	}
	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypeList,
		Account: caller.ToLower(),
		Price:   domain.AmountString(amount),
		AuxData: auxData,
		Time:    timeNow(),
	})

	return u.settle(ctx, assetId, auxData)
}

func (u *marketUseCase) SetBid(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId, attached string, auxData string) (*market.Trade, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	owner, err := u.assetUC.OwnerOf(ctx, assetId)
	if err != nil {
		return nil, err
	}
	if owner.IsEmpty() {
		return nil, domain.ErrNoOwner
	}

	attachedAmount, err := domain.ParseAmount(attached)
	if err != nil {
		return nil, err
	}
	if attachedAmount.Sign() <= 0 {
		return nil, domain.ErrBidTooLow
	}

	ask, err := u.askRepo.FindOne(ctx, assetId)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	// a bid exceeding a live ask is clamped to the ask, the excess never
	// leaves the bidder's wallet
	accepted := attachedAmount
	if ask != nil {
		askAmount, err := domain.ParseAmount(ask.Price)
		if err != nil {
			return nil, err
		}
		if askAmount.Sign() > 0 && attachedAmount.Cmp(askAmount) > 0 {
			accepted = askAmount
		}
	}

	prev, err := u.bidRepo.FindOne(ctx, assetId)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if prev != nil {
		prevAmount, err := domain.ParseAmount(prev.Amount)
		if err != nil {
			return nil, err
		}
		if accepted.Cmp(prevAmount) <= 0 {
			ctx.WithFields(log.Fields{
				"assetId":  assetId,
				"accepted": accepted.String(),
				"current":  prevAmount.String(),
			}).Warn("bid does not exceed current bid")
			return nil, domain.ErrBidTooLow
		}
	}

	if err := u.walletUC.Debit(ctx, caller, accepted); err != nil {
		return nil, err
	}

	// the displaced bid is refunded before the new one is recorded
	if prev != nil {
		u.refund(ctx, prev)
	}

	if err := u.bidRepo.Upsert(ctx, &market.Bid{
		AssetId:  assetId,
		Bidder:   caller.ToLower(),
		Amount:   domain.AmountString(accepted),
		PlacedAt: timeNow(),
	}); err != nil {
		return nil, err
	}
	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypePlaceBid,
		Account: caller.ToLower(),
		Price:   domain.AmountString(accepted),
		AuxData: auxData,
		Time:    timeNow(),
	})

	return u.settle(ctx, assetId, auxData)
}

func (u *marketUseCase) WithdrawBid(ctx bCtx.Ctx, caller domain.Address, assetId domain.AssetId) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	bid, err := u.bidRepo.FindOne(ctx, assetId)
	if err != nil {
		return err
	}
	if !bid.Bidder.Equals(caller) {
		return domain.ErrNotBidder
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if timeNow().Before(bid.PlacedAt.Add(settings.BidLock())) {
		ctx.WithFields(log.Fields{
			"assetId":  assetId,
			"placedAt": bid.PlacedAt,
			"lock":     settings.BidLock(),
		}).Warn("bid still locked")
		return domain.ErrBidLocked
	}

	amount, err := domain.ParseAmount(bid.Amount)
	if err != nil {
		return err
	}
	// a failed delivery keeps the bid live, nothing moved
	if err := u.walletUC.Credit(ctx, bid.Bidder, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
			"bidder":  bid.Bidder,
		}).Error("walletUC.Credit failed")
		return err
	}

	if err := u.bidRepo.Remove(ctx, assetId); err != nil && err != domain.ErrNotFound {
		return err
	}
	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypeWithdrawBid,
		Account: bid.Bidder,
		Price:   bid.Amount,
		Time:    timeNow(),
	})
	return nil
}

func (u *marketUseCase) GetAsk(ctx bCtx.Ctx, assetId domain.AssetId) (*market.Ask, error) {
	return u.askRepo.FindOne(ctx, assetId)
}

func (u *marketUseCase) GetBid(ctx bCtx.Ctx, assetId domain.AssetId) (*market.Bid, error) {
	return u.bidRepo.FindOne(ctx, assetId)
}

func (u *marketUseCase) SetBidLock(ctx bCtx.Ctx, caller domain.Address, lock time.Duration) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("bid lock change by non-admin")
		return domain.ErrNotAdmin
	}
	if lock < 0 {
		return domain.ErrBadParamInput
	}
	seconds := int64(lock.Seconds())
	if err := u.settingsRepo.Update(ctx, market.SettingsPatchable{BidLockSeconds: &seconds}); err != nil {
		return err
	}
	u.recordActivity(ctx, &account.Activity{
		Type:    account.ActivityTypeAdminChange,
		Account: caller.ToLower(),
		AuxData: "bidLock",
		Time:    timeNow(),
	})
	return nil
}

// settle executes the crossing postcondition: whenever a live ask has a
// positive price no greater than the live bid, the trade runs at the bid
// amount. A rejected seller payout does not unwind the trade, the funds
// stay in escrow and the failure is reported.
func (u *marketUseCase) settle(ctx bCtx.Ctx, assetId domain.AssetId, auxData string) (*market.Trade, error) {
	ask, err := u.askRepo.FindOne(ctx, assetId)
	if err == domain.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	bid, err := u.bidRepo.FindOne(ctx, assetId)
	if err == domain.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	askAmount, err := domain.ParseAmount(ask.Price)
	if err != nil {
		return nil, err
	}
	bidAmount, err := domain.ParseAmount(bid.Amount)
	if err != nil {
		return nil, err
	}
	if askAmount.Sign() <= 0 || askAmount.Cmp(bidAmount) > 0 {
		return nil, nil
	}

	seller, err := u.assetUC.OwnerOf(ctx, assetId)
	if err != nil {
		return nil, err
	}

	delivered := u.payout(ctx, assetId, seller, bidAmount)

	if err := u.askRepo.Remove(ctx, assetId); err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if err := u.bidRepo.Remove(ctx, assetId); err != nil && err != domain.ErrNotFound {
		return nil, err
	}

	if err := u.assetUC.Transfer(ctx, seller, seller, bid.Bidder, assetId, auxData); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
			"seller":  seller,
			"buyer":   bid.Bidder,
		}).Error("assetUC.Transfer failed")
		return nil, err
	}

	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypeSold,
		Account: seller.ToLower(),
		To:      bid.Bidder,
		Price:   bid.Amount,
		Time:    timeNow(),
	})
	u.recordActivity(ctx, &account.Activity{
		AssetId: assetId,
		Type:    account.ActivityTypeBuy,
		Account: bid.Bidder,
		To:      seller.ToLower(),
		Price:   bid.Amount,
		Time:    timeNow(),
	})
	u.met.BumpSum("settle.trade", 1)

	return &market.Trade{
		AssetId:         assetId,
		Buyer:           bid.Bidder,
		Seller:          seller.ToLower(),
		Price:           bid.Amount,
		PayoutDelivered: delivered,
		ExecutedAt:      timeNow(),
	}, nil
}

func (u *marketUseCase) payout(ctx bCtx.Ctx, assetId domain.AssetId, seller domain.Address, amount *big.Int) bool {
	if err := u.walletUC.Credit(ctx, seller, amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": assetId,
			"seller":  seller,
			"amount":  amount.String(),
		}).Error("seller payout failed")
		u.recordActivity(ctx, &account.Activity{
			AssetId: assetId,
			Type:    account.ActivityTypePayoutFailed,
			Account: seller.ToLower(),
			Price:   domain.AmountString(amount),
			Time:    timeNow(),
		})
		u.met.BumpSum("settle.payout.err", 1)
		return false
	}
	return true
}

func (u *marketUseCase) refund(ctx bCtx.Ctx, bid *market.Bid) {
	amount, err := domain.ParseAmount(bid.Amount)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": bid,
		}).Error("domain.ParseAmount failed")
		return
	}
	if err := u.walletUC.Credit(ctx, bid.Bidder, amount); err != nil {
		// funds stay in escrow for off-band resolution
		ctx.WithFields(log.Fields{
			"err":     err,
			"assetId": bid.AssetId,
			"bidder":  bid.Bidder,
		}).Error("bid refund failed")
		u.recordActivity(ctx, &account.Activity{
			AssetId: bid.AssetId,
			Type:    account.ActivityTypeRefundFailed,
			Account: bid.Bidder,
			Price:   bid.Amount,
			Time:    timeNow(),
		})
		u.met.BumpSum("refund.err", 1)
		return
	}
	u.recordActivity(ctx, &account.Activity{
		AssetId: bid.AssetId,
		Type:    account.ActivityTypeBidRefunded,
		Account: bid.Bidder,
		Price:   bid.Amount,
		Time:    timeNow(),
	})
}

func (u *marketUseCase) recordActivity(ctx bCtx.Ctx, a *account.Activity) {
	if err := u.activityRepo.Insert(ctx, a); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": a,
		}).Error("activityRepo.Insert failed")
	}
}
