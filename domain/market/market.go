package market

import (
	"time"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

// Ask is the price at which the current owner is willing to sell. At most
// one per asset; removed row means "not listed". Any ownership transfer
// removes it.
type Ask struct {
	AssetId   domain.AssetId `json:"assetId" bson:"assetId"`
	Price     string         `json:"price" bson:"price"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Bid is the single live purchase offer on an asset, its amount held in
// escrow from placement until refund, trade or withdrawal. Bids survive
// ownership transfers.
type Bid struct {
	AssetId  domain.AssetId `json:"assetId" bson:"assetId"`
	Bidder   domain.Address `json:"bidder" bson:"bidder"`
	Amount   string         `json:"amount" bson:"amount"`
	PlacedAt time.Time      `json:"placedAt" bson:"placedAt"`
}

// Trade reports a settled crossing. PayoutDelivered is false when the
// seller rejected the funds; the trade still stands and the amount stays
// in escrow for off-band resolution.
type Trade struct {
	AssetId         domain.AssetId `json:"assetId"`
	Buyer           domain.Address `json:"buyer"`
	Seller          domain.Address `json:"seller"`
	Price           string         `json:"price"`
	PayoutDelivered bool           `json:"payoutDelivered"`
	ExecutedAt      time.Time      `json:"executedAt"`
}

// Settings is the administrable market configuration.
type Settings struct {
	Key            string `json:"key" bson:"key"`
	BidLockSeconds int64  `json:"bidLockSeconds" bson:"bidLockSeconds"`
}

const SettingsKey = "market"

const DefaultBidLock = 24 * time.Hour

func (s *Settings) BidLock() time.Duration {
	if s == nil || s.BidLockSeconds <= 0 {
		return DefaultBidLock
	}
	return time.Duration(s.BidLockSeconds) * time.Second
}

type SettingsPatchable struct {
	BidLockSeconds *int64 `json:"bidLockSeconds" bson:"bidLockSeconds,omitempty"`
}

type AskRepo interface {
	FindOne(ctx.Ctx, domain.AssetId) (*Ask, error)
	Upsert(ctx.Ctx, *Ask) error
	Remove(ctx.Ctx, domain.AssetId) error
}

type BidRepo interface {
	FindOne(ctx.Ctx, domain.AssetId) (*Bid, error)
	Upsert(ctx.Ctx, *Bid) error
	Remove(ctx.Ctx, domain.AssetId) error
}

type SettingsRepo interface {
	Get(ctx.Ctx) (*Settings, error)
	Update(ctx.Ctx, SettingsPatchable) error
}

// UseCase is the order book. Every mutator runs the settlement
// postcondition before returning; a non-nil Trade reports the crossing it
// executed.
type UseCase interface {
	SetAsk(c ctx.Ctx, caller domain.Address, assetId domain.AssetId, price string, auxData string) (*Trade, error)
	SetBid(c ctx.Ctx, caller domain.Address, assetId domain.AssetId, attached string, auxData string) (*Trade, error)
	WithdrawBid(c ctx.Ctx, caller domain.Address, assetId domain.AssetId) error
	GetAsk(c ctx.Ctx, assetId domain.AssetId) (*Ask, error)
	GetBid(c ctx.Ctx, assetId domain.AssetId) (*Bid, error)
	SetBidLock(c ctx.Ctx, caller domain.Address, lock time.Duration) error
}
