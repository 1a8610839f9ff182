package asset

import (
	"time"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

// Asset is one entry of the ownership ledger. An asset with an empty owner
// is burned; its id is never reassigned.
type Asset struct {
	AssetId  domain.AssetId `json:"assetId" bson:"assetId"`
	Owner    domain.Address `json:"owner" bson:"owner"`
	ClassId  domain.ClassId `json:"classId" bson:"classId"`
	MintedAt time.Time      `json:"mintedAt" bson:"mintedAt"`
}

type Patchable struct {
	Owner *domain.Address `json:"owner" bson:"owner,omitempty"`
}

type FindAllOptions struct {
	Owner   *domain.Address
	ClassId *domain.ClassId
	Offset  *int32
	Limit   *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = owner.ToLowerPtr()
		return nil
	}
}

func WithClassId(classId domain.ClassId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ClassId = &classId
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindOne(ctx.Ctx, domain.AssetId) (*Asset, error)
	FindAll(ctx.Ctx, ...FindAllOptionsFunc) ([]*Asset, error)
	Count(ctx.Ctx, ...FindAllOptionsFunc) (int, error)
	Insert(ctx.Ctx, *Asset) error
	Update(ctx.Ctx, domain.AssetId, Patchable) error
	// NextId draws the next asset id from the monotonic counter
	NextId(ctx.Ctx) (domain.AssetId, error)
}

// Usecase is the asset ledger: mint, transfer and burn bookkeeping.
type Usecase interface {
	Mint(c ctx.Ctx, caller, to domain.Address, classId domain.ClassId) (domain.AssetId, error)
	// Transfer moves the asset and always resets its ask. Bids survive
	// ownership changes.
	Transfer(c ctx.Ctx, caller, from, to domain.Address, assetId domain.AssetId, auxData string) error
	Burn(c ctx.Ctx, caller domain.Address, assetId domain.AssetId) error
	OwnerOf(c ctx.Ctx, assetId domain.AssetId) (domain.Address, error)
	BalanceOf(c ctx.Ctx, owner domain.Address) (int, error)
	Get(c ctx.Ctx, assetId domain.AssetId) (*Asset, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Asset, error)
}
