package account

import (
	"time"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

type ActivityType string

const (
	// order book
	ActivityTypeList          ActivityType = "list"
	ActivityTypeCancelListing ActivityType = "cancelListing"
	ActivityTypePlaceBid      ActivityType = "placeBid"
	ActivityTypeWithdrawBid   ActivityType = "withdrawBid"
	ActivityTypeBidRefunded   ActivityType = "bidRefunded"
	ActivityTypeRefundFailed  ActivityType = "refundFailed"
	ActivityTypePayoutFailed  ActivityType = "payoutFailed"
	ActivityTypeSold          ActivityType = "sold"

	// primary sale
	ActivityTypeBuy              ActivityType = "buy"
	ActivityTypeTokenSold        ActivityType = "tokenSold"
	ActivityTypeRevenueWithdrawn ActivityType = "revenueWithdrawn"

	// asset ledger
	ActivityTypeMint     ActivityType = "mint"
	ActivityTypeTransfer ActivityType = "transfer"
	ActivityTypeBurn     ActivityType = "burn"

	// administration
	ActivityTypeAdminChange ActivityType = "adminChange"
)

type Activity struct {
	AssetId domain.AssetId `json:"assetId" bson:"assetId"`
	ClassId domain.ClassId `json:"classId,omitempty" bson:"classId,omitempty"`
	Type    ActivityType   `json:"type" bson:"type"`
	Account domain.Address `json:"account" bson:"account"`
	To      domain.Address `json:"to,omitempty" bson:"to,omitempty"`
	Price   string         `json:"price,omitempty" bson:"price,omitempty"`
	AuxData string         `json:"auxData,omitempty" bson:"auxData,omitempty"`
	Time    time.Time      `json:"time" bson:"time"`
}

type findActivityOptions struct {
	Offset  *int
	Limit   *int
	Account *domain.Address
	AssetId *domain.AssetId
	ClassId *domain.ClassId
	Types   []ActivityType
	TimeGTE *time.Time
}

type FindActivityOptions func(*findActivityOptions) error

func GetFindActivityOptions(opts ...FindActivityOptions) (*findActivityOptions, error) {
	res := &findActivityOptions{}
	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func ActivityWithPagination(offset, limit int) FindActivityOptions {
	return func(opts *findActivityOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

func ActivityWithAccount(account domain.Address) FindActivityOptions {
	return func(opts *findActivityOptions) error {
		opts.Account = account.ToLowerPtr()
		return nil
	}
}

func ActivityWithAssetId(assetId domain.AssetId) FindActivityOptions {
	return func(opts *findActivityOptions) error {
		opts.AssetId = &assetId
		return nil
	}
}

func ActivityWithClassId(classId domain.ClassId) FindActivityOptions {
	return func(opts *findActivityOptions) error {
		opts.ClassId = &classId
		return nil
	}
}

func ActivityWithTypes(types ...ActivityType) FindActivityOptions {
	return func(opts *findActivityOptions) error {
		opts.Types = types
		return nil
	}
}

func ActivityWithTimeGTE(time time.Time) FindActivityOptions {
	return func(opts *findActivityOptions) error {
		opts.TimeGTE = &time
		return nil
	}
}

type ActivityRepo interface {
	Insert(ctx.Ctx, *Activity) error
	FindActivities(c ctx.Ctx, opts ...FindActivityOptions) ([]Activity, error)
	CountActivities(c ctx.Ctx, opts ...FindActivityOptions) (int, error)
}
