package account

import (
	"time"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

// Account is user's account stored in database
type Account struct {
	Address   domain.Address `json:"address" bson:"address"`
	Alias     string         `json:"alias" bson:"alias"`
	Nonce     int32          `json:"-" bson:"nonce"`
	CreatedAt time.Time      `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Updater to update account info
type Updater struct {
	Alias     *string   `json:"alias" bson:"alias"`
	Nonce     int32     `json:"-" bson:"nonce"`
	UpdatedAt time.Time `json:"-" bson:"updatedAt,omitempty"`
}

type Repo interface {
	Get(ctx.Ctx, domain.Address) (*Account, error)
	Insert(ctx.Ctx, *Account) error
	Update(c ctx.Ctx, address domain.Address, updater *Updater) error
}

type Usecase interface {
	Get(ctx.Ctx, domain.Address) (*Account, error)
	GetOrCreate(ctx.Ctx, domain.Address) (*Account, error)
	Update(c ctx.Ctx, address domain.Address, updater *Updater) (*Account, error)
	UpdateNonce(c ctx.Ctx, address domain.Address) (int32, error)
}
