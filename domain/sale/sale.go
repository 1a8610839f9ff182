package sale

import (
	"time"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

// Class is one fixed-price primary-sale configuration. Classes are never
// deleted; CreateClass may redefine one in place, resetting UnitsSold.
type Class struct {
	ClassId   domain.ClassId `json:"classId" bson:"classId"`
	UnitPrice string         `json:"unitPrice" bson:"unitPrice"`
	StartTime time.Time      `json:"startTime" bson:"startTime"`
	UnitsSold int64          `json:"unitsSold" bson:"unitsSold"`
}

// Engine is the singleton sale-engine state.
type Engine struct {
	Key       string         `json:"key" bson:"key"`
	Active    bool           `json:"active" bson:"active"`
	Custodian domain.Address `json:"custodian" bson:"custodian"`
	// Revenue is the retained primary-sale balance, in the smallest
	// currency unit, pending custodian withdrawal
	Revenue string `json:"revenue" bson:"revenue"`
}

const EngineKey = "sale"

type EnginePatchable struct {
	Active    *bool           `json:"active" bson:"active,omitempty"`
	Custodian *domain.Address `json:"custodian" bson:"custodian,omitempty"`
	Revenue   *string         `json:"revenue" bson:"revenue,omitempty"`
}

type ClassRepo interface {
	FindOne(ctx.Ctx, domain.ClassId) (*Class, error)
	FindAll(ctx.Ctx) ([]*Class, error)
	Upsert(ctx.Ctx, *Class) error
	// IncrementUnitsSold bumps the sold counter by one and returns the
	// post-increment class
	IncrementUnitsSold(ctx.Ctx, domain.ClassId) (*Class, error)
}

type EngineRepo interface {
	// Get returns the engine state, creating the default document on
	// first use
	Get(ctx.Ctx) (*Engine, error)
	Update(ctx.Ctx, EnginePatchable) error
}

// Purchased reports one successful primary sale.
type Purchased struct {
	AssetId domain.AssetId `json:"assetId"`
	ClassId domain.ClassId `json:"classId"`
	Buyer   domain.Address `json:"buyer"`
	Paid    string         `json:"paid"`
	Receipt string         `json:"receipt"`
}

type UseCase interface {
	CreateClass(c ctx.Ctx, caller domain.Address, classId domain.ClassId, startTime time.Time, unitPrice string) error
	GetClass(c ctx.Ctx, classId domain.ClassId) (*Class, error)
	ListClasses(c ctx.Ctx) ([]*Class, error)
	// Purchase mints, tags and delivers a token at the class price. The
	// full attached amount is retained, no change is given.
	Purchase(c ctx.Ctx, caller domain.Address, classId domain.ClassId, attached string) (*Purchased, error)
	// WithdrawRevenue moves the whole retained balance to the custodian
	WithdrawRevenue(c ctx.Ctx, caller domain.Address) (string, error)
	SetActive(c ctx.Ctx, caller domain.Address, active bool) error
	SetCustodian(c ctx.Ctx, caller, custodian domain.Address) error
	GetEngine(c ctx.Ctx) (*Engine, error)
}
