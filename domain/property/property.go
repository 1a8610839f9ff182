package property

import (
	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

// UserSlot is the only slot the asset owner may edit. Every other slot is
// an immutable record appended by a privileged caller.
const UserSlot = 0

// Properties is the ordered list of string slots attached to an asset.
type Properties struct {
	AssetId domain.AssetId `json:"assetId" bson:"assetId"`
	Slots   []string       `json:"slots" bson:"slots"`
}

// ClassTemplate is the slot list copied onto every asset minted under the
// class, after the reserved user slot.
type ClassTemplate struct {
	ClassId domain.ClassId `json:"classId" bson:"classId"`
	Slots   []string       `json:"slots" bson:"slots"`
}

type Repo interface {
	FindOne(ctx.Ctx, domain.AssetId) (*Properties, error)
	// Init creates the slot list for a freshly minted asset
	Init(c ctx.Ctx, assetId domain.AssetId, slots []string) error
	// Append adds one immutable slot at the end of the list
	Append(c ctx.Ctx, assetId domain.AssetId, text string) error
	// SetUserContent overwrites the reserved user slot
	SetUserContent(c ctx.Ctx, assetId domain.AssetId, text string) error
}

type TemplateRepo interface {
	FindOne(ctx.Ctx, domain.ClassId) (*ClassTemplate, error)
	Upsert(ctx.Ctx, *ClassTemplate) error
}

type Usecase interface {
	// Append records an immutable property, minter-gated
	Append(c ctx.Ctx, caller domain.Address, assetId domain.AssetId, text string) error
	Get(c ctx.Ctx, assetId domain.AssetId, index int) (string, error)
	GetAll(c ctx.Ctx, assetId domain.AssetId) ([]string, error)
	// SetUserContent edits slot 0, owner-gated
	SetUserContent(c ctx.Ctx, caller domain.Address, assetId domain.AssetId, text string) error
	// SetClassTemplate defines the slots stamped onto future mints, admin-gated
	SetClassTemplate(c ctx.Ctx, caller domain.Address, classId domain.ClassId, slots []string) error
	// InitForMint stamps the reserved user slot plus the class template
	InitForMint(c ctx.Ctx, assetId domain.AssetId, classId domain.ClassId) error
}
