package wallet

import (
	"math/big"

	"github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
)

// EscrowAddress is the internal ledger row holding all funds in the
// system's custody: live bid escrows plus retained sale revenue.
const EscrowAddress = domain.Address("escrow")

// Balance is one fund account. A frozen account rejects incoming
// deliveries, which is how payment-delivery failures surface.
type Balance struct {
	Address domain.Address `json:"address" bson:"address"`
	Amount  string         `json:"amount" bson:"amount"`
	Frozen  bool           `json:"frozen" bson:"frozen"`
}

type Repo interface {
	FindOne(ctx.Ctx, domain.Address) (*Balance, error)
	Upsert(ctx.Ctx, *Balance) error
}

type Usecase interface {
	BalanceOf(c ctx.Ctx, addr domain.Address) (*big.Int, error)
	// Debit moves amount from addr into escrow, failing with
	// ErrInsufficientFunds before any mutation
	Debit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
	// Credit delivers amount from escrow to addr. A frozen recipient
	// yields ErrPaymentRejected and the funds stay in escrow.
	Credit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
	// Deposit adds external funds to addr, admin-gated
	Deposit(c ctx.Ctx, caller, addr domain.Address, amount *big.Int) error
	// Freeze toggles delivery rejection for addr, admin-gated
	Freeze(c ctx.Ctx, caller, addr domain.Address, frozen bool) error
	EscrowBalance(c ctx.Ctx) (*big.Int, error)
}
