package usecase

import (
	"math/big"
	"sync"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/wallet"
)

type WalletUseCaseCfg struct {
	WalletRepo wallet.Repo
	Admins     domain.AdminCapability
}

type walletUseCase struct {
	repo   wallet.Repo
	admins domain.AdminCapability

	// guards read-modify-write cycles across balance rows
	mu sync.Mutex
}

func New(cfg *WalletUseCaseCfg) wallet.Usecase {
	return &walletUseCase{
		repo:   cfg.WalletRepo,
		admins: cfg.Admins,
	}
}

func (u *walletUseCase) BalanceOf(ctx bCtx.Ctx, addr domain.Address) (*big.Int, error) {
	balance, err := u.repo.FindOne(ctx, addr)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": addr,
		}).Error("repo.FindOne failed")
		return nil, err
	}
	return balanceAmount(balance)
}

func (u *walletUseCase) Debit(ctx bCtx.Ctx, addr domain.Address, amount *big.Int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.move(ctx, addr, wallet.EscrowAddress, amount, false)
}

func (u *walletUseCase) Credit(ctx bCtx.Ctx, addr domain.Address, amount *big.Int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.move(ctx, wallet.EscrowAddress, addr, amount, true)
}

func (u *walletUseCase) Deposit(ctx bCtx.Ctx, caller, addr domain.Address, amount *big.Int) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("deposit by non-admin")
		return domain.ErrNotAdmin
	}
	if amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	balance, err := u.repo.FindOne(ctx, addr)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": addr,
		}).Error("repo.FindOne failed")
		return err
	}
	cur, err := balanceAmount(balance)
	if err != nil {
		return err
	}
	frozen := balance != nil && balance.Frozen
	return u.repo.Upsert(ctx, &wallet.Balance{
		Address: addr,
		Amount:  domain.AmountString(new(big.Int).Add(cur, amount)),
		Frozen:  frozen,
	})
}

func (u *walletUseCase) Freeze(ctx bCtx.Ctx, caller, addr domain.Address, frozen bool) error {
	if !u.admins.Allows(caller) {
		ctx.WithField("caller", caller).Warn("freeze by non-admin")
		return domain.ErrNotAdmin
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	balance, err := u.repo.FindOne(ctx, addr)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": addr,
		}).Error("repo.FindOne failed")
		return err
	}
	amount := "0"
	if balance != nil {
		amount = balance.Amount
	}
	return u.repo.Upsert(ctx, &wallet.Balance{
		Address: addr,
		Amount:  amount,
		Frozen:  frozen,
	})
}

func (u *walletUseCase) EscrowBalance(ctx bCtx.Ctx) (*big.Int, error) {
	return u.BalanceOf(ctx, wallet.EscrowAddress)
}

// move shifts amount from one row to the other, callers hold u.mu.
// checkFrozen applies to the destination: a frozen recipient rejects the
// delivery and nothing moves.
func (u *walletUseCase) move(ctx bCtx.Ctx, from, to domain.Address, amount *big.Int, checkFrozen bool) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}

	src, err := u.repo.FindOne(ctx, from)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": from,
		}).Error("repo.FindOne failed")
		return err
	}
	srcAmount, err := balanceAmount(src)
	if err != nil {
		return err
	}
	if srcAmount.Cmp(amount) < 0 {
		ctx.WithFields(log.Fields{
			"address": from,
			"balance": srcAmount.String(),
			"amount":  amount.String(),
		}).Warn("insufficient funds")
		return domain.ErrInsufficientFunds
	}

	dst, err := u.repo.FindOne(ctx, to)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": to,
		}).Error("repo.FindOne failed")
		return err
	}
	if checkFrozen && dst != nil && dst.Frozen {
		ctx.WithField("address", to).Warn("recipient rejected payment")
		return domain.ErrPaymentRejected
	}
	dstAmount, err := balanceAmount(dst)
	if err != nil {
		return err
	}

	srcFrozen := src != nil && src.Frozen
	if err := u.repo.Upsert(ctx, &wallet.Balance{
		Address: from,
		Amount:  domain.AmountString(new(big.Int).Sub(srcAmount, amount)),
		Frozen:  srcFrozen,
	}); err != nil {
		return err
	}

	dstFrozen := dst != nil && dst.Frozen
	return u.repo.Upsert(ctx, &wallet.Balance{
		Address: to,
		Amount:  domain.AmountString(new(big.Int).Add(dstAmount, amount)),
		Frozen:  dstFrozen,
	})
}

func balanceAmount(b *wallet.Balance) (*big.Int, error) {
	if b == nil {
		return big.NewInt(0), nil
	}
	return domain.ParseAmount(b.Amount)
}
