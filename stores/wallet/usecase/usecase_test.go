package usecase_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/wallet"
	"github.com/pixeldonor/goapi/stores/wallet/usecase"
)

type fakeWalletRepo struct {
	balances map[domain.Address]*wallet.Balance
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{balances: map[domain.Address]*wallet.Balance{}}
}

func (r *fakeWalletRepo) FindOne(_ bCtx.Ctx, addr domain.Address) (*wallet.Balance, error) {
	b, ok := r.balances[addr.ToLower()]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeWalletRepo) Upsert(_ bCtx.Ctx, b *wallet.Balance) error {
	cp := *b
	cp.Address = cp.Address.ToLower()
	r.balances[cp.Address] = &cp
	return nil
}

func newWalletUC(repo wallet.Repo) wallet.Usecase {
	return usecase.New(&usecase.WalletUseCaseCfg{
		WalletRepo: repo,
		Admins:     domain.AdminCapability{Addresses: []domain.Address{"admin"}},
	})
}

func TestDeposit(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	repo := newFakeWalletRepo()
	u := newWalletUC(repo)

	req.ErrorIs(u.Deposit(ctx, "stranger", "alice", big.NewInt(100)), domain.ErrNotAdmin)

	req.NoError(u.Deposit(ctx, "admin", "alice", big.NewInt(100)))
	req.NoError(u.Deposit(ctx, "admin", "alice", big.NewInt(50)))

	balance, err := u.BalanceOf(ctx, "alice")
	req.NoError(err)
	req.Equal(int64(150), balance.Int64())
}

func TestDebitAndCredit(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	repo := newFakeWalletRepo()
	u := newWalletUC(repo)

	req.NoError(u.Deposit(ctx, "admin", "alice", big.NewInt(100)))

	req.ErrorIs(u.Debit(ctx, "alice", big.NewInt(101)), domain.ErrInsufficientFunds)

	req.NoError(u.Debit(ctx, "alice", big.NewInt(60)))

	balance, err := u.BalanceOf(ctx, "alice")
	req.NoError(err)
	req.Equal(int64(40), balance.Int64())

	escrow, err := u.EscrowBalance(ctx)
	req.NoError(err)
	req.Equal(int64(60), escrow.Int64())

	req.NoError(u.Credit(ctx, "bob", big.NewInt(60)))

	balance, err = u.BalanceOf(ctx, "bob")
	req.NoError(err)
	req.Equal(int64(60), balance.Int64())

	escrow, err = u.EscrowBalance(ctx)
	req.NoError(err)
	req.Equal(int64(0), escrow.Int64())
}

func TestCreditFrozenRecipient(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	repo := newFakeWalletRepo()
	u := newWalletUC(repo)

	req.NoError(u.Deposit(ctx, "admin", "alice", big.NewInt(100)))
	req.NoError(u.Debit(ctx, "alice", big.NewInt(100)))
	req.NoError(u.Freeze(ctx, "admin", "bob", true))

	req.ErrorIs(u.Credit(ctx, "bob", big.NewInt(100)), domain.ErrPaymentRejected)

	// funds stay in escrow until the recipient can take delivery
	escrow, err := u.EscrowBalance(ctx)
	req.NoError(err)
	req.Equal(int64(100), escrow.Int64())

	req.NoError(u.Freeze(ctx, "admin", "bob", false))
	req.NoError(u.Credit(ctx, "bob", big.NewInt(100)))

	balance, err := u.BalanceOf(ctx, "bob")
	req.NoError(err)
	req.Equal(int64(100), balance.Int64())
}

func TestCreditExceedingEscrow(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	repo := newFakeWalletRepo()
	u := newWalletUC(repo)

	req.ErrorIs(u.Credit(ctx, "bob", big.NewInt(1)), domain.ErrInsufficientFunds)
}
