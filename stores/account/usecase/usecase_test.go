package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/stores/account/usecase"
)

type fakeAccountRepo struct {
	accounts map[domain.Address]*account.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[domain.Address]*account.Account{}}
}

func (r *fakeAccountRepo) Get(_ bCtx.Ctx, address domain.Address) (*account.Account, error) {
	a, ok := r.accounts[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) Insert(_ bCtx.Ctx, a *account.Account) error {
	if _, ok := r.accounts[a.Address.ToLower()]; ok {
		return domain.ErrConflict
	}
	cp := *a
	r.accounts[a.Address.ToLower()] = &cp
	return nil
}

func (r *fakeAccountRepo) Update(_ bCtx.Ctx, address domain.Address, updater *account.Updater) error {
	a, ok := r.accounts[address.ToLower()]
	if !ok {
		return domain.ErrNotFound
	}
	if updater.Alias != nil {
		a.Alias = *updater.Alias
	}
	a.Nonce = updater.Nonce
	a.UpdatedAt = updater.UpdatedAt
	return nil
}

func TestGetOrCreate(t *testing.T) {
	req := require.New(t)
	repo := newFakeAccountRepo()
	u := usecase.New(&usecase.AccountUseCaseCfg{Repo: repo})
	c := bCtx.Background()

	_, err := u.Get(c, "0xABC")
	req.ErrorIs(err, domain.ErrNotFound)

	a, err := u.GetOrCreate(c, "0xABC")
	req.NoError(err)
	req.Equal(domain.Address("0xabc"), a.Address)

	again, err := u.GetOrCreate(c, "0xabc")
	req.NoError(err)
	req.Equal(a.Address, again.Address)
	req.Len(repo.accounts, 1)
}

func TestUpdateNonce(t *testing.T) {
	req := require.New(t)
	repo := newFakeAccountRepo()
	u := usecase.New(&usecase.AccountUseCaseCfg{Repo: repo})
	c := bCtx.Background()

	nonce, err := u.UpdateNonce(c, "0xabc")
	req.NoError(err)
	req.GreaterOrEqual(nonce, int32(0))

	a, err := u.Get(c, "0xabc")
	req.NoError(err)
	req.Equal(nonce, a.Nonce)
}
