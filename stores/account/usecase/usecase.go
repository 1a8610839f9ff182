package usecase

import (
	"math/rand"
	"time"

	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/base/log"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
)

const (
	nonceRange   = int32(9999999)
	invalidNonce = int32(-1)
)

type AccountUseCaseCfg struct {
	Repo account.Repo
}

type impl struct {
	repo account.Repo
}

// New creates account usecase
func New(cfg *AccountUseCaseCfg) account.Usecase {
	return &impl{
		repo: cfg.Repo,
	}
}

func (im *impl) Get(c bCtx.Ctx, address domain.Address) (*account.Account, error) {
	a, err := im.repo.Get(c, address)
	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Get failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) GetOrCreate(c bCtx.Ctx, address domain.Address) (*account.Account, error) {
	a, err := im.repo.Get(c, address)
	if err == domain.ErrNotFound {
		return im.create(c, address)
	} else if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Get failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) Update(c bCtx.Ctx, address domain.Address, updater *account.Updater) (*account.Account, error) {
	updater.UpdatedAt = time.Now()
	if err := im.repo.Update(c, address, updater); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Update failed")
		return nil, err
	}
	return im.repo.Get(c, address)
}

// UpdateNonce draws a fresh random nonce for the address to sign, creating
// the account on first sight
func (im *impl) UpdateNonce(c bCtx.Ctx, address domain.Address) (int32, error) {
	if _, err := im.GetOrCreate(c, address); err != nil {
		return invalidNonce, err
	}
	nonce := rand.Int31n(nonceRange)
	if err := im.repo.Update(c, address, &account.Updater{
		Nonce:     nonce,
		UpdatedAt: time.Now(),
	}); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Update failed")
		return invalidNonce, err
	}
	return nonce, nil
}

func (im *impl) create(c bCtx.Ctx, address domain.Address) (*account.Account, error) {
	now := time.Now()
	created := &account.Account{
		Address:   address.ToLower(),
		Nonce:     invalidNonce,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.repo.Insert(c, created); err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Insert failed")
		return nil, err
	}
	return created, nil
}
