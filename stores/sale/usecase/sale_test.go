package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/account"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/property"
	"github.com/pixeldonor/goapi/domain/sale"
	"github.com/pixeldonor/goapi/domain/wallet"
	walletUsecase "github.com/pixeldonor/goapi/stores/wallet/usecase"
)

type fakeClassRepo struct {
	classes map[domain.ClassId]*sale.Class
}

func (r *fakeClassRepo) FindOne(_ bCtx.Ctx, classId domain.ClassId) (*sale.Class, error) {
	c, ok := r.classes[classId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClassRepo) FindAll(_ bCtx.Ctx) ([]*sale.Class, error) {
	res := []*sale.Class{}
	for _, c := range r.classes {
		cp := *c
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeClassRepo) Upsert(_ bCtx.Ctx, class *sale.Class) error {
	cp := *class
	r.classes[class.ClassId] = &cp
	return nil
}

func (r *fakeClassRepo) IncrementUnitsSold(_ bCtx.Ctx, classId domain.ClassId) (*sale.Class, error) {
	c, ok := r.classes[classId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.UnitsSold++
	cp := *c
	return &cp, nil
}

type fakeEngineRepo struct {
	engine *sale.Engine
}

func (r *fakeEngineRepo) Get(_ bCtx.Ctx) (*sale.Engine, error) {
	if r.engine == nil {
		return &sale.Engine{Key: sale.EngineKey, Revenue: "0"}, nil
	}
	cp := *r.engine
	return &cp, nil
}

func (r *fakeEngineRepo) Update(_ bCtx.Ctx, patchable sale.EnginePatchable) error {
	if r.engine == nil {
		r.engine = &sale.Engine{Key: sale.EngineKey, Revenue: "0"}
	}
	if patchable.Active != nil {
		r.engine.Active = *patchable.Active
	}
	if patchable.Custodian != nil {
		r.engine.Custodian = patchable.Custodian.ToLower()
	}
	if patchable.Revenue != nil {
		r.engine.Revenue = *patchable.Revenue
	}
	return nil
}

type stubLedger struct {
	asset.Usecase
	nextId domain.AssetId
	owners map[domain.AssetId]domain.Address
}

func (s *stubLedger) Mint(_ bCtx.Ctx, _, to domain.Address, _ domain.ClassId) (domain.AssetId, error) {
	s.nextId++
	s.owners[s.nextId] = to.ToLower()
	return s.nextId, nil
}

func (s *stubLedger) Transfer(_ bCtx.Ctx, caller, from, to domain.Address, assetId domain.AssetId, _ string) error {
	owner, ok := s.owners[assetId]
	if !ok {
		return domain.ErrNotFound
	}
	if !owner.Equals(from) || !caller.Equals(from) {
		return domain.ErrNotOwner
	}
	s.owners[assetId] = to.ToLower()
	return nil
}

type stubProps struct {
	property.Usecase
	receipts map[domain.AssetId][]string
}

func (s *stubProps) Append(_ bCtx.Ctx, _ domain.Address, assetId domain.AssetId, text string) error {
	s.receipts[assetId] = append(s.receipts[assetId], text)
	return nil
}

type fakeActivityRepo struct {
	activities []*account.Activity
}

func (r *fakeActivityRepo) Insert(_ bCtx.Ctx, a *account.Activity) error {
	r.activities = append(r.activities, a)
	return nil
}

func (r *fakeActivityRepo) FindActivities(_ bCtx.Ctx, _ ...account.FindActivityOptions) ([]account.Activity, error) {
	res := []account.Activity{}
	for _, a := range r.activities {
		res = append(res, *a)
	}
	return res, nil
}

func (r *fakeActivityRepo) CountActivities(_ bCtx.Ctx, _ ...account.FindActivityOptions) (int, error) {
	return len(r.activities), nil
}

type saleFixture struct {
	uc       sale.UseCase
	walletUC wallet.Usecase
	classes  *fakeClassRepo
	engine   *fakeEngineRepo
	ledger   *stubLedger
	props    *stubProps
}

func newSaleFixture() *saleFixture {
	classes := &fakeClassRepo{classes: map[domain.ClassId]*sale.Class{}}
	engine := &fakeEngineRepo{}
	ledger := &stubLedger{owners: map[domain.AssetId]domain.Address{}}
	props := &stubProps{receipts: map[domain.AssetId][]string{}}
	walletUC := walletUsecase.New(&walletUsecase.WalletUseCaseCfg{
		WalletRepo: &fakeWalletRepo{balances: map[domain.Address]*wallet.Balance{}},
		Admins:     domain.AdminCapability{Addresses: []domain.Address{"admin"}},
	})
	uc := New(&SaleUseCaseCfg{
		ClassRepo:     classes,
		EngineRepo:    engine,
		AssetUC:       ledger,
		PropertyUC:    props,
		WalletUC:      walletUC,
		ActivityRepo:  &fakeActivityRepo{},
		Admins:        domain.AdminCapability{Addresses: []domain.Address{"admin"}},
		EngineAddress: "engine",
		Decimals:      2,
	})
	return &saleFixture{
		uc:       uc,
		walletUC: walletUC,
		classes:  classes,
		engine:   engine,
		ledger:   ledger,
		props:    props,
	}
}

type fakeWalletRepo struct {
	balances map[domain.Address]*wallet.Balance
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

func TestPurchase(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newSaleFixture()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	defer func() { timeNow = time.Now }()
	timeNow = func() time.Time { return start.Add(-time.Hour) }

	req.NoError(f.uc.CreateClass(ctx, "admin", 7, start, "10000"))
	req.NoError(f.walletUC.Deposit(ctx, "admin", "alice", big.NewInt(50000)))

	_, err := f.uc.Purchase(ctx, "alice", 7, "10000")
	req.ErrorIs(err, domain.ErrSaleInactive)

	req.NoError(f.uc.SetActive(ctx, "admin", true))

	_, err = f.uc.Purchase(ctx, "alice", 7, "10000")
	req.ErrorIs(err, domain.ErrSaleNotStarted)

	timeNow = func() time.Time { return start.Add(time.Hour) }

	_, err = f.uc.Purchase(ctx, "alice", 7, "9999")
	req.ErrorIs(err, domain.ErrPaymentBelowPrice)

	_, err = f.uc.Purchase(ctx, "alice", 8, "10000")
	req.ErrorIs(err, domain.ErrNotFound)

	purchased, err := f.uc.Purchase(ctx, "alice", 7, "10000")
	req.NoError(err)
	req.Equal(domain.Address("alice"), purchased.Buyer)
	req.Equal("Donated: 100 at 2026-03-01T01:00:00Z", purchased.Receipt)
	req.Equal(domain.Address("alice"), f.ledger.owners[purchased.AssetId])
	req.Equal([]string{purchased.Receipt}, f.props.receipts[purchased.AssetId])

	class, err := f.uc.GetClass(ctx, 7)
	req.NoError(err)
	req.Equal(int64(1), class.UnitsSold)

	engine, err := f.uc.GetEngine(ctx)
	req.NoError(err)
	req.Equal("10000", engine.Revenue)

	balance, err := f.walletUC.BalanceOf(ctx, "alice")
	req.NoError(err)
	req.Equal(int64(40000), balance.Int64())
}

func TestPurchaseRetainsOverpayment(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newSaleFixture()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	defer func() { timeNow = time.Now }()
	timeNow = func() time.Time { return start.Add(time.Minute) }

	req.NoError(f.uc.CreateClass(ctx, "admin", 7, start, "10000"))
	req.NoError(f.uc.SetActive(ctx, "admin", true))
	req.NoError(f.walletUC.Deposit(ctx, "admin", "alice", big.NewInt(20000)))

	// no change is given, the whole payment counts as the donation
	purchased, err := f.uc.Purchase(ctx, "alice", 7, "12345")
	req.NoError(err)
	req.Equal("12345", purchased.Paid)
	req.Equal("Donated: 123 at 2026-03-01T00:01:00Z", purchased.Receipt)

	engine, err := f.uc.GetEngine(ctx)
	req.NoError(err)
	req.Equal("12345", engine.Revenue)

	balance, err := f.walletUC.BalanceOf(ctx, "alice")
	req.NoError(err)
	req.Equal(int64(7655), balance.Int64())
}

func TestCreateClass(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newSaleFixture()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	req.ErrorIs(f.uc.CreateClass(ctx, "alice", 7, start, "10000"), domain.ErrNotAdmin)
	req.ErrorIs(f.uc.CreateClass(ctx, "admin", 7, start, "0"), domain.ErrBadParamInput)
	req.NoError(f.uc.CreateClass(ctx, "admin", 7, start, "10000"))

	f.classes.classes[7].UnitsSold = 5

	// redefining in place starts the count over
	req.NoError(f.uc.CreateClass(ctx, "admin", 7, start, "20000"))
	class, err := f.uc.GetClass(ctx, 7)
	req.NoError(err)
	req.Equal("20000", class.UnitPrice)
	req.Equal(int64(0), class.UnitsSold)
}

func TestWithdrawRevenue(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newSaleFixture()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	defer func() { timeNow = time.Now }()
	timeNow = func() time.Time { return start.Add(time.Minute) }

	req.NoError(f.uc.CreateClass(ctx, "admin", 7, start, "10000"))
	req.NoError(f.uc.SetActive(ctx, "admin", true))
	req.NoError(f.walletUC.Deposit(ctx, "admin", "alice", big.NewInt(10000)))

	_, err := f.uc.Purchase(ctx, "alice", 7, "10000")
	req.NoError(err)

	_, err = f.uc.WithdrawRevenue(ctx, "carol")
	req.ErrorIs(err, domain.ErrNotCustodian)

	req.ErrorIs(f.uc.SetCustodian(ctx, "alice", "carol"), domain.ErrNotAdmin)
	req.NoError(f.uc.SetCustodian(ctx, "admin", "carol"))

	withdrawn, err := f.uc.WithdrawRevenue(ctx, "carol")
	req.NoError(err)
	req.Equal("10000", withdrawn)

	balance, err := f.walletUC.BalanceOf(ctx, "carol")
	req.NoError(err)
	req.Equal(int64(10000), balance.Int64())

	engine, err := f.uc.GetEngine(ctx)
	req.NoError(err)
	req.Equal("0", engine.Revenue)

	withdrawn, err = f.uc.WithdrawRevenue(ctx, "carol")
	req.NoError(err)
	req.Equal("0", withdrawn)
}

func TestWithdrawRevenueDeliveryFailure(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newSaleFixture()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	defer func() { timeNow = time.Now }()
	timeNow = func() time.Time { return start.Add(time.Minute) }

	req.NoError(f.uc.CreateClass(ctx, "admin", 7, start, "10000"))
	req.NoError(f.uc.SetActive(ctx, "admin", true))
	req.NoError(f.uc.SetCustodian(ctx, "admin", "carol"))
	req.NoError(f.walletUC.Deposit(ctx, "admin", "alice", big.NewInt(10000)))

	_, err := f.uc.Purchase(ctx, "alice", 7, "10000")
	req.NoError(err)

	req.NoError(f.walletUC.Freeze(ctx, "admin", "carol", true))

	// a rejected delivery reverts the withdrawal entirely
	_, err = f.uc.WithdrawRevenue(ctx, "carol")
	req.ErrorIs(err, domain.ErrPaymentRejected)

	engine, err := f.uc.GetEngine(ctx)
	req.NoError(err)
	req.Equal("10000", engine.Revenue)
}
