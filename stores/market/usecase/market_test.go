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
	"github.com/pixeldonor/goapi/domain/market"
	"github.com/pixeldonor/goapi/domain/wallet"
	walletUsecase "github.com/pixeldonor/goapi/stores/wallet/usecase"
)

type fakeAskRepo struct {
	asks map[domain.AssetId]*market.Ask
}

func (r *fakeAskRepo) FindOne(_ bCtx.Ctx, assetId domain.AssetId) (*market.Ask, error) {
	a, ok := r.asks[assetId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAskRepo) Upsert(_ bCtx.Ctx, a *market.Ask) error {
	cp := *a
	r.asks[a.AssetId] = &cp
	return nil
}

func (r *fakeAskRepo) Remove(_ bCtx.Ctx, assetId domain.AssetId) error {
	if _, ok := r.asks[assetId]; !ok {
		return domain.ErrNotFound
	}
	delete(r.asks, assetId)
	return nil
}

type fakeBidRepo struct {
	bids map[domain.AssetId]*market.Bid
}

func (r *fakeBidRepo) FindOne(_ bCtx.Ctx, assetId domain.AssetId) (*market.Bid, error) {
	b, ok := r.bids[assetId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBidRepo) Upsert(_ bCtx.Ctx, b *market.Bid) error {
	cp := *b
	r.bids[b.AssetId] = &cp
	return nil
}

func (r *fakeBidRepo) Remove(_ bCtx.Ctx, assetId domain.AssetId) error {
	if _, ok := r.bids[assetId]; !ok {
		return domain.ErrNotFound
	}
	delete(r.bids, assetId)
	return nil
}

type fakeSettingsRepo struct {
	settings *market.Settings
}

func (r *fakeSettingsRepo) Get(_ bCtx.Ctx) (*market.Settings, error) {
	if r.settings == nil {
		return &market.Settings{
			Key:            market.SettingsKey,
			BidLockSeconds: int64(market.DefaultBidLock.Seconds()),
		}, nil
	}
	cp := *r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(_ bCtx.Ctx, patchable market.SettingsPatchable) error {
	if r.settings == nil {
		r.settings = &market.Settings{Key: market.SettingsKey}
	}
	if patchable.BidLockSeconds != nil {
		r.settings.BidLockSeconds = *patchable.BidLockSeconds
	}
	return nil
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

// stubLedger covers the slice of the asset ledger the order book touches
type stubLedger struct {
	asset.Usecase
	owners  map[domain.AssetId]domain.Address
	askRepo market.AskRepo
}

func (s *stubLedger) OwnerOf(_ bCtx.Ctx, assetId domain.AssetId) (domain.Address, error) {
	owner, ok := s.owners[assetId]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (s *stubLedger) Transfer(c bCtx.Ctx, caller, from, to domain.Address, assetId domain.AssetId, auxData string) error {
	owner, ok := s.owners[assetId]
	if !ok {
		return domain.ErrNotFound
	}
	if !owner.Equals(from) || !caller.Equals(from) {
		return domain.ErrNotOwner
	}
	s.owners[assetId] = to.ToLower()
	if err := s.askRepo.Remove(c, assetId); err != nil && err != domain.ErrNotFound {
		return err
	}
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

func (r *fakeActivityRepo) types() []account.ActivityType {
	res := []account.ActivityType{}
	for _, a := range r.activities {
		res = append(res, a.Type)
	}
	return res
}

type marketFixture struct {
	uc       market.UseCase
	walletUC wallet.Usecase
	ledger   *stubLedger
	asks     *fakeAskRepo
	bids     *fakeBidRepo
	settings *fakeSettingsRepo
	activity *fakeActivityRepo
}

func newMarketFixture() *marketFixture {
	asks := &fakeAskRepo{asks: map[domain.AssetId]*market.Ask{}}
	bids := &fakeBidRepo{bids: map[domain.AssetId]*market.Bid{}}
	settings := &fakeSettingsRepo{}
	activity := &fakeActivityRepo{}
	ledger := &stubLedger{owners: map[domain.AssetId]domain.Address{}, askRepo: asks}
	walletUC := walletUsecase.New(&walletUsecase.WalletUseCaseCfg{
		WalletRepo: &fakeWalletRepo{balances: map[domain.Address]*wallet.Balance{}},
		Admins:     domain.AdminCapability{Addresses: []domain.Address{"admin"}},
	})
	uc := New(&MarketUseCaseCfg{
		AskRepo:      asks,
		BidRepo:      bids,
		SettingsRepo: settings,
		AssetUC:      ledger,
		WalletUC:     walletUC,
		ActivityRepo: activity,
		Admins:       domain.AdminCapability{Addresses: []domain.Address{"admin"}},
	})
	return &marketFixture{
		uc:       uc,
		walletUC: walletUC,
		ledger:   ledger,
		asks:     asks,
		bids:     bids,
		settings: settings,
		activity: activity,
	}
}

func (f *marketFixture) fund(t *testing.T, addr domain.Address, amount int64) {
	require.NoError(t, f.walletUC.Deposit(bCtx.Background(), "admin", addr, big.NewInt(amount)))
}

func (f *marketFixture) balance(t *testing.T, addr domain.Address) int64 {
	b, err := f.walletUC.BalanceOf(bCtx.Background(), addr)
	require.NoError(t, err)
	return b.Int64()
}

func TestSetAskValidation(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"

	_, err := f.uc.SetAsk(ctx, "bob", 1, "100", "")
	req.ErrorIs(err, domain.ErrNotOwner)

	_, err = f.uc.SetAsk(ctx, "alice", 2, "100", "")
	req.ErrorIs(err, domain.ErrNotFound)

	_, err = f.uc.SetAsk(ctx, "alice", 1, "-5", "")
	req.ErrorIs(err, domain.ErrInvalidNumberFormat)

	_, err = f.uc.SetAsk(ctx, "alice", 1, "100", "")
	req.NoError(err)
	ask, err := f.uc.GetAsk(ctx, 1)
	req.NoError(err)
	req.Equal("100", ask.Price)

	// zero price delists
	_, err = f.uc.SetAsk(ctx, "alice", 1, "0", "")
	req.NoError(err)
	_, err = f.uc.GetAsk(ctx, 1)
	req.ErrorIs(err, domain.ErrNotFound)
}

func TestBidAtAskSettles(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)

	_, err := f.uc.SetAsk(ctx, "alice", 1, "70", "")
	req.NoError(err)

	trade, err := f.uc.SetBid(ctx, "bob", 1, "70", "")
	req.NoError(err)
	req.NotNil(trade)
	req.Equal(domain.Address("bob"), trade.Buyer)
	req.Equal(domain.Address("alice"), trade.Seller)
	req.Equal("70", trade.Price)
	req.True(trade.PayoutDelivered)

	req.Equal(domain.Address("bob"), f.ledger.owners[1])
	req.Equal(int64(30), f.balance(t, "bob"))
	req.Equal(int64(70), f.balance(t, "alice"))

	// the book is empty after the trade
	_, err = f.uc.GetAsk(ctx, 1)
	req.ErrorIs(err, domain.ErrNotFound)
	_, err = f.uc.GetBid(ctx, 1)
	req.ErrorIs(err, domain.ErrNotFound)
}

func TestAskDropSettlesAgainstLiveBid(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)

	trade, err := f.uc.SetBid(ctx, "bob", 1, "80", "")
	req.NoError(err)
	req.Nil(trade)
	req.Equal(int64(20), f.balance(t, "bob"))

	// lowering the ask under the bid crosses at the bid amount
	trade, err = f.uc.SetAsk(ctx, "alice", 1, "75", "")
	req.NoError(err)
	req.NotNil(trade)
	req.Equal("80", trade.Price)
	req.Equal(domain.Address("bob"), f.ledger.owners[1])
	req.Equal(int64(80), f.balance(t, "alice"))
}

func TestBidClampedToAsk(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)

	_, err := f.uc.SetAsk(ctx, "alice", 1, "50", "")
	req.NoError(err)

	trade, err := f.uc.SetBid(ctx, "bob", 1, "80", "")
	req.NoError(err)
	req.NotNil(trade)
	req.Equal("50", trade.Price)

	// only the accepted amount left the bidder's wallet
	req.Equal(int64(50), f.balance(t, "bob"))
	req.Equal(int64(50), f.balance(t, "alice"))
}

func TestBidDisplacement(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)
	f.fund(t, "carol", 100)

	_, err := f.uc.SetBid(ctx, "bob", 1, "50", "")
	req.NoError(err)

	_, err = f.uc.SetBid(ctx, "carol", 1, "50", "")
	req.ErrorIs(err, domain.ErrBidTooLow)

	_, err = f.uc.SetBid(ctx, "carol", 1, "60", "")
	req.NoError(err)

	// the displaced bid went back to its owner in full
	req.Equal(int64(100), f.balance(t, "bob"))
	req.Equal(int64(40), f.balance(t, "carol"))

	bid, err := f.uc.GetBid(ctx, 1)
	req.NoError(err)
	req.Equal(domain.Address("carol"), bid.Bidder)
	req.Equal("60", bid.Amount)
}

func TestSetBidValidation(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.ledger.owners[2] = ""

	_, err := f.uc.SetBid(ctx, "bob", 1, "0", "")
	req.ErrorIs(err, domain.ErrBidTooLow)

	_, err = f.uc.SetBid(ctx, "bob", 1, "50", "")
	req.ErrorIs(err, domain.ErrInsufficientFunds)

	_, err = f.uc.SetBid(ctx, "bob", 2, "50", "")
	req.ErrorIs(err, domain.ErrNoOwner)
}

func TestWithdrawBid(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)

	placed := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	defer func() { timeNow = time.Now }()
	timeNow = func() time.Time { return placed }

	_, err := f.uc.SetBid(ctx, "bob", 1, "60", "")
	req.NoError(err)

	req.ErrorIs(f.uc.WithdrawBid(ctx, "carol", 1), domain.ErrNotBidder)

	timeNow = func() time.Time { return placed.Add(23 * time.Hour) }
	req.ErrorIs(f.uc.WithdrawBid(ctx, "bob", 1), domain.ErrBidLocked)

	timeNow = func() time.Time { return placed.Add(25 * time.Hour) }
	req.NoError(f.uc.WithdrawBid(ctx, "bob", 1))
	req.Equal(int64(100), f.balance(t, "bob"))

	_, err = f.uc.GetBid(ctx, 1)
	req.ErrorIs(err, domain.ErrNotFound)

	req.ErrorIs(f.uc.WithdrawBid(ctx, "bob", 1), domain.ErrNotFound)
}

func TestSetBidLock(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)

	req.ErrorIs(f.uc.SetBidLock(ctx, "bob", time.Hour), domain.ErrNotAdmin)
	req.NoError(f.uc.SetBidLock(ctx, "admin", time.Hour))

	placed := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	defer func() { timeNow = time.Now }()
	timeNow = func() time.Time { return placed }

	_, err := f.uc.SetBid(ctx, "bob", 1, "60", "")
	req.NoError(err)

	timeNow = func() time.Time { return placed.Add(61 * time.Minute) }
	req.NoError(f.uc.WithdrawBid(ctx, "bob", 1))
}

func TestPayoutRejectedDoesNotUnwindTrade(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	f := newMarketFixture()
	f.ledger.owners[1] = "alice"
	f.fund(t, "bob", 100)
	req.NoError(f.walletUC.Freeze(ctx, "admin", "alice", true))

	_, err := f.uc.SetAsk(ctx, "alice", 1, "70", "")
	req.NoError(err)

	trade, err := f.uc.SetBid(ctx, "bob", 1, "70", "")
	req.NoError(err)
	req.NotNil(trade)
	req.False(trade.PayoutDelivered)

	// the asset moved, the payment waits in escrow
	req.Equal(domain.Address("bob"), f.ledger.owners[1])
	req.Equal(int64(0), f.balance(t, "alice"))
	escrow, err := f.walletUC.EscrowBalance(ctx)
	req.NoError(err)
	req.Equal(int64(70), escrow.Int64())

	req.Contains(f.activity.types(), account.ActivityTypePayoutFailed)
}
