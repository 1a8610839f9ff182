package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
	mAccount "github.com/pixeldonor/goapi/domain/account/mocks"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/market"
	mMarket "github.com/pixeldonor/goapi/domain/market/mocks"
	mProperty "github.com/pixeldonor/goapi/domain/property/mocks"
	"github.com/pixeldonor/goapi/stores/asset/usecase"
)

type fakeAssetRepo struct {
	assets map[domain.AssetId]*asset.Asset
	nextId domain.AssetId
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: map[domain.AssetId]*asset.Asset{}}
}

func (r *fakeAssetRepo) FindOne(_ bCtx.Ctx, assetId domain.AssetId) (*asset.Asset, error) {
	a, ok := r.assets[assetId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssetRepo) FindAll(_ bCtx.Ctx, optFns ...asset.FindAllOptionsFunc) ([]*asset.Asset, error) {
	opts, err := asset.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}
	res := []*asset.Asset{}
	for _, a := range r.assets {
		if opts.Owner != nil && !a.Owner.Equals(*opts.Owner) {
			continue
		}
		if opts.ClassId != nil && a.ClassId != *opts.ClassId {
			continue
		}
		cp := *a
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeAssetRepo) Count(c bCtx.Ctx, optFns ...asset.FindAllOptionsFunc) (int, error) {
	res, err := r.FindAll(c, optFns...)
	if err != nil {
		return 0, err
	}
	return len(res), nil
}

func (r *fakeAssetRepo) Insert(_ bCtx.Ctx, a *asset.Asset) error {
	cp := *a
	r.assets[a.AssetId] = &cp
	return nil
}

func (r *fakeAssetRepo) Update(_ bCtx.Ctx, assetId domain.AssetId, patchable asset.Patchable) error {
	a, ok := r.assets[assetId]
	if !ok {
		return domain.ErrNotFound
	}
	if patchable.Owner != nil {
		a.Owner = patchable.Owner.ToLower()
	}
	return nil
}

func (r *fakeAssetRepo) NextId(_ bCtx.Ctx) (domain.AssetId, error) {
	r.nextId++
	return r.nextId, nil
}

type assetMocks struct {
	repo       *fakeAssetRepo
	propertyUC *mProperty.Usecase
	askRepo    *mMarket.AskRepo
	bidRepo    *mMarket.BidRepo
	activity   *mAccount.ActivityRepo
}

func newAssetUC() (asset.Usecase, *assetMocks) {
	m := &assetMocks{
		repo:       newFakeAssetRepo(),
		propertyUC: &mProperty.Usecase{},
		askRepo:    &mMarket.AskRepo{},
		bidRepo:    &mMarket.BidRepo{},
		activity:   &mAccount.ActivityRepo{},
	}
	m.activity.On("Insert", mock.Anything, mock.Anything).Return(nil)
	u := usecase.New(&usecase.AssetUseCaseCfg{
		AssetRepo:    m.repo,
		PropertyUC:   m.propertyUC,
		AskRepo:      m.askRepo,
		BidRepo:      m.bidRepo,
		ActivityRepo: m.activity,
		Minters:      domain.MinterCapability{Addresses: []domain.Address{"minter"}},
	})
	return u, m
}

func TestMint(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, m := newAssetUC()

	m.propertyUC.On("InitForMint", mock.Anything, domain.AssetId(1), domain.ClassId(7)).Return(nil)

	_, err := u.Mint(ctx, "stranger", "alice", 7)
	req.ErrorIs(err, domain.ErrNotMinter)

	_, err = u.Mint(ctx, "minter", "", 7)
	req.ErrorIs(err, domain.ErrInvalidAddress)

	assetId, err := u.Mint(ctx, "minter", "alice", 7)
	req.NoError(err)
	req.Equal(domain.AssetId(1), assetId)

	owner, err := u.OwnerOf(ctx, assetId)
	req.NoError(err)
	req.Equal(domain.Address("alice"), owner)

	cnt, err := u.BalanceOf(ctx, "alice")
	req.NoError(err)
	req.Equal(1, cnt)

	m.propertyUC.AssertExpectations(t)
}

func TestTransfer(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, m := newAssetUC()

	m.propertyUC.On("InitForMint", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.askRepo.On("Remove", mock.Anything, domain.AssetId(1)).Return(nil)

	assetId, err := u.Mint(ctx, "minter", "alice", 7)
	req.NoError(err)

	req.ErrorIs(u.Transfer(ctx, "bob", "bob", "carol", assetId, ""), domain.ErrNotOwner)
	req.ErrorIs(u.Transfer(ctx, "alice", "alice", "", assetId, ""), domain.ErrInvalidAddress)

	req.NoError(u.Transfer(ctx, "alice", "alice", "bob", assetId, ""))

	owner, err := u.OwnerOf(ctx, assetId)
	req.NoError(err)
	req.Equal(domain.Address("bob"), owner)

	// the listing does not follow the asset to its new owner
	m.askRepo.AssertCalled(t, "Remove", mock.Anything, assetId)
}

func TestBurn(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, m := newAssetUC()

	m.propertyUC.On("InitForMint", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	assetId, err := u.Mint(ctx, "minter", "alice", 7)
	req.NoError(err)

	m.askRepo.On("FindOne", mock.Anything, assetId).Return(&market.Ask{AssetId: assetId, Price: "10"}, nil).Once()
	req.ErrorIs(u.Burn(ctx, "alice", assetId), domain.ErrAssetEncumbered)

	m.askRepo.On("FindOne", mock.Anything, assetId).Return(nil, domain.ErrNotFound)
	m.bidRepo.On("FindOne", mock.Anything, assetId).Return(&market.Bid{AssetId: assetId, Bidder: "bob"}, nil).Once()
	req.ErrorIs(u.Burn(ctx, "alice", assetId), domain.ErrAssetEncumbered)

	m.bidRepo.On("FindOne", mock.Anything, assetId).Return(nil, domain.ErrNotFound)
	req.ErrorIs(u.Burn(ctx, "bob", assetId), domain.ErrNotOwner)
	req.NoError(u.Burn(ctx, "alice", assetId))

	owner, err := u.OwnerOf(ctx, assetId)
	req.NoError(err)
	req.True(owner.IsEmpty())

	// a burned asset has no owner to act for it
	req.ErrorIs(u.Burn(ctx, "alice", assetId), domain.ErrNoOwner)
}
