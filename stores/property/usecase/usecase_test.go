package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	bCtx "github.com/pixeldonor/goapi/base/ctx"
	"github.com/pixeldonor/goapi/domain"
	"github.com/pixeldonor/goapi/domain/asset"
	"github.com/pixeldonor/goapi/domain/property"
	"github.com/pixeldonor/goapi/stores/property/usecase"
)

type fakePropertyRepo struct {
	props map[domain.AssetId]*property.Properties
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{props: map[domain.AssetId]*property.Properties{}}
}

func (r *fakePropertyRepo) FindOne(_ bCtx.Ctx, assetId domain.AssetId) (*property.Properties, error) {
	p, ok := r.props[assetId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	cp.Slots = append([]string{}, p.Slots...)
	return &cp, nil
}

func (r *fakePropertyRepo) Init(_ bCtx.Ctx, assetId domain.AssetId, slots []string) error {
	r.props[assetId] = &property.Properties{AssetId: assetId, Slots: slots}
	return nil
}

func (r *fakePropertyRepo) Append(_ bCtx.Ctx, assetId domain.AssetId, text string) error {
	p, ok := r.props[assetId]
	if !ok {
		return domain.ErrNotFound
	}
	p.Slots = append(p.Slots, text)
	return nil
}

func (r *fakePropertyRepo) SetUserContent(_ bCtx.Ctx, assetId domain.AssetId, text string) error {
	p, ok := r.props[assetId]
	if !ok {
		return domain.ErrNotFound
	}
	p.Slots[property.UserSlot] = text
	return nil
}

type fakeTemplateRepo struct {
	templates map[domain.ClassId]*property.ClassTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[domain.ClassId]*property.ClassTemplate{}}
}

func (r *fakeTemplateRepo) FindOne(_ bCtx.Ctx, classId domain.ClassId) (*property.ClassTemplate, error) {
	t, ok := r.templates[classId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTemplateRepo) Upsert(_ bCtx.Ctx, tmpl *property.ClassTemplate) error {
	cp := *tmpl
	r.templates[tmpl.ClassId] = &cp
	return nil
}

type stubAssetRepo struct {
	asset.Repo
	owners map[domain.AssetId]domain.Address
}

func (r *stubAssetRepo) FindOne(_ bCtx.Ctx, assetId domain.AssetId) (*asset.Asset, error) {
	owner, ok := r.owners[assetId]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &asset.Asset{AssetId: assetId, Owner: owner}, nil
}

func newPropertyUC() (property.Usecase, *stubAssetRepo) {
	assets := &stubAssetRepo{owners: map[domain.AssetId]domain.Address{}}
	u := usecase.New(&usecase.PropertyUseCaseCfg{
		PropertyRepo: newFakePropertyRepo(),
		TemplateRepo: newFakeTemplateRepo(),
		AssetRepo:    assets,
		Minters:      domain.MinterCapability{Addresses: []domain.Address{"minter"}},
		Admins:       domain.AdminCapability{Addresses: []domain.Address{"admin"}},
	})
	return u, assets
}

func TestInitForMintCopiesTemplate(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, assets := newPropertyUC()
	assets.owners[1] = "alice"

	req.ErrorIs(u.SetClassTemplate(ctx, "alice", 7, []string{"series one"}), domain.ErrNotAdmin)
	req.NoError(u.SetClassTemplate(ctx, "admin", 7, []string{"series one", "limited"}))

	req.NoError(u.InitForMint(ctx, 1, 7))

	slots, err := u.GetAll(ctx, 1)
	req.NoError(err)
	req.Equal([]string{"", "series one", "limited"}, slots)
}

func TestInitForMintWithoutTemplate(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, assets := newPropertyUC()
	assets.owners[1] = "alice"

	req.NoError(u.InitForMint(ctx, 1, 9))

	slots, err := u.GetAll(ctx, 1)
	req.NoError(err)
	req.Equal([]string{""}, slots)
}

func TestAppend(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, assets := newPropertyUC()
	assets.owners[1] = "alice"
	req.NoError(u.InitForMint(ctx, 1, 7))

	req.ErrorIs(u.Append(ctx, "alice", 1, "not allowed"), domain.ErrNotMinter)
	req.NoError(u.Append(ctx, "minter", 1, "Donated: 100 at 2026-01-02T15:04:05Z"))

	got, err := u.Get(ctx, 1, 1)
	req.NoError(err)
	req.Equal("Donated: 100 at 2026-01-02T15:04:05Z", got)

	_, err = u.Get(ctx, 1, 2)
	req.ErrorIs(err, domain.ErrNotFound)
}

func TestSetUserContent(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	u, assets := newPropertyUC()
	assets.owners[1] = "alice"
	req.NoError(u.InitForMint(ctx, 1, 7))
	req.NoError(u.Append(ctx, "minter", 1, "immutable"))

	req.ErrorIs(u.SetUserContent(ctx, "bob", 1, "graffiti"), domain.ErrNotOwner)
	req.NoError(u.SetUserContent(ctx, "alice", 1, "my note"))

	slots, err := u.GetAll(ctx, 1)
	req.NoError(err)
	req.Equal([]string{"my note", "immutable"}, slots)
}
