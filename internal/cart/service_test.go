package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/shopify"
)

type mapResolver map[string]RemoteCart

func (m mapResolver) Remote(storeID string) (RemoteCart, error) {
	r, ok := m[storeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, storeID)
	}
	return r, nil
}

type fixedPricer struct {
	price     float64
	estimated bool
	err       error
}

func (p fixedPricer) QuoteItem(context.Context, domain.FrameConfiguration, *domain.SpecialtyConfig) (float64, bool, error) {
	return p.price, p.estimated, p.err
}

func newTestService(t *testing.T, remote RemoteCart, pricer Pricer) Service {
	t.Helper()
	svc, err := NewService(ServiceConfig{
		Resolver:    mapResolver{"acme": remote},
		Persistence: NewPersistence(NewMemoryStorage(), nil, DefaultTTL),
		Runner:      InlineRunner{},
		Pricer:      pricer,
	})
	require.NoError(t, err)
	return svc
}

func framedItem() domain.NewCartItem {
	in := newItem(testVariant, 1)
	in.Price = 1 // replaced by the quote
	in.Configuration = &domain.FrameConfiguration{
		ServiceType:   domain.ServiceFrameOnly,
		ArtworkWidth:  16,
		ArtworkHeight: 20,
		FrameStyleID:  "black-wood",
		MatType:       domain.MatNone,
		GlassTypeID:   "standard",
	}
	return in
}

func TestNewService_RequiresResolver(t *testing.T) {
	_, err := NewService(ServiceConfig{})
	assert.Error(t, err)
}

func TestService_AddItemRepricesConfiguration(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, fixedPricer{price: 187.25})

	item, err := svc.AddItem(context.Background(), "acme", "s1", framedItem())
	require.NoError(t, err)
	assert.InDelta(t, 187.25, item.Price, 0.001)
	assert.False(t, item.PriceEstimated)
}

func TestService_AddItemValidation(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, nil)

	in := newItem("", 1)
	_, err := svc.AddItem(context.Background(), "acme", "s1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_AddItemPricingError(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, fixedPricer{err: domain.ErrFrameStyleNotFound})

	_, err := svc.AddItem(context.Background(), "acme", "s1", framedItem())
	assert.ErrorIs(t, err, domain.ErrFrameStyleNotFound)
}

func TestService_UnknownStore(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, nil)

	_, err := svc.GetState(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
	require.NoError(t, err)

	s1, err := svc.GetState(ctx, "acme", "s1")
	require.NoError(t, err)
	s2, err := svc.GetState(ctx, "acme", "s2")
	require.NoError(t, err)
	assert.Len(t, s1.Items, 1)
	assert.Empty(t, s2.Items)
}

func TestService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		svc := newTestService(t, &fakeRemote{}, nil)
		_, err := svc.Checkout(ctx, "acme", "s1")
		assert.ErrorIs(t, err, domain.ErrCartEmpty)
	})

	t.Run("estimated price blocks checkout", func(t *testing.T) {
		svc := newTestService(t, &fakeRemote{}, fixedPricer{price: 140, estimated: true})
		_, err := svc.AddItem(ctx, "acme", "s1", framedItem())
		require.NoError(t, err)

		_, err = svc.Checkout(ctx, "acme", "s1")
		assert.ErrorIs(t, err, domain.ErrEstimatedPrice)
	})

	t.Run("returns checkout url", func(t *testing.T) {
		svc := newTestService(t, &fakeRemote{}, nil)
		_, err := svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
		require.NoError(t, err)

		url, err := svc.Checkout(ctx, "acme", "s1")
		require.NoError(t, err)
		assert.Equal(t, testCheckoutURL, url)
	})

	t.Run("retries item whose update was rolled back", func(t *testing.T) {
		remote := &fakeRemote{}
		svc := newTestService(t, remote, nil)
		item, err := svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
		require.NoError(t, err)
		remote.setFailUpdate(errRemote)
		require.NoError(t, svc.UpdateQuantity(ctx, "acme", "s1", item.ID, 2))
		remote.setFailUpdate(nil)

		url, err := svc.Checkout(ctx, "acme", "s1")
		require.NoError(t, err)
		assert.Equal(t, testCheckoutURL, url)
	})

	t.Run("unsynced cart", func(t *testing.T) {
		remote := &fakeRemote{failCreate: errRemote}
		svc := newTestService(t, remote, nil)
		_, err := svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
		require.NoError(t, err)

		_, err = svc.Checkout(ctx, "acme", "s1")
		assert.ErrorIs(t, err, errRemote)
	})
}

func TestService_UpdateRemoveClear(t *testing.T) {
	svc := newTestService(t, &fakeRemote{}, nil)
	ctx := context.Background()

	a, err := svc.AddItem(ctx, "acme", "", newItem(testVariant, 1))
	require.NoError(t, err)
	b, err := svc.AddItem(ctx, "acme", "", newItem(testVariant2, 1))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(ctx, "acme", "", a.ID, 3))
	require.NoError(t, svc.RemoveItem(ctx, "acme", "", b.ID))
	state, err := svc.GetState(ctx, "acme", "")
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)

	require.NoError(t, svc.Clear(ctx, "acme", ""))
	state, err = svc.GetState(ctx, "acme", "")
	require.NoError(t, err)
	assert.Empty(t, state.Items)
}

func TestService_SyncAll(t *testing.T) {
	remote := &fakeRemote{failCreate: errRemote}
	svc := newTestService(t, remote, nil)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
	require.NoError(t, err)

	synced, err := svc.SyncAll(ctx)
	assert.Error(t, err)
	assert.Zero(t, synced)

	remote.setFailCreate(nil)
	synced, err = svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	state, err := svc.Sync(ctx, "acme", "s1")
	require.NoError(t, err)
	assert.Equal(t, testCartID, state.Metadata.CartID)
}

func TestService_EvictedCartReloads(t *testing.T) {
	svc, err := NewService(ServiceConfig{
		Resolver:    mapResolver{"acme": &fakeRemote{}},
		Persistence: NewPersistence(NewMemoryStorage(), nil, DefaultTTL),
		Runner:      InlineRunner{},
		MaxCarts:    1,
	})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 2))
	require.NoError(t, err)
	// loading a second cart evicts the first
	_, err = svc.GetState(ctx, "acme", "s2")
	require.NoError(t, err)

	state, err := svc.GetState(ctx, "acme", "s1")
	require.NoError(t, err)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 2, state.Items[0].Quantity)
}

func TestRegistryResolver(t *testing.T) {
	reg := shopify.NewRegistry()
	require.NoError(t, reg.Register(shopify.StoreConfig{
		StoreID:     "acme",
		Domain:      "acme.myshopify.com",
		AccessToken: "token",
	}))
	r := RegistryResolver{Registry: reg}

	remote, err := r.Remote("acme")
	require.NoError(t, err)
	assert.NotNil(t, remote)

	_, err = r.Remote("missing")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestService_EvictedCartWithQueuedSyncIsReused(t *testing.T) {
	remote := &fakeRemote{}
	runner := &deferredRunner{}
	svc, err := NewService(ServiceConfig{
		Resolver:    mapResolver{"acme": remote},
		Persistence: NewPersistence(NewMemoryStorage(), nil, DefaultTTL),
		Runner:      runner,
		MaxCarts:    1,
	})
	require.NoError(t, err)
	impl := svc.(*service)
	ctx := context.Background()

	_, err = svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
	require.NoError(t, err)
	busy, err := impl.store(ctx, "acme", "s1")
	require.NoError(t, err)

	_, err = svc.GetState(ctx, "acme", "s2")
	require.NoError(t, err)
	again, err := impl.store(ctx, "acme", "s1")
	require.NoError(t, err)
	assert.Same(t, busy, again, "a cart with queued work is not reloaded")

	runner.Run()
	_, err = svc.SyncAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"create"}, remote.Calls())
	assert.Len(t, remote.Lines(), 1)
	assert.True(t, again.IsSynced())
}

func TestService_EvictedIdleCartIsDetached(t *testing.T) {
	remote := &fakeRemote{}
	svc, err := NewService(ServiceConfig{
		Resolver:    mapResolver{"acme": remote},
		Persistence: NewPersistence(NewMemoryStorage(), nil, DefaultTTL),
		Runner:      InlineRunner{},
		MaxCarts:    1,
	})
	require.NoError(t, err)
	impl := svc.(*service)
	ctx := context.Background()

	_, err = svc.AddItem(ctx, "acme", "s1", newItem(testVariant, 1))
	require.NoError(t, err)
	old, err := impl.store(ctx, "acme", "s1")
	require.NoError(t, err)

	_, err = svc.GetState(ctx, "acme", "s2")
	require.NoError(t, err)

	assert.False(t, old.SaveToStorage(ctx), "a detached cart no longer writes its snapshot")
	require.NoError(t, old.SyncWithAPI(ctx))

	fresh, err := impl.store(ctx, "acme", "s1")
	require.NoError(t, err)
	assert.NotSame(t, old, fresh)
	assert.Equal(t, 1, fresh.ItemCount())
	assert.True(t, fresh.IsSynced())
	assert.Equal(t, []string{"create"}, remote.Calls())
}
