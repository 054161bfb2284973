package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/validation"
)

// unavailableStorage fails its availability probe.
type unavailableStorage struct{ *MemoryStorage }

func (*unavailableStorage) Available(context.Context) bool { return false }

func sampleItems() []domain.CartItem {
	return []domain.CartItem{{
		ID:         "item_1",
		VariantID:  testVariant,
		Title:      "Custom Frame",
		Price:      42,
		Currency:   "USD",
		Quantity:   2,
		SyncStatus: domain.SyncSynced,
		LineItemID: "gid://shopify/CartLine/1",
		Version:    3,
	}}
}

func sampleMeta() domain.CartMetadata {
	return domain.CartMetadata{
		CartID:       testCartID,
		StoreID:      "test-store",
		PendingSyncs: []domain.PendingSync{{Type: domain.SyncUpdate, ItemID: "item_1"}},
	}
}

func TestPersistence_SaveLoad(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(NewMemoryStorage(), nil, time.Hour)

	require.True(t, p.Save(ctx, "k", sampleItems(), sampleMeta()))
	snap := p.Load(ctx, "k")
	require.NotNil(t, snap)
	assert.Equal(t, StorageVersion, snap.Version)
	assert.Equal(t, sampleItems(), snap.Items)
	assert.Equal(t, testCartID, snap.Metadata.CartID)
	assert.Len(t, snap.Metadata.PendingSyncs, 1)
}

func TestPersistence_NilItemsSavedAsEmptyList(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	p := NewPersistence(storage, nil, time.Hour)

	require.True(t, p.Save(ctx, "k", nil, sampleMeta()))
	raw, err := storage.Load(ctx, "k")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, []any{}, doc["items"])
}

func TestPersistence_ExpiredSnapshotIsDeleted(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	p := NewPersistence(storage, nil, time.Hour)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	require.True(t, p.Save(ctx, "k", sampleItems(), sampleMeta()))

	now = now.Add(2 * time.Hour)
	assert.Nil(t, p.Load(ctx, "k"))
	keys, err := storage.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys, "expired snapshot removed")
}

func TestPersistence_MissingKey(t *testing.T) {
	p := NewPersistence(NewMemoryStorage(), nil, time.Hour)
	assert.Nil(t, p.Load(context.Background(), "missing"))
}

func TestPersistence_CorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save(ctx, "k", []byte("{not json"), 0))

	p := NewPersistence(storage, nil, time.Hour)
	assert.Nil(t, p.Load(ctx, "k"))
}

func TestPersistence_SchemaRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	bad := `{"version":1,"expiresAt":"2999-01-01T00:00:00Z","items":[{"id":"x","variantId":"v","quantity":0,"syncStatus":"synced"}],"metadata":{"storeId":"s","pendingSyncs":[]}}`
	require.NoError(t, storage.Save(ctx, "k", []byte(bad), 0))

	p := NewPersistence(storage, validation.NewSchemaValidator(), time.Hour)
	assert.Nil(t, p.Load(ctx, "k"))

	good := NewPersistence(storage, validation.NewSchemaValidator(), time.Hour)
	require.True(t, good.Save(ctx, "ok", sampleItems(), sampleMeta()))
	assert.NotNil(t, good.Load(ctx, "ok"))
}

func TestPersistence_UnavailableStorage(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(&unavailableStorage{NewMemoryStorage()}, nil, time.Hour)

	assert.False(t, p.Save(ctx, "k", sampleItems(), sampleMeta()))
	assert.Nil(t, p.Load(ctx, "k"))
	assert.False(t, p.Clear(ctx, "k"))
	assert.Nil(t, p.Keys(ctx, StorageKeyPrefix))
}

func TestPersistence_NoStorage(t *testing.T) {
	p := NewPersistence(nil, nil, 0)
	assert.Equal(t, DefaultTTL, p.ttl)
	assert.False(t, p.Save(context.Background(), "k", sampleItems(), sampleMeta()))
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "framecraft:cart:acme", StorageKey("acme", ""))
	assert.Equal(t, "framecraft:cart:acme:sess", StorageKey("acme", "sess"))
}

func TestMemoryStorage_TTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Save(ctx, "b", []byte("2"), 0))

	now = now.Add(2 * time.Minute)
	_, err := m.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := m.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	fs := NewFileStorage(t.TempDir())
	require.True(t, fs.Available(ctx))

	keyA := StorageKey("acme", "s1")
	keyB := StorageKey("acme", "s2")
	require.NoError(t, fs.Save(ctx, keyA, []byte(`{"a":1}`), time.Hour))
	require.NoError(t, fs.Save(ctx, keyB, []byte(`{"b":2}`), time.Hour))
	require.NoError(t, fs.Save(ctx, StorageKey("other", ""), []byte(`{}`), time.Hour))

	got, err := fs.Load(ctx, keyA)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	keys, err := fs.Keys(ctx, StorageKey("acme", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{keyA, keyB}, keys)

	require.NoError(t, fs.Delete(ctx, keyA))
	require.NoError(t, fs.Delete(ctx, keyA), "deleting twice is fine")
	_, err = fs.Load(ctx, keyA)
	assert.ErrorIs(t, err, ErrNotFound)
}
