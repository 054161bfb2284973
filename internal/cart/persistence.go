package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/validation"
)

// Snapshot is the persisted form of a cart.
type Snapshot struct {
	Version   int                 `json:"version"`
	Items     []domain.CartItem   `json:"items"`
	Metadata  domain.CartMetadata `json:"metadata"`
	ExpiresAt time.Time           `json:"expiresAt"`
}

// Persistence reads and writes snapshots. Every failure is logged and
// reported as false or nil; callers keep working in memory.
type Persistence struct {
	storage   Storage
	validator validation.SchemaValidator
	ttl       time.Duration
	now       func() time.Time
}

// NewPersistence wraps storage. storage may be nil for memory-only carts and
// v may be nil to skip schema checks on load.
func NewPersistence(storage Storage, v validation.SchemaValidator, ttl time.Duration) *Persistence {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Persistence{storage: storage, validator: v, ttl: ttl, now: time.Now}
}

func (p *Persistence) available(ctx context.Context) bool {
	return p != nil && p.storage != nil && p.storage.Available(ctx)
}

// Save writes items and meta under key with a fresh expiry.
func (p *Persistence) Save(ctx context.Context, key string, items []domain.CartItem, meta domain.CartMetadata) bool {
	log := logger.FromContext(ctx)
	if p == nil || p.storage == nil {
		return false
	}
	if !p.storage.Available(ctx) {
		log.Warn(LogMsgStorageUnavailable, "key", key)
		return false
	}

	if items == nil {
		items = []domain.CartItem{}
	}
	snap := Snapshot{
		Version:   StorageVersion,
		Items:     items,
		Metadata:  meta,
		ExpiresAt: p.now().Add(p.ttl).UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Error(LogMsgSaveFailed, "key", key, "error", err)
		return false
	}
	if err := p.storage.Save(ctx, key, data, p.ttl); err != nil {
		log.Error(LogMsgSaveFailed, "key", key, "error", err)
		return false
	}
	return true
}

// Load returns the snapshot under key, or nil when it is absent, expired or
// unreadable. Expired snapshots are deleted.
func (p *Persistence) Load(ctx context.Context, key string) *Snapshot {
	log := logger.FromContext(ctx)
	if !p.available(ctx) {
		return nil
	}

	data, err := p.storage.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error(LogMsgLoadFailed, "key", key, "error", err)
		}
		return nil
	}

	if p.validator != nil {
		if err := p.validator.ValidateBytes(data, validation.SchemaCartSnapshot); err != nil {
			log.Warn(LogMsgSnapshotInvalid, "key", key, "error", err)
			return nil
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Error(LogMsgLoadFailed, "key", key, "error", err)
		return nil
	}

	if !p.now().Before(snap.ExpiresAt) {
		log.Info(LogMsgSnapshotExpired, "key", key, "expired_at", snap.ExpiresAt)
		p.Clear(ctx, key)
		return nil
	}

	return migrate(ctx, &snap)
}

// Clear removes the snapshot under key.
func (p *Persistence) Clear(ctx context.Context, key string) bool {
	if !p.available(ctx) {
		return false
	}
	if err := p.storage.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Error(LogMsgClearFailed, "key", key, "error", err)
		return false
	}
	return true
}

// Keys lists every cart key under prefix.
func (p *Persistence) Keys(ctx context.Context, prefix string) []string {
	if !p.available(ctx) {
		return nil
	}
	keys, err := p.storage.Keys(ctx, prefix)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgLoadFailed, "prefix", prefix, "error", err)
		return nil
	}
	return keys
}

// migrate upgrades older snapshots. Only version 1 exists.
func migrate(ctx context.Context, s *Snapshot) *Snapshot {
	if s.Version != StorageVersion {
		logger.FromContext(ctx).Warn(LogMsgUnknownVersion, "version", s.Version)
	}
	return s
}
