package cart

import "time"

// Snapshot format.
const (
	StorageVersion   = 1
	DefaultTTL       = 30 * 24 * time.Hour
	StorageKeyPrefix = "framecraft:cart"
)

// DefaultStoreID is used when a cart is created without a tenant.
const DefaultStoreID = "default"

// Log messages
const (
	LogMsgStorageUnavailable = "Cart persistence: storage not available, continuing in memory"
	LogMsgSaveFailed         = "Cart persistence: failed to save cart"
	LogMsgLoadFailed         = "Cart persistence: failed to load cart"
	LogMsgClearFailed        = "Cart persistence: failed to clear cart"
	LogMsgSnapshotExpired    = "Cart persistence: cart expired, clearing"
	LogMsgSnapshotInvalid    = "Cart persistence: snapshot rejected"
	LogMsgUnknownVersion     = "Cart persistence: unknown storage version, using as-is"
	LogMsgCartLoaded         = "Cart persistence: loaded items from storage"

	LogMsgItemAdded        = "Cart item added"
	LogMsgItemRemoved      = "Cart item removed"
	LogMsgItemUpdated      = "Cart item quantity updated"
	LogMsgCartCleared      = "Cart cleared"
	LogMsgItemMissing      = "Cart item not found for sync"
	LogMsgSyncFailed       = "Cart sync failed"
	LogMsgSyncCompleted    = "Cart sync completed"
	LogMsgStaleSyncResult  = "Discarding stale sync result"
	LogMsgRemoveRolledBack = "Remove failed, item restored"
	LogMsgUpdateRolledBack = "Quantity update failed, previous quantity restored"
	LogMsgRemoteClearFail  = "Remote cart cleanup failed"
	LogMsgOrphanLine       = "Remote line has no local item, removing it"
	LogMsgCreateAbandoned  = "Cart emptied while the remote cart was created, removing its lines"
	LogMsgCheckout         = "Cart checked out"
)

// Error message prefixes surfaced in the store error.
const (
	ErrMsgRemoveFailed = "Failed to remove item: "
	ErrMsgUpdateFailed = "Failed to update quantity: "
)
