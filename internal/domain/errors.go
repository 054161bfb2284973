package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgValidation       = "invalid configuration"
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgInvalidSpecialty = "invalid specialty configuration"

	// Catalog errors
	ErrMsgFrameStyleNotFound = "frame style not found"
	ErrMsgMatColorNotFound   = "mat color not found"
	ErrMsgGlassTypeNotFound  = "glass type not found"
	ErrMsgMatNotFound        = "mat not found"
	ErrMsgLayoutNotFound     = "layout not found"

	// Pricing errors
	ErrMsgTooLarge       = "artwork exceeds maximum framing size"
	ErrMsgEstimatedPrice = "price is an estimate and cannot be used for checkout"

	// Cart errors
	ErrMsgItemNotFound   = "cart item not found"
	ErrMsgCartNotFound   = "cart not found"
	ErrMsgCartEmpty      = "cart is empty"
	ErrMsgStaleSync      = "sync result is stale"
	ErrMsgStoreNotFound  = "store not configured"
	ErrMsgSyncInProgress = "sync already in progress"
	ErrMsgCartNotSynced  = "cart could not be synced for checkout"

	// Storage errors
	ErrMsgStorageUnavailable = "storage unavailable"
	ErrMsgSnapshotExpired    = "snapshot expired"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrValidation       = errors.New(ErrMsgValidation)
	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrInvalidSpecialty = errors.New(ErrMsgInvalidSpecialty)

	ErrFrameStyleNotFound = errors.New(ErrMsgFrameStyleNotFound)
	ErrMatColorNotFound   = errors.New(ErrMsgMatColorNotFound)
	ErrGlassTypeNotFound  = errors.New(ErrMsgGlassTypeNotFound)
	ErrMatNotFound        = errors.New(ErrMsgMatNotFound)
	ErrLayoutNotFound     = errors.New(ErrMsgLayoutNotFound)

	ErrTooLarge       = errors.New(ErrMsgTooLarge)
	ErrEstimatedPrice = errors.New(ErrMsgEstimatedPrice)

	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrCartNotFound   = errors.New(ErrMsgCartNotFound)
	ErrCartEmpty      = errors.New(ErrMsgCartEmpty)
	ErrStaleSync      = errors.New(ErrMsgStaleSync)
	ErrStoreNotFound  = errors.New(ErrMsgStoreNotFound)
	ErrSyncInProgress = errors.New(ErrMsgSyncInProgress)
	ErrCartNotSynced  = errors.New(ErrMsgCartNotSynced)

	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)
	ErrSnapshotExpired    = errors.New(ErrMsgSnapshotExpired)
)
