package cart

import (
	"context"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/event"
	"github.com/osse101/FrameCraft_Go/internal/logger"
	"github.com/osse101/FrameCraft_Go/internal/metrics"
	"github.com/osse101/FrameCraft_Go/internal/serialization"
)

// An item moves to SyncSyncing when a remote operation for it is started.
// Whoever makes that transition owns the operation; everybody else skips the
// item until the result is applied. This keeps a line from being added twice
// when a per-item sync and a reconciliation pass race.

// SyncItem pushes one item's add or quantity change to the remote cart. A
// missing item is not an error. On failure the item is marked error, the
// store error is set and the error is returned.
func (s *Store) SyncItem(ctx context.Context, itemID string) error {
	unlock := s.locks.Lock(s.key + "/" + itemID)
	defer unlock()
	log := logger.FromContext(ctx)

	s.mu.Lock()
	cartID := s.meta.CartID
	s.mu.Unlock()

	// the first item creates the remote cart together with everything else
	if cartID == "" {
		if err := s.SyncWithAPI(ctx); err != nil {
			s.markItemsError(ctx, err, itemID)
			return err
		}
	}

	s.mu.Lock()
	idx := s.indexLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		log.Warn(LogMsgItemMissing, "item_id", itemID)
		return nil
	}
	cur := &s.items[idx]
	cartID = s.meta.CartID
	if cur.SyncStatus == domain.SyncSynced || cur.SyncStatus == domain.SyncSyncing || cartID == "" || s.detached {
		s.mu.Unlock()
		return nil
	}
	cur.SyncStatus = domain.SyncSyncing
	snap := cur.Clone()
	known := s.knownLinesLocked()
	s.mu.Unlock()

	attrs, err := attributesFor(snap)
	if err != nil {
		s.markItemsError(ctx, err, itemID)
		return err
	}

	var (
		remote *domain.RemoteCart
		op     domain.SyncOperation
	)
	if snap.Confirmed() {
		op = domain.SyncUpdate
		remote, err = s.remote.UpdateLines(ctx, cartID, []domain.CartLineUpdate{{
			ID:         snap.LineItemID,
			Quantity:   snap.Quantity,
			Attributes: attrs,
		}})
	} else {
		op = domain.SyncAdd
		remote, err = s.remote.AddLines(ctx, cartID, []domain.CartLineInput{{
			MerchandiseID: snap.VariantID,
			Quantity:      snap.Quantity,
			Attributes:    attrs,
		}})
	}
	if err != nil {
		s.markItemsError(ctx, err, itemID)
		return err
	}

	s.mu.Lock()
	if s.meta.CartID != cartID {
		// cleared while the request was in flight
		s.mu.Unlock()
		log.Debug(LogMsgStaleSyncResult, "item_id", itemID, "cart_id", cartID)
		return nil
	}
	lineID := snap.LineItemID
	if op == domain.SyncAdd {
		lineID = pickLine(remote, snap.VariantID, attrs, known)
	}
	orphan := s.applyResultLocked(ctx, snap, lineID, op)
	s.applyRemoteLocked(remote)
	s.saveLocked(ctx)
	s.mu.Unlock()

	s.removeOrphans(ctx, cartID, orphan)
	return nil
}

// syncRemoval removes the line of an already deleted item. It is a no-op when
// a reconciliation pass has claimed the removal or the cart was cleared.
func (s *Store) syncRemoval(ctx context.Context, removed domain.CartItem) error {
	unlock := s.locks.Lock(s.key + "/" + removed.ID)
	defer unlock()

	s.mu.Lock()
	cartID := s.meta.CartID
	if cartID == "" || !s.claimRemovalLocked(removed.ID) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	remote, err := s.remote.RemoveLines(ctx, cartID, []string{removed.LineItemID})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.meta.CartID == cartID {
		s.applyRemoteLocked(remote)
		s.saveLocked(ctx)
	}
	s.mu.Unlock()
	return nil
}

// SyncWithAPI reconciles every queued mutation with the remote cart. Without
// a remote cart it creates one holding all local items. Otherwise queued
// adds, updates and removes are each sent as one batched call. On failure the
// queue is kept for the next pass, the store error is set and the error is
// returned.
func (s *Store) SyncWithAPI(ctx context.Context) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	log := logger.FromContext(ctx)
	start := time.Now()

	s.mu.Lock()
	if s.detached {
		s.mu.Unlock()
		return nil
	}
	s.requeueErroredLocked()
	cartID := s.meta.CartID
	pending := append([]domain.PendingSync(nil), s.meta.PendingSyncs...)
	hasItems := len(s.items) > 0
	if (cartID == "" && !hasItems) || (cartID != "" && len(pending) == 0) {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	var (
		ops int
		err error
	)
	if cartID == "" {
		ops, err = s.createRemote(ctx, pending)
	} else {
		ops, err = s.reconcile(ctx, cartID, pending)
	}

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
	} else {
		s.err = ""
		cartID = s.meta.CartID
	}
	lines := len(s.items)
	storeID := s.meta.StoreID
	s.saveLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		log.Warn(LogMsgSyncFailed, "cart_id", cartID, "operations", ops, "error", err)
		s.publish(ctx, event.NewCartSyncFailedEvent(storeID, cartID, ops, err))
		return err
	}
	if ops > 0 {
		took := time.Since(start)
		log.Info(LogMsgSyncCompleted, "cart_id", cartID, "operations", ops, "lines", lines, "duration_ms", took.Milliseconds())
		s.publish(ctx, event.NewCartSyncedEvent(storeID, cartID, ops, lines, took))
	}
	return nil
}

// createRemote creates the remote cart from all unclaimed local items. Lines
// come back in input order and are bound positionally. Only queue entries
// present when the pass started are dropped.
func (s *Store) createRemote(ctx context.Context, pending []domain.PendingSync) (int, error) {
	s.mu.Lock()
	claimed := s.claimLocked(func(it domain.CartItem) bool { return true })
	s.mu.Unlock()
	if len(claimed) == 0 {
		return 0, nil
	}

	lines, err := lineInputs(claimed)
	if err != nil {
		s.markItemsError(ctx, err, ids(claimed)...)
		return 0, err
	}

	remote, err := s.remote.CreateCart(ctx, lines)
	if err != nil {
		s.markItemsError(ctx, err, ids(claimed)...)
		return 1, err
	}

	s.mu.Lock()
	if !s.anyPresentLocked(claimed) {
		// cleared or emptied while the cart was being created
		s.mu.Unlock()
		logger.FromContext(ctx).Info(LogMsgCreateAbandoned, "cart_id", remote.ID, "lines", len(remote.Lines))
		s.removeOrphans(ctx, remote.ID, remoteLineIDs(remote)...)
		return 1, nil
	}
	s.meta.CartID = remote.ID
	s.dropEntriesLocked(pending)
	var orphans []string
	for i, it := range claimed {
		lineID := ""
		if i < len(remote.Lines) {
			lineID = remote.Lines[i].ID
		}
		if orphan := s.applyResultLocked(ctx, it, lineID, domain.SyncAdd); orphan != "" {
			orphans = append(orphans, orphan)
		}
	}
	s.applyRemoteLocked(remote)
	s.mu.Unlock()

	s.removeOrphans(ctx, remote.ID, orphans...)
	return 1, nil
}

// reconcile drains the queue against an existing remote cart.
func (s *Store) reconcile(ctx context.Context, cartID string, pending []domain.PendingSync) (int, error) {
	var adds, updates, removes []domain.PendingSync
	for _, p := range pending {
		switch p.Type {
		case domain.SyncAdd:
			adds = append(adds, p)
		case domain.SyncUpdate:
			updates = append(updates, p)
		case domain.SyncRemove:
			removes = append(removes, p)
		}
	}

	ops := 0
	if len(adds) > 0 {
		n, err := s.reconcileAdds(ctx, cartID, adds)
		ops += n
		if err != nil {
			return ops, err
		}
	}
	if len(updates) > 0 {
		n, err := s.reconcileUpdates(ctx, cartID, updates)
		ops += n
		if err != nil {
			return ops, err
		}
	}
	if len(removes) > 0 {
		n, err := s.reconcileRemoves(ctx, cartID, removes)
		ops += n
		if err != nil {
			return ops, err
		}
	}
	return ops, nil
}

func (s *Store) reconcileAdds(ctx context.Context, cartID string, entries []domain.PendingSync) (int, error) {
	want := entryItems(entries)
	s.mu.Lock()
	claimed := s.claimLocked(func(it domain.CartItem) bool { return want[it.ID] && !it.Confirmed() })
	known := s.knownLinesLocked()
	if len(claimed) == 0 {
		// every entry is owned elsewhere or refers to a gone item
		s.dropEntriesLocked(s.unclaimedEntriesLocked(entries))
		s.mu.Unlock()
		return 0, nil
	}
	s.mu.Unlock()

	lines, err := lineInputs(claimed)
	if err != nil {
		s.markItemsError(ctx, err, ids(claimed)...)
		return 0, err
	}

	remote, err := s.remote.AddLines(ctx, cartID, lines)
	if err != nil {
		s.markItemsError(ctx, err, ids(claimed)...)
		return 1, err
	}

	s.mu.Lock()
	if s.meta.CartID != cartID {
		s.mu.Unlock()
		return 1, nil
	}
	var orphans []string
	for i, it := range claimed {
		lineID := pickLine(remote, it.VariantID, lines[i].Attributes, known)
		if orphan := s.applyResultLocked(ctx, it, lineID, domain.SyncAdd); orphan != "" {
			orphans = append(orphans, orphan)
		}
	}
	s.applyRemoteLocked(remote)
	s.mu.Unlock()

	s.removeOrphans(ctx, cartID, orphans...)
	return 1, nil
}

func (s *Store) reconcileUpdates(ctx context.Context, cartID string, entries []domain.PendingSync) (int, error) {
	want := entryItems(entries)
	s.mu.Lock()
	claimed := s.claimLocked(func(it domain.CartItem) bool { return want[it.ID] && it.Confirmed() })
	if len(claimed) == 0 {
		s.dropEntriesLocked(s.unclaimedEntriesLocked(entries))
		s.mu.Unlock()
		return 0, nil
	}
	s.mu.Unlock()

	lines := make([]domain.CartLineUpdate, len(claimed))
	for i, it := range claimed {
		attrs, err := attributesFor(it)
		if err != nil {
			s.markItemsError(ctx, err, ids(claimed)...)
			return 0, err
		}
		lines[i] = domain.CartLineUpdate{ID: it.LineItemID, Quantity: it.Quantity, Attributes: attrs}
	}

	remote, err := s.remote.UpdateLines(ctx, cartID, lines)
	if err != nil {
		s.markItemsError(ctx, err, ids(claimed)...)
		return 1, err
	}

	s.mu.Lock()
	if s.meta.CartID == cartID {
		for _, it := range claimed {
			s.applyResultLocked(ctx, it, it.LineItemID, domain.SyncUpdate)
		}
		s.applyRemoteLocked(remote)
	}
	s.mu.Unlock()
	return 1, nil
}

// reconcileRemoves claims the queued removals by taking them off the queue.
// A failed call puts them back.
func (s *Store) reconcileRemoves(ctx context.Context, cartID string, entries []domain.PendingSync) (int, error) {
	s.mu.Lock()
	var (
		claimed []domain.PendingSync
		lineIDs []string
		seen    = make(map[string]bool)
	)
	for _, p := range entries {
		if !s.claimRemovalLocked(p.ItemID) {
			continue
		}
		claimed = append(claimed, p)
		if p.LineID != "" && !seen[p.LineID] {
			seen[p.LineID] = true
			lineIDs = append(lineIDs, p.LineID)
		}
	}
	s.mu.Unlock()
	if len(lineIDs) == 0 {
		return 0, nil
	}

	remote, err := s.remote.RemoveLines(ctx, cartID, lineIDs)
	if err != nil {
		s.mu.Lock()
		if s.meta.CartID == cartID {
			s.meta.PendingSyncs = append(s.meta.PendingSyncs, claimed...)
		}
		s.mu.Unlock()
		return 1, err
	}

	s.mu.Lock()
	if s.meta.CartID == cartID {
		s.applyRemoteLocked(remote)
	}
	s.mu.Unlock()
	return 1, nil
}

// applyResultLocked applies a successful remote operation started from snap.
// If the item changed since, the line id is still recorded but the item goes
// back to pending with an update queued. If the item is gone, or an add
// produced a line other than the one the item is bound to, that line is
// returned for removal.
func (s *Store) applyResultLocked(ctx context.Context, snap domain.CartItem, lineID string, op domain.SyncOperation) (orphan string) {
	idx := s.indexLocked(snap.ID)
	if idx < 0 {
		if op == domain.SyncAdd && lineID != "" {
			logger.FromContext(ctx).Info(LogMsgOrphanLine, "item_id", snap.ID, "line_id", lineID)
			return lineID
		}
		return ""
	}
	cur := &s.items[idx]
	switch {
	case cur.LineItemID == "":
		cur.LineItemID = lineID
	case op == domain.SyncAdd && lineID != "" && lineID != cur.LineItemID && !s.lineBoundLocked(lineID):
		// a second add for the item created its own line
		logger.FromContext(ctx).Info(LogMsgOrphanLine, "item_id", cur.ID, "line_id", lineID)
		orphan = lineID
	}

	if cur.Version != snap.Version {
		metrics.CartStaleResults.WithLabelValues(string(op)).Inc()
		logger.FromContext(ctx).Debug(LogMsgStaleSyncResult, "item_id", cur.ID, "version", cur.Version, "synced_version", snap.Version)
		if cur.SyncStatus == domain.SyncSyncing {
			cur.SyncStatus = domain.SyncPending
		}
		s.dropPendingLocked(cur.ID, domain.SyncAdd)
		if cur.Confirmed() && !s.hasPendingLocked(cur.ID, domain.SyncUpdate) {
			s.enqueueLocked(domain.SyncUpdate, cur.ID, "")
		}
		return orphan
	}

	if cur.LineItemID == "" {
		// the remote cart did not report a line for it; retry on the next pass
		cur.SyncStatus = domain.SyncPending
		return orphan
	}
	cur.SyncStatus = domain.SyncSynced
	s.dropPendingLocked(cur.ID, domain.SyncAdd, domain.SyncUpdate)
	return orphan
}

// lineBoundLocked reports whether a local item owns lineID.
func (s *Store) lineBoundLocked(lineID string) bool {
	for _, it := range s.items {
		if it.LineItemID == lineID {
			return true
		}
	}
	return false
}

func (s *Store) anyPresentLocked(items []domain.CartItem) bool {
	for _, it := range items {
		if s.indexLocked(it.ID) >= 0 {
			return true
		}
	}
	return false
}

// requeueErroredLocked queues a retry for every error item that has nothing
// queued, which is the state a rolled back quantity change leaves behind.
func (s *Store) requeueErroredLocked() {
	for _, it := range s.items {
		if it.SyncStatus != domain.SyncError ||
			s.hasPendingLocked(it.ID, domain.SyncAdd) || s.hasPendingLocked(it.ID, domain.SyncUpdate) {
			continue
		}
		op := domain.SyncAdd
		if it.Confirmed() {
			op = domain.SyncUpdate
		}
		s.enqueueLocked(op, it.ID, "")
	}
}

func (s *Store) applyRemoteLocked(remote *domain.RemoteCart) {
	if remote == nil {
		return
	}
	if remote.CheckoutURL != "" {
		s.meta.CheckoutURL = remote.CheckoutURL
	}
	now := s.now().UTC()
	s.meta.LastSyncedAt = &now
	s.meta.UpdatedAt = now
}

// claimLocked marks every matching item that is not already in flight as
// syncing and returns snapshots of them.
func (s *Store) claimLocked(match func(domain.CartItem) bool) []domain.CartItem {
	if s.detached {
		return nil
	}
	var out []domain.CartItem
	for i := range s.items {
		it := &s.items[i]
		if it.SyncStatus == domain.SyncSyncing || !match(*it) {
			continue
		}
		it.SyncStatus = domain.SyncSyncing
		out = append(out, it.Clone())
	}
	return out
}

// claimRemovalLocked takes the queued removal of itemID off the queue.
func (s *Store) claimRemovalLocked(itemID string) bool {
	if s.detached || !s.hasPendingLocked(itemID, domain.SyncRemove) {
		return false
	}
	s.dropPendingLocked(itemID, domain.SyncRemove)
	return true
}

// unclaimedEntriesLocked returns the entries whose item no longer exists.
func (s *Store) unclaimedEntriesLocked(entries []domain.PendingSync) []domain.PendingSync {
	var out []domain.PendingSync
	for _, p := range entries {
		if s.indexLocked(p.ItemID) < 0 {
			out = append(out, p)
		}
	}
	return out
}

// markItemsError flags the given items as failed and records err as the
// store error.
func (s *Store) markItemsError(ctx context.Context, err error, itemIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range itemIDs {
		if idx := s.indexLocked(id); idx >= 0 {
			s.items[idx].SyncStatus = domain.SyncError
		}
	}
	s.err = err.Error()
	s.saveLocked(ctx)
}

func (s *Store) removeOrphans(ctx context.Context, cartID string, lineIDs ...string) {
	var lines []string
	for _, id := range lineIDs {
		if id != "" {
			lines = append(lines, id)
		}
	}
	if len(lines) == 0 {
		return
	}
	s.background(ctx, func(ctx context.Context) {
		if _, err := s.remote.RemoveLines(ctx, cartID, lines); err != nil {
			logger.FromContext(ctx).Warn(LogMsgRemoteClearFail, "cart_id", cartID, "error", err)
		}
	})
}

func (s *Store) hasPendingLocked(itemID string, op domain.SyncOperation) bool {
	for _, p := range s.meta.PendingSyncs {
		if p.ItemID == itemID && p.Type == op {
			return true
		}
	}
	return false
}

// dropEntriesLocked removes exactly the given queue entries.
func (s *Store) dropEntriesLocked(entries []domain.PendingSync) {
	if len(entries) == 0 {
		return
	}
	drop := make(map[domain.PendingSync]bool, len(entries))
	for _, p := range entries {
		drop[p] = true
	}
	kept := s.meta.PendingSyncs[:0]
	for _, p := range s.meta.PendingSyncs {
		if !drop[p] {
			kept = append(kept, p)
		}
	}
	s.meta.PendingSyncs = kept
}

// knownLinesLocked is the set of remote line ids already bound locally or
// queued for removal.
func (s *Store) knownLinesLocked() map[string]bool {
	known := make(map[string]bool)
	for _, it := range s.items {
		if it.LineItemID != "" {
			known[it.LineItemID] = true
		}
	}
	for _, p := range s.meta.PendingSyncs {
		if p.LineID != "" {
			known[p.LineID] = true
		}
	}
	return known
}

// pickLine finds the line an add created: the first unknown line for the
// variant carrying the same attributes, then any unknown line for the
// variant. The remote cart merges identical lines, so a known line for the
// variant is the last resort. The chosen line is marked known.
func pickLine(remote *domain.RemoteCart, variantID string, attrs []domain.Attribute, known map[string]bool) string {
	if remote == nil {
		return ""
	}
	candidates := []func(l domain.RemoteCartLine) bool{
		func(l domain.RemoteCartLine) bool { return !known[l.ID] && sameAttributes(l.Attributes, attrs) },
		func(l domain.RemoteCartLine) bool { return !known[l.ID] },
		func(domain.RemoteCartLine) bool { return true },
	}
	for _, match := range candidates {
		for _, l := range remote.Lines {
			if l.MerchandiseID == variantID && match(l) {
				known[l.ID] = true
				return l.ID
			}
		}
	}
	return ""
}

func sameAttributes(a, b []domain.Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Key] = attr.Value
	}
	for _, attr := range b {
		if v, ok := m[attr.Key]; !ok || v != attr.Value {
			return false
		}
	}
	return true
}

func attributesFor(it domain.CartItem) ([]domain.Attribute, error) {
	if it.Configuration == nil {
		return nil, nil
	}
	return serialization.Serialize(*it.Configuration, it.SpecialtyConfig)
}

func lineInputs(items []domain.CartItem) ([]domain.CartLineInput, error) {
	lines := make([]domain.CartLineInput, len(items))
	for i, it := range items {
		attrs, err := attributesFor(it)
		if err != nil {
			return nil, err
		}
		lines[i] = domain.CartLineInput{MerchandiseID: it.VariantID, Quantity: it.Quantity, Attributes: attrs}
	}
	return lines, nil
}

func entryItems(entries []domain.PendingSync) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, p := range entries {
		out[p.ItemID] = true
	}
	return out
}

func remoteLineIDs(remote *domain.RemoteCart) []string {
	out := make([]string, len(remote.Lines))
	for i, l := range remote.Lines {
		out[i] = l.ID
	}
	return out
}

func ids(items []domain.CartItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
