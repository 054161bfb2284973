package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/event"
)

const (
	testCartID      = "gid://shopify/Cart/1"
	testCheckoutURL = "https://shop.example/cart/c/1"
	testVariant     = "gid://shopify/ProductVariant/100"
	testVariant2    = "gid://shopify/ProductVariant/200"
)

var errRemote = errors.New("remote unavailable")

// fakeRemote is an in-memory remote cart. Fail* make the matching call fail;
// the hooks run inside a call before it takes effect.
type fakeRemote struct {
	mu       sync.Mutex
	created  bool
	lines    []domain.RemoteCartLine
	nextLine int
	calls    []string
	removed  [][]string

	failCreate error
	failAdd    error
	failUpdate error
	failRemove error

	beforeCreate func()
	beforeAdd    func()
}

func (f *fakeRemote) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) Removed() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.removed...)
}

func (f *fakeRemote) Lines() []domain.RemoteCartLine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RemoteCartLine(nil), f.lines...)
}

func (f *fakeRemote) snapshotLocked() *domain.RemoteCart {
	total := 0
	for _, l := range f.lines {
		total += l.Quantity
	}
	return &domain.RemoteCart{
		ID:            testCartID,
		CheckoutURL:   testCheckoutURL,
		TotalQuantity: total,
		Lines:         append([]domain.RemoteCartLine(nil), f.lines...),
	}
}

func (f *fakeRemote) appendLocked(in []domain.CartLineInput) {
	for _, l := range in {
		f.nextLine++
		f.lines = append(f.lines, domain.RemoteCartLine{
			ID:            fmt.Sprintf("gid://shopify/CartLine/%d", f.nextLine),
			Quantity:      l.Quantity,
			MerchandiseID: l.MerchandiseID,
			Attributes:    l.Attributes,
		})
	}
}

func (f *fakeRemote) CreateCart(_ context.Context, lines []domain.CartLineInput) (*domain.RemoteCart, error) {
	f.record("create")
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.created = true
	f.lines = nil
	f.appendLocked(lines)
	return f.snapshotLocked(), nil
}

func (f *fakeRemote) AddLines(_ context.Context, cartID string, lines []domain.CartLineInput) (*domain.RemoteCart, error) {
	f.record("add")
	if f.beforeAdd != nil {
		f.beforeAdd()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd != nil {
		return nil, f.failAdd
	}
	if !f.created || cartID != testCartID {
		return nil, domain.ErrCartNotFound
	}
	f.appendLocked(lines)
	return f.snapshotLocked(), nil
}

func (f *fakeRemote) UpdateLines(_ context.Context, _ string, lines []domain.CartLineUpdate) (*domain.RemoteCart, error) {
	f.record("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	for _, u := range lines {
		for i := range f.lines {
			if f.lines[i].ID == u.ID {
				f.lines[i].Quantity = u.Quantity
			}
		}
	}
	return f.snapshotLocked(), nil
}

func (f *fakeRemote) RemoveLines(_ context.Context, _ string, lineIDs []string) (*domain.RemoteCart, error) {
	f.record("remove")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRemove != nil {
		return nil, f.failRemove
	}
	f.removed = append(f.removed, append([]string(nil), lineIDs...))
	drop := make(map[string]bool, len(lineIDs))
	for _, id := range lineIDs {
		drop[id] = true
	}
	kept := f.lines[:0]
	for _, l := range f.lines {
		if !drop[l.ID] {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return f.snapshotLocked(), nil
}

func (f *fakeRemote) GetCart(_ context.Context, _ string) (*domain.RemoteCart, error) {
	f.record("get")
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.created {
		return nil, domain.ErrCartNotFound
	}
	return f.snapshotLocked(), nil
}

func (f *fakeRemote) setFailRemove(err error) {
	f.mu.Lock()
	f.failRemove = err
	f.mu.Unlock()
}

func (f *fakeRemote) setFailUpdate(err error) {
	f.mu.Lock()
	f.failUpdate = err
	f.mu.Unlock()
}

func (f *fakeRemote) setFailCreate(err error) {
	f.mu.Lock()
	f.failCreate = err
	f.mu.Unlock()
}

// deferredRunner collects background work until Run is called.
type deferredRunner struct {
	mu   sync.Mutex
	jobs []func(ctx context.Context)
}

func (r *deferredRunner) Go(fn func(ctx context.Context)) {
	r.mu.Lock()
	r.jobs = append(r.jobs, fn)
	r.mu.Unlock()
}

func (r *deferredRunner) Run() {
	r.mu.Lock()
	jobs := r.jobs
	r.jobs = nil
	r.mu.Unlock()
	for _, fn := range jobs {
		fn(context.Background())
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	p.events = append(p.events, evt)
	p.mu.Unlock()
}

func (p *recordingPublisher) Types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newItem(variant string, qty int) domain.NewCartItem {
	return domain.NewCartItem{
		VariantID:     variant,
		ProductHandle: "custom-frame",
		Title:         "Custom Frame",
		Price:         89.5,
		Currency:      "USD",
		Quantity:      qty,
	}
}

func newTestStore(remote RemoteCart, runner Runner) *Store {
	return NewStore(Options{
		StoreID:     "test-store",
		SessionID:   "session-1",
		Remote:      remote,
		Runner:      runner,
		Persistence: NewPersistence(NewMemoryStorage(), nil, DefaultTTL),
	})
}
