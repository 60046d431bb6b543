package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/acai-pdv/models"
)

type EventType string

const (
	EventProductAdded     EventType = "product_added"
	EventProductUpdated   EventType = "product_updated"
	EventProductDeleted   EventType = "product_deleted"
	EventStockUpdated     EventType = "stock_updated"
	EventLowStock         EventType = "low_stock"
	EventCartChanged      EventType = "cart_changed"
	EventOrderFinalized   EventType = "order_finalized"
	EventFinalizeRejected EventType = "finalize_rejected"
	EventSessionChanged   EventType = "session_changed"
	EventViewChanged      EventType = "view_changed"
)

// Event describes one change applied to the ledger. Only the field
// matching Type is set.
type Event struct {
	Type    EventType
	Product *models.Product
	Stock   *models.StockItem
	Order   *models.Order
	Reason  string
	Err     error
}

// Persistent reports whether the event changed state that belongs in the
// snapshot. Cart edits and rejections do not.
func (e Event) Persistent() bool {
	switch e.Type {
	case EventCartChanged, EventFinalizeRejected, EventLowStock:
		return false
	}
	return true
}

type Listener func(Event)

// Ledger owns the catalog, stock, cart, order history and the operator
// session. All methods are safe for concurrent use.
type Ledger struct {
	mu            sync.Mutex
	products      []models.Product
	stock         []models.StockItem
	orders        []models.Order
	cart          []models.OrderItem
	currentUser   *models.User
	authenticated bool
	view          models.View
	revision      uint64

	now   func() time.Time
	newID func() string
	loc   *time.Location

	listenersMu sync.RWMutex
	listeners   []Listener
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLocation sets the time zone used to decide calendar days in reports.
func WithLocation(loc *time.Location) Option {
	return func(l *Ledger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		view:  models.ViewLogin,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) Location() *time.Location {
	return l.loc
}

// Subscribe registers fn to receive every event. Listeners run after the
// ledger lock is released, in registration order.
func (l *Ledger) Subscribe(fn Listener) {
	l.listenersMu.Lock()
	defer l.listenersMu.Unlock()
	l.listeners = append(l.listeners, fn)
}

// mutate runs fn under the ledger lock and publishes the events it
// returns once the lock is released. Events are published even when fn
// fails so rejections can be observed.
func (l *Ledger) mutate(fn func() ([]Event, error)) error {
	l.mu.Lock()
	events, err := fn()
	for _, ev := range events {
		if ev.Persistent() {
			l.revision++
			break
		}
	}
	l.mu.Unlock()

	l.emit(events)
	return err
}

func (l *Ledger) emit(events []Event) {
	if len(events) == 0 {
		return
	}
	l.listenersMu.RLock()
	listeners := append([]Listener(nil), l.listeners...)
	l.listenersMu.RUnlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}
}

// Restore replaces the persisted part of the state. The cart is cleared.
func (l *Ledger) Restore(snap models.LedgerSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.products = make([]models.Product, len(snap.Products))
	for i, p := range snap.Products {
		l.products[i] = p.Clone()
	}
	l.stock = append([]models.StockItem(nil), snap.Stock...)
	l.orders = make([]models.Order, len(snap.Orders))
	for i, o := range snap.Orders {
		l.orders[i] = o.Clone()
	}
	l.cart = nil

	l.currentUser = nil
	if snap.CurrentUser != nil {
		u := *snap.CurrentUser
		l.currentUser = &u
	}
	l.authenticated = snap.IsAuthenticated && l.currentUser != nil
	l.view = snap.CurrentView
	if !l.view.IsValid() {
		l.view = models.ViewLogin
	}
	l.revision++
}

// Snapshot copies the persisted part of the state.
func (l *Ledger) Snapshot() models.LedgerSnapshot {
	snap, _ := l.snapshot()
	return snap
}

// snapshot also returns the revision the copy was taken at. The revision
// grows with every mutation that changes persisted state.
func (l *Ledger) snapshot() (models.LedgerSnapshot, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := models.LedgerSnapshot{
		IsAuthenticated: l.authenticated,
		Products:        l.productsCopy(),
		Stock:           append([]models.StockItem{}, l.stock...),
		Orders:          l.ordersCopy(l.orders),
		CurrentView:     l.view,
	}
	if l.currentUser != nil {
		u := *l.currentUser
		snap.CurrentUser = &u
	}
	return snap, l.revision
}

func (l *Ledger) productsCopy() []models.Product {
	out := make([]models.Product, len(l.products))
	for i, p := range l.products {
		out[i] = p.Clone()
	}
	return out
}

func (l *Ledger) ordersCopy(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}
