package cart

import (
	"sync"

	"go.uber.org/zap"
)

// Line is one cart entry: a denormalized snapshot of the product at the time
// it was added plus a quantity. The cart never looks the product up again, so
// it keeps working if the catalog item disappears.
//
// Invariants: Qty >= 1, at most one Line per ID, insertion order preserved.
type Line struct {
	ID       int
	Name     string
	Price    int64
	OldPrice int64
	Img      string
	Category string
	Qty      int
}

// Snapshot carries the product fields the cart denormalizes into a Line.
type Snapshot struct {
	ID       int
	Name     string
	Price    int64
	OldPrice int64
	Img      string
	Category string
}

// Storage persists the cart as a single value. Load returning an error means
// the persisted payload is unreadable; the service degrades to an empty cart
// rather than surfacing it. Clear removes the value entirely, which is
// distinct from saving an empty list.
type Storage interface {
	Load() ([]Line, error)
	Save(lines []Line) error
	Clear() error
}

// Notifier receives the "item added" signal for the toast collaborator.
type Notifier interface {
	ItemAdded(name string)
}

// Config holds the delivery pricing rules.
type Config struct {
	// FreeShippingMin is the subtotal at which delivery becomes free.
	FreeShippingMin int64
	// DeliveryFee is the flat fee charged below FreeShippingMin.
	DeliveryFee int64
}

// DefaultConfig matches the storefront's published shipping policy.
var DefaultConfig = Config{FreeShippingMin: 499, DeliveryFee: 49}

// Totals are the derived amounts for the cart summary. All values are
// non-negative integers; GrandTotal = Subtotal + Delivery.
type Totals struct {
	Subtotal   int64
	Savings    int64
	Delivery   int64
	GrandTotal int64
}

// Service owns the persisted cart state. Every mutation rereads the stored
// cart, applies the change, persists, and then notifies subscribers, so the
// store is fully consistent before any subsequent call observes it. All
// operations are total: absent identifiers are no-ops, never errors.
type Service struct {
	mu        sync.Mutex
	storage   Storage
	notifier  Notifier
	cfg       Config
	lg        *zap.Logger
	listeners []func()
}

// NewService creates a cart Service over the given storage. notifier may be
// nil when no toast collaborator is mounted.
func NewService(storage Storage, notifier Notifier, cfg Config, lg *zap.Logger) *Service {
	if cfg.FreeShippingMin == 0 && cfg.DeliveryFee == 0 {
		cfg = DefaultConfig
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Service{
		storage:  storage,
		notifier: notifier,
		cfg:      cfg,
		lg:       lg,
	}
}

// Subscribe registers a callback invoked synchronously after every mutation.
// Badges and cart views subscribe here. Not safe to call concurrently with
// mutations.
func (s *Service) Subscribe(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Add merges qty units of the product into the cart: an existing line for
// the same id has its quantity incremented, otherwise a new line is
// appended. A qty of 0 or less counts as 1.
func (s *Service) Add(p Snapshot, qty int) {
	if qty <= 0 {
		qty = 1
	}

	s.mu.Lock()
	lines := s.load()
	if i := indexOf(lines, p.ID); i >= 0 {
		lines[i].Qty += qty
	} else {
		lines = append(lines, Line{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			OldPrice: p.OldPrice,
			Img:      p.Img,
			Category: p.Category,
			Qty:      qty,
		})
	}
	s.save(lines)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ItemAdded(p.Name)
	}
	s.emit()
}

// Remove deletes the line with the given id. Absent ids are a no-op.
func (s *Service) Remove(id int) {
	s.mu.Lock()
	lines := s.load()
	if i := indexOf(lines, id); i >= 0 {
		lines = append(lines[:i], lines[i+1:]...)
		s.save(lines)
	}
	s.mu.Unlock()
	s.emit()
}

// SetQuantity sets the line's quantity to exactly qty. A qty of 0 or less
// removes the line; an absent id is a silent no-op and never creates a line.
func (s *Service) SetQuantity(id, qty int) {
	if qty <= 0 {
		s.Remove(id)
		return
	}

	s.mu.Lock()
	lines := s.load()
	if i := indexOf(lines, id); i >= 0 {
		lines[i].Qty = qty
		s.save(lines)
	}
	s.mu.Unlock()
	s.emit()
}

// Clear deletes the persisted cart state entirely.
func (s *Service) Clear() {
	s.mu.Lock()
	if err := s.storage.Clear(); err != nil {
		s.lg.Error("clear cart storage", zap.Error(err))
	}
	s.mu.Unlock()
	s.emit()
}

// Items returns the cart lines in insertion order.
func (s *Service) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// ItemCount is the total quantity across all lines. An empty cart yields 0.
func (s *Service) ItemCount() int {
	var count int
	for _, l := range s.Items() {
		count += l.Qty
	}
	return count
}

// Totals computes the cart summary. A line without an old price contributes
// zero savings. Delivery is free at or above the configured threshold.
func (s *Service) Totals() Totals {
	var t Totals
	for _, l := range s.Items() {
		qty := int64(l.Qty)
		t.Subtotal += l.Price * qty

		old := l.OldPrice
		if old == 0 {
			old = l.Price
		}
		t.Savings += (old - l.Price) * qty
	}
	if t.Subtotal < s.cfg.FreeShippingMin {
		t.Delivery = s.cfg.DeliveryFee
	}
	t.GrandTotal = t.Subtotal + t.Delivery
	return t
}

// load reads the persisted cart, degrading unreadable payloads to empty.
// Callers must hold s.mu.
func (s *Service) load() []Line {
	lines, err := s.storage.Load()
	if err != nil {
		s.lg.Warn("cart payload unreadable, starting empty", zap.Error(err))
		return nil
	}
	return lines
}

// save persists the cart. Write failures are logged and swallowed so the
// in-memory view stays usable. Callers must hold s.mu.
func (s *Service) save(lines []Line) {
	if err := s.storage.Save(lines); err != nil {
		s.lg.Error("save cart storage", zap.Error(err))
	}
}

func (s *Service) emit() {
	for _, fn := range s.listeners {
		fn()
	}
}

func indexOf(lines []Line, id int) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}
