package cart

import (
	"context"
	"sync"
	"time"

	"foodcart-be/internal/logger"

	"go.uber.org/zap"
)

// Snapshot is a consistent read of a store: the state, its derived totals and
// the number of state changes applied so far.
type Snapshot struct {
	State     State
	Totals    Totals
	Version   uint64
	UpdatedAt time.Time
}

// Store owns one cart and applies commands to it one at a time.
type Store struct {
	mu        sync.Mutex
	state     State
	pricing   Pricing
	version   uint64
	updatedAt time.Time
	now       func() time.Time
}

func NewStore(pricing Pricing) *Store {
	return &Store{
		state:     EmptyState(),
		pricing:   pricing,
		updatedAt: time.Now(),
		now:       time.Now,
	}
}

// Dispatch applies cmd and returns the resulting snapshot and outcome.
func (s *Store) Dispatch(ctx context.Context, cmd Command) (Snapshot, Outcome) {
	s.mu.Lock()
	next, outcome := Apply(s.state, cmd)
	if outcome.Changed() {
		s.state = next
		s.version++
		s.updatedAt = s.now()
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.String("command", cmd.Name()),
		zap.String("outcome", string(outcome)),
		zap.Uint64("version", snap.Version),
	)
	switch outcome {
	case OutcomeRejected:
		log.Warn("cart command rejected")
	case OutcomeConflict:
		log.Info("cart restaurant conflict raised",
			zap.String("current_restaurant", snap.State.CurrentRestaurant),
			zap.String("requested_restaurant", snap.State.PendingConflict.RestaurantID),
		)
	default:
		log.Debug("cart command applied", zap.Int("item_count", snap.Totals.ItemCount))
	}

	return snap, outcome
}

// Snapshot returns the current state without changing it.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	state := s.state.clone()
	return Snapshot{
		State:     state,
		Totals:    s.pricing.Totals(state),
		Version:   s.version,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Store) Pricing() Pricing {
	return s.pricing
}

// AddItem reports whether the item was recorded in the cart. A conflicting
// restaurant defers the add and returns false.
func (s *Store) AddItem(ctx context.Context, item MenuItem) bool {
	_, outcome := s.Dispatch(ctx, AddItem{Item: item})
	return outcome.Recorded()
}

func (s *Store) IncrementItem(ctx context.Context, itemID string) {
	s.Dispatch(ctx, IncrementItem{ItemID: itemID})
}

func (s *Store) DecrementItem(ctx context.Context, itemID string) {
	s.Dispatch(ctx, DecrementItem{ItemID: itemID})
}

func (s *Store) RemoveItem(ctx context.Context, itemID string) {
	s.Dispatch(ctx, RemoveItem{ItemID: itemID})
}

func (s *Store) ClearCart(ctx context.Context) {
	s.Dispatch(ctx, ClearCart{})
}

// ClearIfVersion clears the cart only if nothing has changed it since the
// snapshot taken at version. It reports whether the cart was cleared.
func (s *Store) ClearIfVersion(ctx context.Context, version uint64) bool {
	s.mu.Lock()
	current := s.version
	if current == version {
		if next, outcome := Apply(s.state, ClearCart{}); outcome.Changed() {
			s.state = next
			s.version++
			s.updatedAt = s.now()
		}
	}
	s.mu.Unlock()

	if current != version {
		logger.FromCtx(ctx).Info("cart changed since snapshot, not cleared",
			zap.Uint64("snapshot_version", version),
			zap.Uint64("version", current),
		)
		return false
	}
	return true
}

func (s *Store) ConfirmRestaurantChange(ctx context.Context) {
	s.Dispatch(ctx, ConfirmRestaurantChange{})
}

func (s *Store) DismissWarning(ctx context.Context) {
	s.Dispatch(ctx, DismissWarning{})
}

func (s *Store) GetItemQuantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Quantity(itemID)
}
