package cart

// Command is one of the closed set of cart operations accepted by Apply.
type Command interface {
	Name() string
	isCommand()
}

type AddItem struct{ Item MenuItem }

type IncrementItem struct{ ItemID string }

type DecrementItem struct{ ItemID string }

type RemoveItem struct{ ItemID string }

type ClearCart struct{}

type ConfirmRestaurantChange struct{}

type DismissWarning struct{}

func (AddItem) Name() string                 { return "add_item" }
func (IncrementItem) Name() string           { return "increment_item" }
func (DecrementItem) Name() string           { return "decrement_item" }
func (RemoveItem) Name() string              { return "remove_item" }
func (ClearCart) Name() string               { return "clear_cart" }
func (ConfirmRestaurantChange) Name() string { return "confirm_restaurant_change" }
func (DismissWarning) Name() string          { return "dismiss_warning" }

func (AddItem) isCommand()                 {}
func (IncrementItem) isCommand()           {}
func (DecrementItem) isCommand()           {}
func (RemoveItem) isCommand()              {}
func (ClearCart) isCommand()               {}
func (ConfirmRestaurantChange) isCommand() {}
func (DismissWarning) isCommand()          {}

// Outcome describes what a command did to the state.
type Outcome string

const (
	OutcomeAdded     Outcome = "ADDED"
	OutcomeMerged    Outcome = "MERGED"
	OutcomeConflict  Outcome = "CONFLICT"
	OutcomeRejected  Outcome = "REJECTED"
	OutcomeUpdated   Outcome = "UPDATED"
	OutcomeRemoved   Outcome = "REMOVED"
	OutcomeCleared   Outcome = "CLEARED"
	OutcomeReplaced  Outcome = "REPLACED"
	OutcomeDismissed Outcome = "DISMISSED"
	OutcomeNoop      Outcome = "NOOP"
)

// Recorded reports whether an AddItem actually landed in the cart.
func (o Outcome) Recorded() bool {
	return o == OutcomeAdded || o == OutcomeMerged
}

// Changed reports whether the command produced a different state.
func (o Outcome) Changed() bool {
	return o != OutcomeNoop && o != OutcomeRejected
}

// Apply runs cmd against s and returns the resulting state. s is left untouched.
func Apply(s State, cmd Command) (State, Outcome) {
	switch c := cmd.(type) {
	case AddItem:
		return applyAdd(s, c.Item)
	case IncrementItem:
		return applyIncrement(s, c.ItemID)
	case DecrementItem:
		return applyDecrement(s, c.ItemID)
	case RemoveItem:
		return applyRemove(s, c.ItemID)
	case ClearCart:
		return EmptyState(), OutcomeCleared
	case ConfirmRestaurantChange:
		return applyConfirm(s)
	case DismissWarning:
		return applyDismiss(s)
	default:
		return s, OutcomeNoop
	}
}

// normalizeItem fills the degraded defaults for whichever restaurant fields
// a menu item is missing. Items without an id cannot be keyed and are refused.
func normalizeItem(item MenuItem) (MenuItem, bool) {
	if item.ID == "" {
		return item, false
	}
	if item.RestaurantID == "" {
		item.RestaurantID = DefaultRestaurantID
	}
	if item.RestaurantName == "" {
		item.RestaurantName = UnknownRestaurantName
	}
	return item, true
}

func applyAdd(s State, raw MenuItem) (State, Outcome) {
	item, ok := normalizeItem(raw)
	if !ok {
		return s, OutcomeRejected
	}

	if len(s.Items) > 0 && item.RestaurantID != s.CurrentRestaurant {
		next := s.clone()
		next.PendingConflict = &item
		next.ConflictWarning = true
		return next, OutcomeConflict
	}

	next := s.clone()
	if i := next.indexOf(item.ID); i >= 0 {
		next.Items[i].Quantity++
		return next, OutcomeMerged
	}

	next.Items = append(next.Items, newLineItem(item))
	next.CurrentRestaurant = item.RestaurantID
	return next, OutcomeAdded
}

func applyIncrement(s State, itemID string) (State, Outcome) {
	i := s.indexOf(itemID)
	if i < 0 {
		return s, OutcomeNoop
	}
	next := s.clone()
	next.Items[i].Quantity++
	return next, OutcomeUpdated
}

func applyDecrement(s State, itemID string) (State, Outcome) {
	i := s.indexOf(itemID)
	if i < 0 {
		return s, OutcomeNoop
	}
	if s.Items[i].Quantity > 1 {
		next := s.clone()
		next.Items[i].Quantity--
		return next, OutcomeUpdated
	}
	return withoutItem(s, i), OutcomeRemoved
}

func applyRemove(s State, itemID string) (State, Outcome) {
	i := s.indexOf(itemID)
	if i < 0 {
		return s, OutcomeNoop
	}
	return withoutItem(s, i), OutcomeRemoved
}

func withoutItem(s State, i int) State {
	next := s.clone()
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	if len(next.Items) == 0 {
		next.CurrentRestaurant = NoRestaurant
	}
	return next
}

func applyConfirm(s State) (State, Outcome) {
	if s.PendingConflict == nil {
		return s, OutcomeNoop
	}
	item := *s.PendingConflict
	return State{
		Items:             []LineItem{newLineItem(item)},
		CurrentRestaurant: item.RestaurantID,
	}, OutcomeReplaced
}

func applyDismiss(s State) (State, Outcome) {
	if !s.ConflictWarning && s.PendingConflict == nil {
		return s, OutcomeNoop
	}
	next := s.clone()
	next.PendingConflict = nil
	next.ConflictWarning = false
	return next, OutcomeDismissed
}
