package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItem(id, restaurant string, price string) MenuItem {
	return MenuItem{
		ID:             id,
		Name:           "Item " + id,
		Price:          decimal.RequireFromString(price),
		RestaurantID:   restaurant,
		RestaurantName: "Restaurant " + restaurant,
	}
}

// run applies cmds in order and fails the test on any invariant violation.
func run(t *testing.T, s State, cmds ...Command) State {
	t.Helper()
	for _, c := range cmds {
		s, _ = Apply(s, c)
		require.NoError(t, s.CheckInvariants(), "after %s", c.Name())
	}
	return s
}

func TestApply_AddItem(t *testing.T) {
	t.Run("Empty cart adds with quantity one", func(t *testing.T) {
		s, out := Apply(EmptyState(), AddItem{Item: menuItem("a", "r1", "10")})

		assert.Equal(t, OutcomeAdded, out)
		assert.True(t, out.Recorded())
		require.Len(t, s.Items, 1)
		assert.Equal(t, 1, s.Items[0].Quantity)
		assert.Equal(t, "r1", s.CurrentRestaurant)
		assert.Equal(t, StatusActive, s.Status())
	})

	t.Run("Same item merges", func(t *testing.T) {
		x := menuItem("a", "r1", "10")
		s := run(t, EmptyState(), AddItem{Item: x})
		s, out := Apply(s, AddItem{Item: x})

		assert.Equal(t, OutcomeMerged, out)
		assert.Len(t, s.Items, 1)
		assert.Equal(t, 2, s.Quantity("a"))
	})

	t.Run("Same restaurant appends in order", func(t *testing.T) {
		s := run(t, EmptyState(),
			AddItem{Item: menuItem("a", "r1", "10")},
			AddItem{Item: menuItem("b", "r1", "20")},
		)

		require.Len(t, s.Items, 2)
		assert.Equal(t, "a", s.Items[0].ID)
		assert.Equal(t, "b", s.Items[1].ID)
	})

	t.Run("Different restaurant defers", func(t *testing.T) {
		before := run(t, EmptyState(),
			AddItem{Item: menuItem("a", "r1", "10")},
			AddItem{Item: menuItem("a", "r1", "10")},
		)
		y := menuItem("y", "r2", "5")

		after, out := Apply(before, AddItem{Item: y})

		assert.Equal(t, OutcomeConflict, out)
		assert.False(t, out.Recorded())
		assert.Equal(t, before.Items, after.Items)
		assert.Equal(t, "r1", after.CurrentRestaurant)
		require.NotNil(t, after.PendingConflict)
		assert.Equal(t, y, *after.PendingConflict)
		assert.True(t, after.ConflictWarning)
		assert.Equal(t, StatusConflictPending, after.Status())
	})

	t.Run("Missing restaurant falls back to default", func(t *testing.T) {
		s, out := Apply(EmptyState(), AddItem{Item: MenuItem{ID: "a", Name: "Tea", Price: decimal.NewFromInt(5)}})

		assert.Equal(t, OutcomeAdded, out)
		assert.Equal(t, DefaultRestaurantID, s.CurrentRestaurant)
		assert.Equal(t, UnknownRestaurantName, s.Items[0].RestaurantName)
	})

	t.Run("Missing restaurant id keeps the given name", func(t *testing.T) {
		s, out := Apply(EmptyState(), AddItem{Item: MenuItem{ID: "a", RestaurantName: "Dosa Corner"}})

		assert.Equal(t, OutcomeAdded, out)
		assert.Equal(t, DefaultRestaurantID, s.CurrentRestaurant)
		assert.Equal(t, "Dosa Corner", s.Items[0].RestaurantName)
		assert.Equal(t, "Dosa Corner", s.RestaurantName())
	})

	t.Run("Missing restaurant name falls back", func(t *testing.T) {
		s, _ := Apply(EmptyState(), AddItem{Item: MenuItem{ID: "a", RestaurantID: "r1"}})
		assert.Equal(t, UnknownRestaurantName, s.RestaurantName())
	})

	t.Run("Missing id is rejected", func(t *testing.T) {
		before := run(t, EmptyState(), AddItem{Item: menuItem("a", "r1", "10")})
		after, out := Apply(before, AddItem{Item: MenuItem{Name: "ghost", RestaurantID: "r1"}})

		assert.Equal(t, OutcomeRejected, out)
		assert.False(t, out.Changed())
		assert.Equal(t, before, after)
	})

	t.Run("Input state is not mutated", func(t *testing.T) {
		before := run(t, EmptyState(), AddItem{Item: menuItem("a", "r1", "10")})
		_, _ = Apply(before, AddItem{Item: menuItem("a", "r1", "10")})
		_, _ = Apply(before, AddItem{Item: menuItem("z", "r2", "10")})

		assert.Equal(t, 1, before.Quantity("a"))
		assert.Nil(t, before.PendingConflict)
	})
}

func TestApply_IncrementDecrement(t *testing.T) {
	base := run(t, EmptyState(), AddItem{Item: menuItem("a", "r1", "10")})

	t.Run("Increment", func(t *testing.T) {
		s, out := Apply(base, IncrementItem{ItemID: "a"})
		assert.Equal(t, OutcomeUpdated, out)
		assert.Equal(t, 2, s.Quantity("a"))
	})

	t.Run("Increment absent is a no-op", func(t *testing.T) {
		s, out := Apply(base, IncrementItem{ItemID: "nope"})
		assert.Equal(t, OutcomeNoop, out)
		assert.Equal(t, base, s)
	})

	t.Run("Decrement above one", func(t *testing.T) {
		s := run(t, base, IncrementItem{ItemID: "a"}, DecrementItem{ItemID: "a"})
		assert.Equal(t, 1, s.Quantity("a"))
	})

	t.Run("Decrement to zero removes and resets", func(t *testing.T) {
		s, out := Apply(base, DecrementItem{ItemID: "a"})

		assert.Equal(t, OutcomeRemoved, out)
		assert.Empty(t, s.Items)
		assert.Equal(t, NoRestaurant, s.CurrentRestaurant)
		assert.Equal(t, 0, s.Quantity("a"))
		assert.Equal(t, StatusEmpty, s.Status())
	})

	t.Run("Decrement absent is a no-op", func(t *testing.T) {
		_, out := Apply(base, DecrementItem{ItemID: "nope"})
		assert.Equal(t, OutcomeNoop, out)
	})
}

func TestApply_RemoveItem(t *testing.T) {
	s := run(t, EmptyState(),
		AddItem{Item: menuItem("a", "r1", "10")},
		AddItem{Item: menuItem("b", "r1", "10")},
		IncrementItem{ItemID: "b"},
	)

	s, out := Apply(s, RemoveItem{ItemID: "b"})
	assert.Equal(t, OutcomeRemoved, out)
	assert.Equal(t, "r1", s.CurrentRestaurant)

	s, _ = Apply(s, RemoveItem{ItemID: "a"})
	assert.True(t, s.IsEmpty())
	assert.Equal(t, NoRestaurant, s.CurrentRestaurant)

	_, out = Apply(s, RemoveItem{ItemID: "a"})
	assert.Equal(t, OutcomeNoop, out)
}

func TestApply_ConfirmRestaurantChange(t *testing.T) {
	t.Run("Replaces the basket", func(t *testing.T) {
		s := run(t, EmptyState(),
			AddItem{Item: menuItem("a", "r1", "10")},
			AddItem{Item: menuItem("b", "r1", "10")},
			AddItem{Item: menuItem("y", "r2", "7")},
		)

		s, out := Apply(s, ConfirmRestaurantChange{})

		assert.Equal(t, OutcomeReplaced, out)
		require.Len(t, s.Items, 1)
		assert.Equal(t, "y", s.Items[0].ID)
		assert.Equal(t, 1, s.Items[0].Quantity)
		assert.Equal(t, "r2", s.CurrentRestaurant)
		assert.Nil(t, s.PendingConflict)
		assert.False(t, s.ConflictWarning)
	})

	t.Run("Without conflict is a no-op", func(t *testing.T) {
		before := run(t, EmptyState(), AddItem{Item: menuItem("a", "r1", "10")})
		after, out := Apply(before, ConfirmRestaurantChange{})

		assert.Equal(t, OutcomeNoop, out)
		assert.Equal(t, before, after)
	})

	t.Run("Latest conflicting add wins", func(t *testing.T) {
		s := run(t, EmptyState(),
			AddItem{Item: menuItem("a", "r1", "10")},
			AddItem{Item: menuItem("y", "r2", "7")},
			AddItem{Item: menuItem("z", "r3", "9")},
			ConfirmRestaurantChange{},
		)
		assert.Equal(t, "r3", s.CurrentRestaurant)
		assert.Equal(t, "z", s.Items[0].ID)
	})
}

func TestApply_DismissWarning(t *testing.T) {
	before := run(t, EmptyState(),
		AddItem{Item: menuItem("a", "r1", "10")},
		AddItem{Item: menuItem("a", "r1", "10")},
	)
	conflicted := run(t, before, AddItem{Item: menuItem("y", "r2", "7")})

	s, out := Apply(conflicted, DismissWarning{})

	assert.Equal(t, OutcomeDismissed, out)
	assert.Equal(t, before.Items, s.Items)
	assert.Equal(t, "r1", s.CurrentRestaurant)
	assert.Nil(t, s.PendingConflict)
	assert.False(t, s.ConflictWarning)

	_, out = Apply(s, DismissWarning{})
	assert.Equal(t, OutcomeNoop, out)
}

func TestApply_ClearCart(t *testing.T) {
	s := run(t, EmptyState(),
		AddItem{Item: menuItem("a", "r1", "10")},
		AddItem{Item: menuItem("y", "r2", "7")},
		ClearCart{},
	)

	assert.Equal(t, EmptyState(), s)
	totals := DefaultPricing().Totals(s)
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, totals.ItemCount)
}

func TestApply_PendingSurvivesEmptying(t *testing.T) {
	s := run(t, EmptyState(),
		AddItem{Item: menuItem("a", "r1", "10")},
		AddItem{Item: menuItem("y", "r2", "7")},
		RemoveItem{ItemID: "a"},
	)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, StatusConflictPending, s.Status())

	s = run(t, s, ConfirmRestaurantChange{})
	assert.Equal(t, "r2", s.CurrentRestaurant)
}

func TestApply_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c", "d"}
	restaurants := []string{"r1", "r2", "r3", ""}

	randomCommand := func() Command {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(7) {
		case 0, 1:
			r := restaurants[rng.Intn(len(restaurants))]
			return AddItem{Item: MenuItem{ID: id + r, Name: id, Price: decimal.NewFromInt(int64(rng.Intn(500))), RestaurantID: r}}
		case 2:
			return IncrementItem{ItemID: id + restaurants[rng.Intn(len(restaurants))]}
		case 3:
			return DecrementItem{ItemID: id + restaurants[rng.Intn(len(restaurants))]}
		case 4:
			return RemoveItem{ItemID: id + restaurants[rng.Intn(len(restaurants))]}
		case 5:
			if rng.Intn(2) == 0 {
				return ConfirmRestaurantChange{}
			}
			return DismissWarning{}
		default:
			if rng.Intn(10) == 0 {
				return ClearCart{}
			}
			return IncrementItem{ItemID: id + "r1"}
		}
	}

	for seq := 0; seq < 200; seq++ {
		s := EmptyState()
		for step := 0; step < 50; step++ {
			cmd := randomCommand()
			next, out := Apply(s, cmd)
			require.NoError(t, next.CheckInvariants(), "seq %d step %d %s", seq, step, cmd.Name())
			if !out.Changed() {
				require.Equal(t, s, next)
			}
			s = next
		}
	}
}

func TestState_CheckInvariants(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  error
	}{
		{"empty", EmptyState(), nil},
		{"restaurant without items", State{CurrentRestaurant: "r1"}, ErrRestaurantWithoutItems},
		{"mixed", State{
			Items:             []LineItem{{ID: "a", Quantity: 1, RestaurantID: "r1"}, {ID: "b", Quantity: 1, RestaurantID: "r2"}},
			CurrentRestaurant: "r1",
		}, ErrMixedRestaurants},
		{"zero quantity", State{
			Items:             []LineItem{{ID: "a", Quantity: 0, RestaurantID: "r1"}},
			CurrentRestaurant: "r1",
		}, ErrNonPositiveQuantity},
		{"duplicate", State{
			Items:             []LineItem{{ID: "a", Quantity: 1, RestaurantID: "r1"}, {ID: "a", Quantity: 1, RestaurantID: "r1"}},
			CurrentRestaurant: "r1",
		}, ErrDuplicateLineItem},
		{"flag without pending", State{ConflictWarning: true}, ErrConflictFlagMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.state.CheckInvariants(), tt.want)
		})
	}
}
