// Package build holds the current selection of components for one PC build.
//
// A State is an immutable value: Select returns a new State and leaves the
// receiver untouched, so snapshots can be handed to concurrent resolvers
// without locking. There is no "complete" state; slots can be chosen and
// overwritten in any order.
package build

import (
	"errors"
	"math"

	"github.com/StinkyLord/ibuildhw/internal/model"
)

// ErrUnknownComponent is returned when a selection references an id that
// is not present in the category's catalog.
var ErrUnknownComponent = errors.New("component not found in catalog")

// State maps each category to at most one selected component.
type State struct {
	selected map[model.Category]*model.Component
}

// Empty returns a state with no selections.
func Empty() State {
	return State{}
}

// Select returns a copy of s with category set to c. A nil component
// clears the slot. Other selections are kept as they are, even if they no
// longer fit the new choice.
func (s State) Select(category model.Category, c *model.Component) State {
	next := make(map[model.Category]*model.Component, len(s.selected)+1)
	for k, v := range s.selected {
		next[k] = v
	}
	if c == nil {
		delete(next, category)
	} else {
		next[category] = c
	}
	return State{selected: next}
}

// Get returns the component selected for category, or nil.
func (s State) Get(category model.Category) *model.Component {
	return s.selected[category]
}

// Has reports whether category has a selection.
func (s State) Has(category model.Category) bool {
	return s.selected[category] != nil
}

// Len returns the number of selected slots.
func (s State) Len() int {
	return len(s.selected)
}

// Selected returns the selections in model.Categories order.
func (s State) Selected() []*model.Component {
	out := make([]*model.Component, 0, len(s.selected))
	for _, c := range model.Categories {
		if comp := s.selected[c]; comp != nil {
			out = append(out, comp)
		}
	}
	return out
}

// Open returns the categories from candidates that have no selection yet.
func (s State) Open(candidates []model.Category) []model.Category {
	var open []model.Category
	for _, c := range candidates {
		if !s.Has(c) {
			open = append(open, c)
		}
	}
	return open
}

// TotalPrice sums the prices of every selected component. Unknown prices
// already decode to 0. The sum saturates at math.MaxInt.
func TotalPrice(s State) int {
	total := 0
	for _, c := range s.selected {
		if c != nil {
			p := max(int(c.Price), 0)
			if total > math.MaxInt-p {
				return math.MaxInt
			}
			total += p
		}
	}
	return total
}
