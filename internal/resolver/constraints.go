package resolver

import (
	"fmt"
	"strings"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/compat"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Axis names one dimension a candidate can be constrained on.
type Axis string

const (
	AxisSocket     Axis = "socket"
	AxisFormFactor Axis = "form_factor"
	AxisMinWattage Axis = "min_wattage"
	AxisMaxWattage Axis = "max_wattage"
)

// ConstraintSet is derived from a build state for one target category.
// Only the axes relevant to that category are populated.
type ConstraintSet struct {
	Socket     string            `json:"socket,omitempty"`
	FormFactor compat.FormFactor `json:"form_factor,omitempty"`
	MinWattage *int              `json:"min_wattage,omitempty"`
	MaxWattage *int              `json:"max_wattage,omitempty"`

	// Sources records which selection each axis came from, e.g.
	// socket -> "cpu:12".
	Sources map[Axis]string `json:"sources,omitempty"`
}

// Empty reports whether no axis is populated.
func (cs ConstraintSet) Empty() bool {
	return cs.Socket == "" && cs.FormFactor == "" && cs.MinWattage == nil && cs.MaxWattage == nil
}

// Axes lists the populated axes in a fixed order.
func (cs ConstraintSet) Axes() []Axis {
	var axes []Axis
	if cs.Socket != "" {
		axes = append(axes, AxisSocket)
	}
	if cs.FormFactor != "" {
		axes = append(axes, AxisFormFactor)
	}
	if cs.MinWattage != nil {
		axes = append(axes, AxisMinWattage)
	}
	if cs.MaxWattage != nil {
		axes = append(axes, AxisMaxWattage)
	}
	return axes
}

func (cs ConstraintSet) String() string {
	var parts []string
	if cs.Socket != "" {
		parts = append(parts, "socket="+compat.NormalizeSocket(cs.Socket))
	}
	if cs.FormFactor != "" {
		parts = append(parts, "form_factor="+string(cs.FormFactor))
	}
	if cs.MinWattage != nil {
		parts = append(parts, fmt.Sprintf("min_wattage=%d", *cs.MinWattage))
	}
	if cs.MaxWattage != nil {
		parts = append(parts, fmt.Sprintf("max_wattage=%d", *cs.MaxWattage))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func (cs *ConstraintSet) source(axis Axis, c *model.Component) {
	if cs.Sources == nil {
		cs.Sources = map[Axis]string{}
	}
	cs.Sources[axis] = c.Key()
}

// Constraints derives the constraint set for target from state:
//
//	motherboard  socket from cpu, form factor from case
//	cpu          socket from motherboard
//	case         form factor from motherboard
//	psu          minimum wattage from gpu
//	gpu          maximum wattage from psu
//
// Every other category is unconstrained. A source selection that lacks the
// attribute (a CPU without a socket, a GPU of unknown draw) contributes
// nothing.
func Constraints(target model.Category, state build.State) ConstraintSet {
	var cs ConstraintSet

	socketFrom := func(src model.Category) {
		if c := state.Get(src); c != nil {
			if socket, ok := c.Socket(); ok {
				cs.Socket = socket
				cs.source(AxisSocket, c)
			}
		}
	}
	formFactorFrom := func(src model.Category) {
		if c := state.Get(src); c != nil {
			if raw, ok := c.FormFactor(); ok {
				cs.FormFactor = compat.NormalizeFormFactor(raw)
				cs.source(AxisFormFactor, c)
			}
		}
	}

	switch target {
	case model.CategoryMotherboard:
		socketFrom(model.CategoryCPU)
		formFactorFrom(model.CategoryCase)
	case model.CategoryCPU:
		socketFrom(model.CategoryMotherboard)
	case model.CategoryCase:
		formFactorFrom(model.CategoryMotherboard)
	case model.CategoryPSU:
		if gpu := state.Get(model.CategoryGPU); gpu != nil {
			if need, ok := gpu.RequiredWattage(); ok && need > 0 {
				cs.MinWattage = &need
				cs.source(AxisMinWattage, gpu)
			}
		}
	case model.CategoryGPU:
		if psu := state.Get(model.CategoryPSU); psu != nil {
			if supply, ok := psu.SupplyWattage(); ok {
				cs.MaxWattage = &supply
				cs.source(AxisMaxWattage, psu)
			}
		}
	}
	return cs
}
