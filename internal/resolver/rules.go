package resolver

import (
	"github.com/StinkyLord/ibuildhw/internal/compat"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Rule is one populated constraint axis. A candidate lacking the attribute
// the rule inspects does not match.
type Rule interface {
	Axis() Axis
	Match(c *model.Component) bool
}

// SocketRule keeps CPUs or motherboards whose socket satisfies Required.
type SocketRule struct {
	Required string
}

func (r SocketRule) Axis() Axis { return AxisSocket }

func (r SocketRule) Match(c *model.Component) bool {
	socket, ok := c.Socket()
	if !ok {
		return false
	}
	return compat.SocketsCompatible(r.Required, socket)
}

// FormFactorRule checks chassis/motherboard size classes from either side.
// For motherboard candidates Selected is the chosen case; for case
// candidates Selected is the chosen motherboard.
type FormFactorRule struct {
	Selected compat.FormFactor

	// normalize parses candidate strings; it lets the resolver report
	// unrecognized values.
	normalize func(raw string) compat.FormFactor
}

func (r FormFactorRule) Axis() Axis { return AxisFormFactor }

func (r FormFactorRule) Match(c *model.Component) bool {
	raw, ok := c.FormFactor()
	if !ok {
		return false
	}
	normalize := r.normalize
	if normalize == nil {
		normalize = compat.NormalizeFormFactor
	}
	candidate := normalize(raw)

	switch c.Category {
	case model.CategoryMotherboard:
		return compat.FitsCase(candidate, r.Selected)
	case model.CategoryCase:
		return compat.FitsCase(r.Selected, candidate)
	}
	return false
}

// MinWattageRule keeps PSUs that deliver at least Watts.
type MinWattageRule struct {
	Watts int
}

func (r MinWattageRule) Axis() Axis { return AxisMinWattage }

func (r MinWattageRule) Match(c *model.Component) bool {
	supply, ok := c.SupplyWattage()
	if !ok {
		return false
	}
	return compat.PSUSatisfiesGPU(supply, r.Watts)
}

// MaxWattageRule keeps GPUs whose requirement fits within Watts.
type MaxWattageRule struct {
	Watts int
}

func (r MaxWattageRule) Axis() Axis { return AxisMaxWattage }

func (r MaxWattageRule) Match(c *model.Component) bool {
	need, ok := c.RequiredWattage()
	if !ok {
		return false
	}
	return compat.GPUSatisfiesPSU(need, r.Watts)
}

// Rules turns a constraint set into the rules to apply, in Axes order.
func (cs ConstraintSet) Rules() []Rule {
	return cs.rules(nil)
}

func (cs ConstraintSet) rules(normalize func(string) compat.FormFactor) []Rule {
	var rules []Rule
	if cs.Socket != "" {
		rules = append(rules, SocketRule{Required: cs.Socket})
	}
	if cs.FormFactor != "" {
		rules = append(rules, FormFactorRule{Selected: cs.FormFactor, normalize: normalize})
	}
	if cs.MinWattage != nil {
		rules = append(rules, MinWattageRule{Watts: *cs.MinWattage})
	}
	if cs.MaxWattage != nil {
		rules = append(rules, MaxWattageRule{Watts: *cs.MaxWattage})
	}
	return rules
}

// matchAll reports whether c satisfies every rule.
func matchAll(rules []Rule, c *model.Component) bool {
	for _, r := range rules {
		if !r.Match(c) {
			return false
		}
	}
	return true
}
