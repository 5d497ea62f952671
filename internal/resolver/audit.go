package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Conflict is a pair of current selections that violate a rule.
type Conflict struct {
	Component string `json:"component"` // key of the selection that fails
	Against   string `json:"against"`   // key of the selection imposing the rule
	Axis      Axis   `json:"axis"`
	Message   string `json:"message"`
}

// auditTargets are checked against the rest of the build. Between them
// they cover every rule exactly once: cpu/motherboard and case/motherboard
// through the motherboard, gpu/psu through the psu.
var auditTargets = []model.Category{model.CategoryMotherboard, model.CategoryPSU}

// Audit reports selections in state that no longer fit each other. It
// never changes the state; selecting a new CPU leaves an incompatible
// motherboard in place and Audit is how the caller finds out.
func (r *Resolver) Audit(state build.State) []Conflict {
	var conflicts []Conflict
	for _, target := range auditTargets {
		selected := state.Get(target)
		if selected == nil {
			continue
		}
		cs := Constraints(target, state)
		for _, rule := range cs.Rules() {
			if rule.Match(selected) {
				continue
			}
			against := cs.Sources[rule.Axis()]
			conflicts = append(conflicts, Conflict{
				Component: selected.Key(),
				Against:   against,
				Axis:      rule.Axis(),
				Message: fmt.Sprintf("%s %q does not satisfy %s from %s",
					target, selected.Name, describeAxis(rule.Axis(), cs), against),
			})
		}
	}
	if len(conflicts) > 0 {
		r.log().Debug("Build has conflicts", zap.Int("conflicts", len(conflicts)))
	}
	return conflicts
}
