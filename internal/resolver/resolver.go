// Package resolver narrows a catalog to the components compatible with a
// partially chosen build.
//
// Resolve is pure and synchronous: it reads a build.State snapshot and a
// catalog slice and never mutates either. When constraints exclude every
// candidate it falls back to the full catalog and explains why, so the
// user is never left with an empty picker.
package resolver

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/compat"
	"github.com/StinkyLord/ibuildhw/internal/metrics"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

// Result is the outcome of resolving one slot.
type Result struct {
	Category    model.Category     `json:"category"`
	Candidates  []*model.Component `json:"-"`
	Constraints ConstraintSet      `json:"constraints"`
	// Fallback is set when the constraints matched nothing and Candidates
	// is the unfiltered catalog.
	Fallback bool `json:"fallback"`
	// Warnings are meant for the user.
	Warnings []Warning `json:"warnings,omitempty"`
	// Diagnostics flag catalog data problems that did not change the
	// outcome.
	Diagnostics []Warning `json:"diagnostics,omitempty"`
}

// Resolver applies compatibility rules. The zero value is usable.
type Resolver struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates a Resolver. Both arguments may be nil.
func New(logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger, metrics: m}
}

func (r *Resolver) log() *zap.Logger {
	if r == nil || r.logger == nil {
		return zap.NewNop()
	}
	return r.logger
}

// Resolve returns the candidates from catalog that fit state, sorted by
// price, most expensive first. The purpose slot ignores catalog and state
// and returns the fixed usage profiles.
func (r *Resolver) Resolve(category model.Category, catalog []*model.Component, state build.State) Result {
	if category == model.CategoryPurpose {
		r.metrics.Resolution(string(category), metrics.OutcomeFixed)
		return Result{Category: category, Candidates: model.PurposeProfiles()}
	}

	res := Result{
		Category:    category,
		Constraints: Constraints(category, state),
	}
	log := r.log().With(zap.String("category", string(category)))

	unknown := map[string]bool{}
	normalize := func(raw string) compat.FormFactor {
		f, ok := compat.ParseFormFactor(raw)
		if !ok && !unknown[raw] {
			unknown[raw] = true
			r.metrics.UnrecognizedFormFactor()
			log.Warn("Unrecognized form factor", zap.String("value", raw))
		}
		return f
	}
	if res.Constraints.FormFactor != "" && !res.Constraints.FormFactor.Known() {
		normalize(string(res.Constraints.FormFactor))
	}
	for _, c := range catalog {
		if c == nil {
			continue
		}
		if raw, ok := c.FormFactor(); ok {
			normalize(raw)
		}
	}
	res.Diagnostics = formFactorDiagnostics(unknown)

	if res.Constraints.Empty() {
		res.Candidates = sortByPrice(catalog)
		r.metrics.Resolution(string(category), metrics.OutcomeUnconstrained)
		return res
	}

	rules := res.Constraints.rules(normalize)
	var filtered []*model.Component
	for _, c := range catalog {
		if c != nil && matchAll(rules, c) {
			filtered = append(filtered, c)
		}
	}

	if len(filtered) == 0 && len(catalog) > 0 {
		unmet := unmetAxes(rules, catalog)
		w := fallbackWarning(string(category), res.Constraints, unmet)
		res.Fallback = true
		res.Warnings = append(res.Warnings, w)
		res.Candidates = sortByPrice(catalog)
		r.metrics.Resolution(string(category), metrics.OutcomeFallback)
		log.Info("No compatible candidates, returning full catalog",
			zap.String("constraints", res.Constraints.String()),
			zap.Int("catalog", len(catalog)),
			zap.String("warning", w.Message))
		return res
	}

	res.Candidates = sortByPrice(filtered)
	r.metrics.Resolution(string(category), metrics.OutcomeFiltered)
	log.Debug("Resolved candidates",
		zap.String("constraints", res.Constraints.String()),
		zap.Int("catalog", len(catalog)),
		zap.Int("candidates", len(filtered)))
	return res
}

func formFactorDiagnostics(unknown map[string]bool) []Warning {
	var out []Warning
	for raw := range unknown {
		out = append(out, Warning{
			Code:    CodeUnrecognizedFormFactor,
			Message: "unrecognized form factor " + strconv.Quote(raw) + " compared by exact text",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Message < out[j].Message })
	return out
}

// unmetAxes returns the axes no catalog entry satisfies on its own. When
// every axis is individually satisfiable but never jointly, all axes are
// reported.
func unmetAxes(rules []Rule, catalog []*model.Component) []Axis {
	var unmet []Axis
	for _, rule := range rules {
		hit := false
		for _, c := range catalog {
			if c != nil && rule.Match(c) {
				hit = true
				break
			}
		}
		if !hit {
			unmet = append(unmet, rule.Axis())
		}
	}
	if len(unmet) == 0 {
		for _, rule := range rules {
			unmet = append(unmet, rule.Axis())
		}
	}
	return unmet
}

// sortByPrice returns a copy of components ordered by price descending.
// Equal prices keep their catalog order.
func sortByPrice(components []*model.Component) []*model.Component {
	out := make([]*model.Component, 0, len(components))
	for _, c := range components {
		if c != nil {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price > out[j].Price
	})
	return out
}
