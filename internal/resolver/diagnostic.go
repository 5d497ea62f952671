package resolver

import (
	"fmt"
	"strings"
)

// Warning codes.
const (
	// CodeFallback means no candidate satisfied the constraints and the
	// whole catalog was returned instead.
	CodeFallback = "fallback"
	// CodeUnrecognizedFormFactor flags catalog data no normalization rule
	// understood.
	CodeUnrecognizedFormFactor = "unrecognized_form_factor"
)

// Warning is a non-fatal message for the user.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Unmet lists the axes that could not be satisfied, for fallbacks.
	Unmet []Axis `json:"unmet,omitempty"`
}

func (w Warning) String() string {
	return w.Message
}

func fallbackWarning(target string, cs ConstraintSet, unmet []Axis) Warning {
	names := make([]string, 0, len(unmet))
	for _, a := range unmet {
		names = append(names, describeAxis(a, cs))
	}
	return Warning{
		Code: CodeFallback,
		Message: fmt.Sprintf("no %s satisfies %s; showing all options",
			target, strings.Join(names, " and ")),
		Unmet: unmet,
	}
}

func describeAxis(a Axis, cs ConstraintSet) string {
	switch a {
	case AxisSocket:
		return fmt.Sprintf("socket %q", cs.Socket)
	case AxisFormFactor:
		return fmt.Sprintf("form factor %q", cs.FormFactor)
	case AxisMinWattage:
		return fmt.Sprintf("minimum wattage %dW", *cs.MinWattage)
	case AxisMaxWattage:
		return fmt.Sprintf("maximum wattage %dW", *cs.MaxWattage)
	}
	return string(a)
}
