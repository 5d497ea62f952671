package compat

import "strings"

// FormFactor is a canonical motherboard/chassis size class. Values outside
// the known set carry the lowercase-trimmed vendor text unchanged.
type FormFactor string

const (
	MiniITX  FormFactor = "mini-itx"
	MicroATX FormFactor = "micro-atx"
	ATX      FormFactor = "atx"
	EATX     FormFactor = "e-atx"
	SSIEEB   FormFactor = "ssi-eeb"
)

// FormFactors lists the canonical classes from smallest to largest.
var FormFactors = []FormFactor{MiniITX, MicroATX, ATX, EATX, SSIEEB}

// formFactorRule maps vendor substrings to a canonical class. Rules are
// tried in order and the first hit wins, so the more specific spellings
// ("e-atx", "micro-atx") must come before plain "atx".
type formFactorRule struct {
	Canonical FormFactor
	Contains  []string
}

var formFactorRules = []formFactorRule{
	{Canonical: EATX, Contains: []string{"utökad", "extended", "e-atx", "eatx"}},
	{Canonical: SSIEEB, Contains: []string{"ssi eeb", "ssi-eeb", "eeb"}},
	{Canonical: MicroATX, Contains: []string{"micro", "matx", "µatx"}},
	{Canonical: MiniITX, Contains: []string{"mini", "itx"}},
	{Canonical: ATX, Contains: []string{"atx"}},
}

// Rank returns the position of f in FormFactors, or -1 when f is not a
// canonical class.
func (f FormFactor) Rank() int {
	for i, ff := range FormFactors {
		if ff == f {
			return i
		}
	}
	return -1
}

// Known reports whether f is one of the canonical classes.
func (f FormFactor) Known() bool { return f.Rank() >= 0 }

func (f FormFactor) String() string { return string(f) }

// ParseFormFactor maps vendor text such as "Micro-ATX", "Utökad ATX" or
// "SSI EEB" to a canonical class. When no rule applies it returns the
// lowercase-trimmed input and false.
func ParseFormFactor(raw string) (FormFactor, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	if f := FormFactor(s); f.Known() {
		return f, true
	}
	for _, rule := range formFactorRules {
		for _, token := range rule.Contains {
			if strings.Contains(s, token) {
				return rule.Canonical, true
			}
		}
	}
	return FormFactor(s), false
}

// NormalizeFormFactor is ParseFormFactor without the recognition flag.
func NormalizeFormFactor(raw string) FormFactor {
	f, _ := ParseFormFactor(raw)
	return f
}

// NormalizeSocket lowercases and trims a socket string and strips the word
// "socket", so "Socket AM5" and "am5" compare equal. Socket names are not
// mapped to a fixed set; vendors spell them too differently for that.
func NormalizeSocket(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "socket ", "")
	s = strings.ReplaceAll(s, "socket", "")
	return strings.Join(strings.Fields(s), " ")
}
