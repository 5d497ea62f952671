package compat

// caseAccepts is the chassis compatibility matrix: a case of the key class
// accepts motherboards of every listed class. Each row is the key itself
// plus everything smaller.
var caseAccepts = map[FormFactor][]FormFactor{
	SSIEEB:   {SSIEEB, EATX, ATX, MicroATX, MiniITX},
	EATX:     {EATX, ATX, MicroATX, MiniITX},
	ATX:      {ATX, MicroATX, MiniITX},
	MicroATX: {MicroATX, MiniITX},
	MiniITX:  {MiniITX},
}

// CompatibleMotherboardFactors returns the motherboard classes a case of
// class caseFactor can hold. Unknown classes only accept themselves.
// The returned slice is a copy.
func CompatibleMotherboardFactors(caseFactor FormFactor) []FormFactor {
	accepted, ok := caseAccepts[caseFactor]
	if !ok {
		if caseFactor == "" {
			return nil
		}
		return []FormFactor{caseFactor}
	}
	out := make([]FormFactor, len(accepted))
	copy(out, accepted)
	return out
}

// FitsCase reports whether a motherboard of class board can be mounted in a
// case of class chassis. Answering "which boards fit this case" and "which
// cases hold this board" are both this one membership check.
func FitsCase(board, chassis FormFactor) bool {
	if board == "" || chassis == "" {
		return false
	}
	for _, f := range CompatibleMotherboardFactors(chassis) {
		if f == board {
			return true
		}
	}
	return false
}
