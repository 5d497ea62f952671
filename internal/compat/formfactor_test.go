package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibleMotherboardFactors_Table(t *testing.T) {
	assert.ElementsMatch(t, []FormFactor{SSIEEB, EATX, ATX, MicroATX, MiniITX}, CompatibleMotherboardFactors(SSIEEB))
	assert.ElementsMatch(t, []FormFactor{EATX, ATX, MicroATX, MiniITX}, CompatibleMotherboardFactors(EATX))
	assert.ElementsMatch(t, []FormFactor{ATX, MicroATX, MiniITX}, CompatibleMotherboardFactors(ATX))
	assert.ElementsMatch(t, []FormFactor{MicroATX, MiniITX}, CompatibleMotherboardFactors(MicroATX))
	assert.ElementsMatch(t, []FormFactor{MiniITX}, CompatibleMotherboardFactors(MiniITX))
}

func TestCompatibleMotherboardFactors_Monotonic(t *testing.T) {
	for i := range FormFactors {
		for j := i + 1; j < len(FormFactors); j++ {
			smaller := CompatibleMotherboardFactors(FormFactors[i])
			larger := CompatibleMotherboardFactors(FormFactors[j])
			assert.Subset(t, larger, smaller, "%s must accept everything %s accepts", FormFactors[j], FormFactors[i])
		}
	}
}

func TestCompatibleMotherboardFactors_AlwaysIncludesSelfAndSmallest(t *testing.T) {
	for _, f := range FormFactors {
		got := CompatibleMotherboardFactors(f)
		assert.Contains(t, got, f)
		assert.Contains(t, got, MiniITX)
	}
}

func TestCompatibleMotherboardFactors_UnknownIsIdentity(t *testing.T) {
	got := CompatibleMotherboardFactors("mid tower")
	require.Len(t, got, 1)
	assert.Equal(t, FormFactor("mid tower"), got[0])
	assert.Empty(t, CompatibleMotherboardFactors(""))
}

func TestCompatibleMotherboardFactors_ReturnsCopy(t *testing.T) {
	got := CompatibleMotherboardFactors(ATX)
	got[0] = "tampered"
	assert.Equal(t, ATX, CompatibleMotherboardFactors(ATX)[0])
}

func TestFitsCase(t *testing.T) {
	assert.True(t, FitsCase(MiniITX, ATX))
	assert.True(t, FitsCase(ATX, ATX))
	assert.False(t, FitsCase(EATX, ATX))
	assert.False(t, FitsCase(ATX, MicroATX))
	assert.True(t, FitsCase("mid tower", "mid tower"))
	assert.False(t, FitsCase("mid tower", ATX))
	assert.False(t, FitsCase("", ATX))
}
