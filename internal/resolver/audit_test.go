package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/model"
)

func TestAudit_ReportsEveryConflict(t *testing.T) {
	conflicts := New(nil, nil).Audit(fullState())

	require.Len(t, conflicts, 2)
	assert.Equal(t, "motherboard:b", conflicts[0].Component)
	assert.Equal(t, "cpu:c", conflicts[0].Against)
	assert.Equal(t, AxisSocket, conflicts[0].Axis)

	assert.Equal(t, "psu:p", conflicts[1].Component)
	assert.Equal(t, "gpu:g", conflicts[1].Against)
	assert.Equal(t, AxisMinWattage, conflicts[1].Axis)
}

func TestAudit_CompatibleBuild(t *testing.T) {
	s := build.Empty().
		Select(model.CategoryCPU, cpu("c", "AM5", 3000)).
		Select(model.CategoryMotherboard, motherboard("b", "AM5", "ATX", 1500)).
		Select(model.CategoryCase, chassis("k", "E-ATX", 1200)).
		Select(model.CategoryGPU, gpu("g", 750, 9000)).
		Select(model.CategoryPSU, psu("p", 850, 1000))

	assert.Empty(t, New(nil, nil).Audit(s))
}

func TestAudit_DoesNotClearSelections(t *testing.T) {
	s := fullState()
	New(nil, nil).Audit(s)
	assert.Equal(t, 5, s.Len())
}

func TestAudit_CaseTooSmall(t *testing.T) {
	s := build.Empty().
		Select(model.CategoryMotherboard, motherboard("b", "AM5", "ATX", 1500)).
		Select(model.CategoryCase, chassis("k", "Mini-ITX", 700))

	conflicts := New(nil, nil).Audit(s)
	require.Len(t, conflicts, 1)
	assert.Equal(t, AxisFormFactor, conflicts[0].Axis)
	assert.Contains(t, conflicts[0].Message, "mini-itx")
}
