package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Buff_AddNewKind(t *testing.T) {
	b := &Buff{}
	b.Add(BuffSpeedMultiplier, 5.0, 1.5, false)

	assert.Len(t, b.Active, 1)
	assert.True(t, b.Has(BuffSpeedMultiplier))
	assert.False(t, b.Has(BuffDamageMultiplier))
}

func Test_Buff_AddExistingKindRefreshes(t *testing.T) {
	b := &Buff{}
	b.Add(BuffShield, 2.0, 0, false)
	b.Add(BuffShield, 10.0, 0, false)

	assert.Len(t, b.Active, 1, "adding an existing kind should refresh in place, not append")
	assert.Equal(t, 10.0, b.Active[0].RemainingDuration)
}

func Test_Buff_PermanentIgnoresDuration(t *testing.T) {
	b := &Buff{}
	b.Add(BuffRegen, 0, 3.0, true)

	assert.True(t, b.Active[0].Permanent)
	assert.True(t, b.Has(BuffRegen))
}
