package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CanCollide_Symmetric(t *testing.T) {
	cases := []struct {
		name                   string
		aLayer, aMask          CollisionLayer
		bLayer, bMask          CollisionLayer
	}{
		{"player hits enemy projectile", LayerPlayer, LayerEnemyProjectile, LayerEnemyProjectile, LayerPlayer},
		{"wall with empty mask collides with nothing", LayerWall, 0, LayerPlayer, LayerWall},
		{"disjoint layers never collide", LayerPlayer, LayerEnemy, LayerCollectible, LayerWall},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			forward := CanCollide(tc.aLayer, tc.aMask, tc.bLayer, tc.bMask)
			backward := CanCollide(tc.bLayer, tc.bMask, tc.aLayer, tc.aMask)
			assert.Equal(t, forward, backward, "CanCollide must be symmetric under argument swap")
		})
	}
}

func Test_CanCollide_RequiresBothDirectionsToMatch(t *testing.T) {
	// Player's mask includes enemy, but enemy's mask does not include
	// player back: no collision, since both sides must reference the
	// other's layer.
	got := CanCollide(LayerPlayer, LayerEnemy, LayerEnemy, LayerWall)
	assert.False(t, got)
}

func Test_CanCollide_PlayerAndPlayerProjectileInteract(t *testing.T) {
	got := CanCollide(LayerPlayer, LayerPlayerProjectile|LayerCollectible, LayerPlayerProjectile, LayerPlayer)
	assert.True(t, got)
}
