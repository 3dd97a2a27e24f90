package components

import "nova-arena/internal/ecs"

// CollisionLayer is a single-bit tag identifying what an entity is, used
// together with CollisionMask (what it interacts with) to decide whether
// two colliders may collide: (A.Mask&B.Layer)!=0 && (B.Mask&A.Layer)!=0.
type CollisionLayer uint8

const (
	LayerPlayer CollisionLayer = 1 << iota
	LayerEnemy
	LayerPlayerProjectile
	LayerEnemyProjectile
	LayerWall
	LayerCollectible
	LayerPlayerModule
)

// Collider is an axis-aligned bounding box offset from the owning
// entity's Transform, tagged with a collision layer/mask pair.
type Collider struct {
	Width         float64        `json:"width"`
	Height        float64        `json:"height"`
	OffsetX       float64        `json:"offsetX"`
	OffsetY       float64        `json:"offsetY"`
	Layer         CollisionLayer `json:"layer"`
	Mask          CollisionLayer `json:"mask"`
	IsTrigger     bool           `json:"isTrigger"`
}

func (*Collider) Type() ecs.ComponentType { return ecs.CCollider }

// CanCollide reports whether two colliders on layer/mask pairs (a, b) may
// interact. It is symmetric by construction: swapping a and b and
// evaluating the other direction yields the same result precisely because
// both sides of the AND are evaluated.
func CanCollide(aLayer, aMask, bLayer, bMask CollisionLayer) bool {
	return aMask&bLayer != 0 && bMask&aLayer != 0
}
