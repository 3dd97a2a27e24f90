package components

import "nova-arena/internal/ecs"

// CollectibleKind selects how the Collision/Health-adjacent pickup logic
// applies a Collectible's payload to the picking-up player.
type CollectibleKind int

const (
	CollectiblePowerUp CollectibleKind = iota
	CollectibleUpgrade
	CollectibleHealthPack
	CollectibleScore
)

// Collectible is a pickup. PayloadBuff/PayloadValue are interpreted
// according to Kind: for PowerUp, PayloadBuff names the BuffKind granted
// and PayloadValue its magnitude; for HealthPack, PayloadValue is the
// heal amount; for Score, PayloadValue is the points awarded.
type Collectible struct {
	Kind         CollectibleKind `json:"kind"`
	PayloadBuff  BuffKind        `json:"payloadBuff"`
	PayloadValue float64         `json:"payloadValue"`
}

func (*Collectible) Type() ecs.ComponentType { return ecs.CCollectible }
