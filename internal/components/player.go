package components

import "nova-arena/internal/ecs"

// Player marks an entity as player-controlled and carries the stable
// gameplay identity assigned by the session layer.
type Player struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
	Lives    int    `json:"lives"`
}

func (*Player) Type() ecs.ComponentType { return ecs.CPlayer }
