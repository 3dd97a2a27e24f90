package components

import "nova-arena/internal/ecs"

// Health tracks hit points and a timed invincibility window. Damage and
// healing are applied by the systems package (see TakeDamage and Heal); this
// struct carries state only.
type Health struct {
	Current               int     `json:"current"`
	Max                    int     `json:"max"`
	Invincible             bool    `json:"invincible"`
	InvincibilityRemaining float64 `json:"invincibilityRemaining"` // seconds
}

func (*Health) Type() ecs.ComponentType { return ecs.CHealth }

// NewHealth returns a full-health component with max current/max.
func NewHealth(max int) *Health {
	return &Health{Current: max, Max: max}
}
