package components

import "nova-arena/internal/ecs"

// EnemyKind is a sum type over enemy archetypes, replacing the
// string-keyed ("basic", "heavy", ...) identification the source used.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyHeavy
	EnemyFast
	EnemyBoss
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyHeavy:
		return "Heavy"
	case EnemyFast:
		return "Fast"
	case EnemyBoss:
		return "Boss"
	default:
		return "Basic"
	}
}

// EnemyArchetype is the per-kind spawn table row referenced by the Spawn
// system: speed, starting HP, score award, and full AABB width/height.
type EnemyArchetype struct {
	Speed      float64
	Health     int
	ScoreValue int
	ColliderW  float64
	ColliderH  float64
}

// EnemyArchetypes is the fixed table keyed by EnemyKind, used by the Spawn
// system to instantiate enemies without inventing per-enemy magic numbers
// inline.
var EnemyArchetypes = map[EnemyKind]EnemyArchetype{
	EnemyBasic: {Speed: 80, Health: 20, ScoreValue: 100, ColliderW: 32, ColliderH: 32},
	EnemyHeavy: {Speed: 40, Health: 80, ScoreValue: 300, ColliderW: 48, ColliderH: 48},
	EnemyFast:  {Speed: 180, Health: 10, ScoreValue: 150, ColliderW: 24, ColliderH: 24},
	EnemyBoss:  {Speed: 30, Health: 1000, ScoreValue: 5000, ColliderW: 96, ColliderH: 96},
}

// Enemy tags a non-player hostile entity.
type Enemy struct {
	Kind       EnemyKind `json:"kind"`
	ScoreValue int       `json:"scoreValue"`
}

func (*Enemy) Type() ecs.ComponentType { return ecs.CEnemy }
