package components

import "nova-arena/internal/ecs"

// SpawnRequest is one enemy to materialize within a wave, spawnDelay
// seconds after the wave starts.
type SpawnRequest struct {
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	EnemyType  EnemyKind `json:"enemyType"`
	ScriptPath string    `json:"scriptPath,omitempty"`
	Health     int       `json:"health"`
	ScoreValue int       `json:"scoreValue"`
	SpawnDelay float64   `json:"spawnDelay"`
	HasSpawned bool      `json:"hasSpawned"`
}

// Wave is an ordered batch of spawn requests plus the delay before the
// next wave begins once this one is fully spawned.
type Wave struct {
	Requests     []SpawnRequest `json:"requests"`
	InterWaveGap float64        `json:"interWaveGap"` // seconds
}

// Spawner declaratively configures enemy waves for a room and tracks
// runtime progress through them.
type Spawner struct {
	Waves         []Wave  `json:"waves"`
	CurrentWave   int     `json:"currentWave"`
	ElapsedInWave float64 `json:"elapsedInWave"`
	Active        bool    `json:"active"`
}

func (*Spawner) Type() ecs.ComponentType { return ecs.CSpawner }
