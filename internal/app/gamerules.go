package app

import "nova-arena/internal/protocol"

// Gamerules is the tunable bundle a room spawns players with and
// broadcasts to clients on game start, recovered from
// GameruleBroadcaster: a fixed key set rather than free-form strings.
type Gamerules struct {
	Health   float64
	Speed    float64
	SpawnX   float64
	SpawnY   float64
	FireRate float64
	Damage   float64
}

// DefaultGamerules returns the built-in bundle: 100 HP, speed 200, spawn
// at the world centre, 4 shots/s, 10 damage. roomRuntime.SpawnPlayer
// seeds each player's Health, Velocity and Weapon from these values.
func DefaultGamerules(worldWidth, worldHeight float64) Gamerules {
	return Gamerules{
		Health:   100,
		Speed:    200,
		SpawnX:   worldWidth / 2,
		SpawnY:   worldHeight / 2,
		FireRate: 4,
		Damage:   10,
	}
}

// Packet renders g as the wire bundle sent on game start.
func (g Gamerules) Packet() protocol.GamerulePacket {
	return protocol.GamerulePacket{Gamerules: []protocol.Gamerule{
		{Key: protocol.GameruleHealth, Value: float32(g.Health)},
		{Key: protocol.GameruleSpeed, Value: float32(g.Speed)},
		{Key: protocol.GameruleSpawnX, Value: float32(g.SpawnX)},
		{Key: protocol.GameruleSpawnY, Value: float32(g.SpawnY)},
		{Key: protocol.GameruleFireRate, Value: float32(g.FireRate)},
		{Key: protocol.GameruleDamage, Value: float32(g.Damage)},
	}}
}
