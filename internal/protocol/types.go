// Package protocol defines the wire format between client and server:
// frame header, message type codes, and the typed payloads carried in
// each frame.
package protocol

// MessageType identifies the payload carried in a frame. The type space
// is partitioned by direction and purpose; see the code ranges below.
type MessageType uint16

const (
	// 0x0001..0x0006: connection control, either direction.
	MsgHandshakeRequest  MessageType = 0x0001
	MsgHandshakeResponse MessageType = 0x0002
	MsgDisconnect        MessageType = 0x0003
	MsgKick              MessageType = 0x0004
	MsgPing              MessageType = 0x0005
	MsgPong              MessageType = 0x0006

	// 0x0100..0x01FF: server to client, entity lifecycle and snapshots.
	MsgGameState       MessageType = 0x0100
	MsgEntityDestroyed MessageType = 0x0101
	MsgGameStart       MessageType = 0x0102
	MsgGameOver        MessageType = 0x0103

	// 0x0200..0x02FF: client to server, input.
	MsgPlayerInput MessageType = 0x0200

	// 0x03xx: room/lobby operations, either direction.
	MsgRoomCreate    MessageType = 0x0300
	MsgRoomJoin      MessageType = 0x0301
	MsgRoomLeave     MessageType = 0x0302
	MsgRoomKick      MessageType = 0x0303
	MsgRoomStart     MessageType = 0x0304
	MsgRoomList      MessageType = 0x0305
	MsgMatchmakeJoin MessageType = 0x0306

	// 0x04xx: chat, either direction.
	MsgChat MessageType = 0x0400

	// 0x05xx: auth, either direction.
	MsgAuthRegister MessageType = 0x0500
	MsgAuthLogin    MessageType = 0x0501
	MsgAuthResult   MessageType = 0x0502

	// 0x06xx: gamerule bundle, server to client.
	MsgGamerules MessageType = 0x0600
)

// EntityKind labels EntityState.Type for client-side rendering; it is a
// coarser classification than any single ecs.ComponentType.
type EntityKind uint8

const (
	EntityKindPlayer EntityKind = iota
	EntityKindEnemy
	EntityKindProjectile
	EntityKindCollectible
	EntityKindOrbitalModule
	EntityKindOther
)

// EntityDestroyedReason is the wire-level reason code accompanying
// EntityDestroyed, distinct from ecs.DestroyReason: it folds Collision in
// alongside the simulation's own destruction reasons, since from a
// client's perspective a collision-caused destruction and a
// damage-caused one are the same observable event.
type EntityDestroyedReason uint8

const (
	ReasonKilledByPlayer EntityDestroyedReason = iota
	ReasonOutOfBounds
	ReasonCollision
	ReasonExpired
)

// Frame size ceilings, per the protocol-violation policy: oversized or
// truncated frames are dropped and the peer is kicked.
const (
	MaxFrameLength  = 10 * 1024 * 1024 // 10 MiB
	MaxStringLength = 1 * 1024 * 1024  // 1 MiB
)

// Gamerule keys, recovered from original_source's GameruleBroadcaster:
// the fixed key set a GamerulePacket may carry, instead of free-form
// strings.
const (
	GameruleHealth    = "PLAYER_HEALTH"
	GameruleSpeed     = "PLAYER_SPEED"
	GameruleSpawnX    = "PLAYER_SPAWN_X"
	GameruleSpawnY    = "PLAYER_SPAWN_Y"
	GameruleFireRate  = "PLAYER_FIRE_RATE"
	GameruleDamage    = "PLAYER_DAMAGE"
)
