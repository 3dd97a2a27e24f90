package app

import (
	"context"
	"hash/fnv"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
	"nova-arena/internal/loop"
	"nova-arena/internal/network"
	"nova-arena/internal/protocol"
	"nova-arena/internal/room"
	"nova-arena/internal/scripting"
	"nova-arena/internal/systems"
)

// roomSeed derives a deterministic simulation seed from a room id, so a
// room's id alone (not wall-clock entropy) fixes the entity-id and
// randomness sequence it will produce.
func roomSeed(roomID string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(roomID))
	return h.Sum64()
}

// roomRuntime binds one room.Room to the simulation machinery backing it:
// a registry, a fixed-timestep loop, its own scripting bridge (gopher-lua
// states are not safe to share across goroutines), and the input buffer
// the network layer feeds.
type roomRuntime struct {
	room   *room.Room
	ctx    *systems.Context
	loop   *loop.Loop
	input  *roomInput
	bridge *scripting.Bridge
	rules  Gamerules

	host *network.Host
	log  zerolog.Logger

	playerPeers map[string]network.PeerHandle // playerID -> peer, for targeted sends
}

func newRoomRuntime(r *room.Room, host *network.Host, rules Gamerules, worldW, worldH float64, log zerolog.Logger) *roomRuntime {
	bridge := scripting.New(log)
	seed := roomSeed(r.ID)
	simCtx := &systems.Context{
		Registry: ecs.NewRegistry(seed),
		Events:   ecs.NewEventBus(),
		Bounds:   systems.Bounds{Width: worldW, Height: worldH, Margin: 64},
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Log:      log,
		Scripts:  bridge,
	}
	in := newRoomInput()
	rr := &roomRuntime{
		room:        r,
		ctx:         simCtx,
		input:       in,
		bridge:      bridge,
		rules:       rules,
		host:        host,
		log:         log.With().Str("room", r.ID).Logger(),
		playerPeers: make(map[string]network.PeerHandle),
	}

	simCtx.Events.Subscribe(rr.onEntityDestroyed)

	l := loop.New(simCtx, in, log)
	l.OnTick(rr.onTick)
	rr.loop = l

	r.OnBroadcast(func(roomID, msg string) {
		body, err := protocol.EncodeChat(protocol.Chat{Body: msg})
		if err != nil {
			return
		}
		rr.broadcast(protocol.MsgChat, body)
	})

	return rr
}

// GameLoop satisfies room.GameLoop so Room.StartGame can drive it.
func (rr *roomRuntime) Run(ctx context.Context) { rr.loop.Run(ctx) }
func (rr *roomRuntime) Stop()                   { rr.loop.Stop() }

// SpawnPlayer materializes playerID as a controllable entity at the
// room's configured spawn point and binds it to its peer for targeted
// delivery (the personalized GameStart reply) and input routing.
func (rr *roomRuntime) SpawnPlayer(playerID string, peer network.PeerHandle) ecs.EntityID {
	reg := rr.ctx.Registry
	id := reg.NewEntity()
	_ = ecs.SetComponent(reg, id, components.NewTransform(rr.rules.SpawnX, rr.rules.SpawnY))
	_ = ecs.SetComponent(reg, id, &components.Velocity{Speed: rr.rules.Speed, BaseSpeed: rr.rules.Speed})
	_ = ecs.SetComponent(reg, id, components.NewHealth(int(rr.rules.Health)))
	_ = ecs.SetComponent(reg, id, &components.Player{PlayerID: playerID, Lives: 3})
	_ = ecs.SetComponent(reg, id, &components.Weapon{
		FireRate: rr.rules.FireRate, BaseFireRate: rr.rules.FireRate,
		Damage: rr.rules.Damage, BaseDamage: rr.rules.Damage,
		ProjectileSpeed: 400,
	})

	rr.input.BindEntity(playerID, id)
	rr.playerPeers[playerID] = peer
	return id
}

// DespawnPlayer destroys playerID's entity and drops its bindings, for a
// mid-match disconnect.
func (rr *roomRuntime) DespawnPlayer(playerID string) {
	rr.input.mu.Lock()
	id, ok := rr.input.entities[playerID]
	rr.input.mu.Unlock()
	if ok {
		rr.ctx.Registry.DestroyEntity(id)
	}
	rr.input.UnbindEntity(playerID)
	delete(rr.playerPeers, playerID)
}

// HandleInput buffers a player's latest input for the next simulation
// step.
func (rr *roomRuntime) HandleInput(playerID string, in protocol.PlayerInput) {
	rr.input.SetInput(playerID, in)
}

func (rr *roomRuntime) broadcast(msgType protocol.MessageType, payload []byte) {
	peers := make([]network.PeerHandle, 0, len(rr.playerPeers))
	for _, p := range rr.playerPeers {
		peers = append(peers, p)
	}
	for _, p := range peers {
		_ = rr.host.Send(p, msgType, payload)
	}
}

func (rr *roomRuntime) onTick(tick uint64) {
	state := rr.snapshot(uint32(tick))
	buf, err := protocol.EncodeGameState(state)
	if err != nil {
		rr.log.Warn().Err(err).Msg("failed to encode game state")
		return
	}
	rr.broadcast(protocol.MsgGameState, buf)
}

func (rr *roomRuntime) onEntityDestroyed(ev ecs.EntityDestroyed) {
	buf := protocol.EncodeEntityDestroyed(protocol.EntityDestroyed{
		EntityID: uint32(ev.EntityID),
		Reason:   destroyReasonToWire(ev.Reason),
	})
	rr.broadcast(protocol.MsgEntityDestroyed, buf)
}

func destroyReasonToWire(r ecs.DestroyReason) protocol.EntityDestroyedReason {
	switch r {
	case ecs.ReasonOutOfBounds:
		return protocol.ReasonOutOfBounds
	case ecs.ReasonExpired:
		return protocol.ReasonExpired
	case ecs.ReasonKilled:
		return protocol.ReasonKilledByPlayer
	default:
		return protocol.ReasonKilledByPlayer
	}
}

var snapshotMask = ecs.MaskOf(ecs.CTransform)

// snapshot renders every positioned entity into a wire GameState.
func (rr *roomRuntime) snapshot(tick uint32) protocol.GameState {
	reg := rr.ctx.Registry
	ids := reg.Query(snapshotMask)
	out := protocol.GameState{ServerTick: tick, Entities: make([]protocol.EntityState, 0, len(ids))}
	for _, id := range ids {
		t, err := ecs.GetComponent[*components.Transform](reg, id)
		if err != nil {
			continue
		}
		health := int32(-1)
		if h, err := ecs.GetComponent[*components.Health](reg, id); err == nil {
			health = int32(h.Current)
		}
		out.Entities = append(out.Entities, protocol.EntityState{
			EntityID: uint32(id),
			Type:     uint8(entityKind(reg, id)),
			X:        float32(t.X),
			Y:        float32(t.Y),
			Health:   health,
		})
	}
	return out
}

func entityKind(reg *ecs.Registry, id ecs.EntityID) protocol.EntityKind {
	switch {
	case ecs.HasComponent[*components.Player](reg, id):
		return protocol.EntityKindPlayer
	case ecs.HasComponent[*components.Enemy](reg, id):
		return protocol.EntityKindEnemy
	case ecs.HasComponent[*components.Projectile](reg, id):
		return protocol.EntityKindProjectile
	case ecs.HasComponent[*components.Collectible](reg, id):
		return protocol.EntityKindCollectible
	case ecs.HasComponent[*components.OrbitalModule](reg, id):
		return protocol.EntityKindOrbitalModule
	default:
		return protocol.EntityKindOther
	}
}
