package app

import (
	"math"
	"sync"

	"nova-arena/internal/components"
	"nova-arena/internal/ecs"
	"nova-arena/internal/protocol"
)

// roomInput buffers the latest PlayerInput per player and applies it to
// the registry once per simulation step, per loop.InputSink: input is
// drained on the loop's cadence, never on the network goroutine's.
type roomInput struct {
	mu       sync.Mutex
	latest   map[string]protocol.PlayerInput // playerID -> most recent input
	entities map[string]ecs.EntityID         // playerID -> spawned entity
}

func newRoomInput() *roomInput {
	return &roomInput{
		latest:   make(map[string]protocol.PlayerInput),
		entities: make(map[string]ecs.EntityID),
	}
}

// BindEntity associates a playerID with its spawned entity so future
// input resolves to the right registry row.
func (ri *roomInput) BindEntity(playerID string, id ecs.EntityID) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.entities[playerID] = id
}

// UnbindEntity drops a departed player's binding and any buffered input.
func (ri *roomInput) UnbindEntity(playerID string) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	delete(ri.entities, playerID)
	delete(ri.latest, playerID)
}

// SetInput records playerID's latest input, overwriting any input queued
// for the step that hasn't run yet.
func (ri *roomInput) SetInput(playerID string, in protocol.PlayerInput) {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.latest[playerID] = in
}

// Drain applies every buffered input to its bound entity's Velocity and
// Weapon components. Implements loop.InputSink.
func (ri *roomInput) Drain(reg *ecs.Registry) {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	for playerID, in := range ri.latest {
		id, ok := ri.entities[playerID]
		if !ok || !reg.Exists(id) {
			continue
		}
		applyInput(reg, id, in)
	}
}

func applyInput(reg *ecs.Registry, id ecs.EntityID, in protocol.PlayerInput) {
	if v, err := ecs.GetComponent[*components.Velocity](reg, id); err == nil {
		var dx, dy float64
		if in.Has(protocol.ActionMoveLeft) {
			dx -= 1
		}
		if in.Has(protocol.ActionMoveRight) {
			dx += 1
		}
		if in.Has(protocol.ActionMoveUp) {
			dy -= 1
		}
		if in.Has(protocol.ActionMoveDown) {
			dy += 1
		}
		if dx != 0 || dy != 0 {
			length := math.Hypot(dx, dy)
			dx, dy = dx/length, dy/length
		}
		v.DX, v.DY = dx, dy
	}
	if w, err := ecs.GetComponent[*components.Weapon](reg, id); err == nil {
		w.RequestToFire = in.Has(protocol.ActionShoot)
	}
}
