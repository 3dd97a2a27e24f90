package components

import "nova-arena/internal/ecs"

// PendingDestroy marks an entity for removal at the end of the current
// tick. Attaching it never destroys anything immediately: only the
// cleanup phase (systems package) acts on it, so systems mid-iteration
// never observe a half-destroyed entity.
type PendingDestroy struct {
	Reason ecs.DestroyReason `json:"reason"`
}

func (*PendingDestroy) Type() ecs.ComponentType { return ecs.CPendingDestroy }
