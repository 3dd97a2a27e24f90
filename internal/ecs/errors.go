package ecs

import "fmt"

// Error codes for the ECS taxonomy. Kept deliberately small: only the
// failure modes the registry and queries can actually produce.
const (
	ErrMissingEntity        = "MISSING_ENTITY"
	ErrMissingComponent     = "MISSING_COMPONENT"
	ErrComponentCapExceeded = "COMPONENT_CAP_EXCEEDED"
)

// ECSError carries a machine-readable code plus the entity/component
// context that produced it.
type ECSError struct {
	Code      string
	Message   string
	Entity    EntityID
	Component ComponentType
	hasComp   bool
}

func (e *ECSError) Error() string {
	if e.hasComp && e.Entity != InvalidEntityID {
		return fmt.Sprintf("[%s] %s (entity=%d, component=%s)", e.Code, e.Message, e.Entity, e.Component)
	}
	if e.Entity != InvalidEntityID {
		return fmt.Sprintf("[%s] %s (entity=%d)", e.Code, e.Message, e.Entity)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func errMissingEntity(id EntityID) *ECSError {
	return &ECSError{Code: ErrMissingEntity, Message: "entity does not exist", Entity: id}
}

func errMissingComponent(id EntityID, ct ComponentType) *ECSError {
	return &ECSError{Code: ErrMissingComponent, Message: "component not attached to entity", Entity: id, Component: ct, hasComp: true}
}

func errComponentCapExceeded(limit int) *ECSError {
	return &ECSError{Code: ErrComponentCapExceeded, Message: fmt.Sprintf("component type count exceeds cap of %d", limit)}
}
