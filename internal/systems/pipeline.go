package systems

// Pipeline runs its Systems in the fixed order they were given. The order
// is established once, at construction, per §4.2: Movement, Collision,
// Damage, Health, Spawn, AI, Projectile, Boundary, Weapon, Orbital,
// Scripting, Buff, MapScroll, Cleanup.
type Pipeline struct {
	stages []System
}

// NewPipeline returns the standard 14-stage room pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		stages: []System{
			NewMovementSystem(),
			NewCollisionSystem(),
			NewDamageSystem(),
			NewHealthSystem(),
			NewSpawnSystem(),
			NewAISystem(),
			NewProjectileSystem(),
			NewBoundarySystem(),
			NewWeaponSystem(),
			NewOrbitalSystem(),
			NewScriptingSystem(),
			NewBuffSystem(),
			NewMapScrollSystem(),
			NewCleanupSystem(),
		},
	}
}

// Run executes every enabled stage in order against ctx. Collisions is
// reset before Movement runs so each tick starts with an empty event list.
func (p *Pipeline) Run(ctx *Context, dt float64) {
	ctx.Collisions = ctx.Collisions[:0]
	for _, stage := range p.stages {
		if en, ok := stage.(interface{ Enabled() bool }); ok && !en.Enabled() {
			continue
		}
		stage.Update(ctx, dt)
	}
}
