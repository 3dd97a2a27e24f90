// Package loop runs a room's fixed-timestep simulation: it drains player
// input, steps the systems pipeline a deterministic number of times per
// wall-clock tick, and republishes state for the network layer to
// broadcast.
package loop

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"nova-arena/internal/ecs"
	"nova-arena/internal/systems"
)

const (
	// TickRate is the fixed simulation rate in Hz.
	TickRate = 60
	// TickDuration is the fixed per-step delta, derived from TickRate.
	TickDuration = time.Second / TickRate
	dt           = 1.0 / float64(TickRate)

	// maxBacklogSteps bounds how many simulation steps a single wall-clock
	// tick will run to catch up after a stall (GC pause, slow host). Beyond
	// this the accumulator is dropped rather than spiral into a death loop
	// of ever-larger catch-up batches.
	maxBacklogSteps = 10
)

// InputSink lets the host deliver input before a step runs. It is applied
// once per simulation step, never once per wall-clock tick, so a laggy
// host still produces deterministic ticks.
type InputSink interface {
	Drain(reg *ecs.Registry)
}

// Loop owns one room's fixed-timestep game loop.
type Loop struct {
	pipeline *systems.Pipeline
	ctx      *systems.Context
	input    InputSink
	log      zerolog.Logger

	accumulator time.Duration
	lastTick    time.Time
	ticker      *time.Ticker
	stopCh      chan struct{}
	done        chan struct{}

	tickCount uint64
	onTick    func(tickCount uint64)
}

// New builds a Loop around an already-populated systems.Context.
func New(simCtx *systems.Context, input InputSink, log zerolog.Logger) *Loop {
	return &Loop{
		pipeline: systems.NewPipeline(),
		ctx:      simCtx,
		input:    input,
		log:      log.With().Str("component", "loop").Logger(),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// OnTick registers a callback invoked after every simulation step, with the
// cumulative step count; used to drive snapshot broadcast at the caller's
// own cadence (e.g. every step, or every other step).
func (l *Loop) OnTick(fn func(tickCount uint64)) {
	l.onTick = fn
}

// Run blocks, ticking the simulation at TickRate until ctx is canceled or
// Stop is called. It is meant to run on its own goroutine per room.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	l.ticker = time.NewTicker(TickDuration)
	defer l.ticker.Stop()
	l.lastTick = time.Now()

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("loop stopped: context canceled")
			return
		case <-l.stopCh:
			l.log.Info().Msg("loop stopped")
			return
		case now := <-l.ticker.C:
			l.accumulator += now.Sub(l.lastTick)
			l.lastTick = now

			steps := 0
			for l.accumulator >= TickDuration && steps < maxBacklogSteps {
				l.step()
				l.accumulator -= TickDuration
				steps++
			}
			if steps == maxBacklogSteps && l.accumulator >= TickDuration {
				l.log.Warn().Msg("loop fell behind, dropping backlog")
				l.accumulator = 0
			}
		}
	}
}

// Stop requests the loop to exit and blocks until it has.
func (l *Loop) Stop() {
	close(l.stopCh)
	<-l.done
}

func (l *Loop) step() {
	if l.input != nil {
		l.input.Drain(l.ctx.Registry)
	}
	l.pipeline.Run(l.ctx, dt)
	l.tickCount++
	if l.onTick != nil {
		l.onTick(l.tickCount)
	}
}
