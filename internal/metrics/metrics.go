// Package metrics exposes Prometheus collectors for the simulation loop,
// room/matchmaking occupancy, and the network layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every collector the server registers. Fields are public
// so the loop, room, and network packages can record directly against
// them without a facade method per metric.
type Metrics struct {
	TickDuration   prometheus.Histogram
	TicksTotal     prometheus.Counter
	TickBacklogDropped prometheus.Counter

	EntitiesActive prometheus.Gauge
	RoomsActive    *prometheus.GaugeVec
	PlayersOnline  prometheus.Gauge

	NetworkPeers         prometheus.Gauge
	NetworkFramesTotal   *prometheus.CounterVec
	NetworkQueueDepth    prometheus.Gauge
	ScriptErrorsTotal    prometheus.Counter
}

// New builds and registers every collector against registerer. Pass
// prometheus.DefaultRegisterer in production; a fresh
// prometheus.NewRegistry() in tests to avoid global collisions.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nova_arena_tick_duration_seconds",
			Help:    "Wall-clock time spent running one simulation tick.",
			Buckets: []float64{.0005, .001, .002, .004, .008, .016, .032, .064},
		}),
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nova_arena_ticks_total",
			Help: "Total number of simulation ticks executed.",
		}),
		TickBacklogDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nova_arena_tick_backlog_dropped_total",
			Help: "Number of backlogged ticks dropped to catch up to real time.",
		}),
		EntitiesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nova_arena_entities_active",
			Help: "Current number of live entities across all rooms.",
		}),
		RoomsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nova_arena_rooms_active",
			Help: "Current number of rooms, by state.",
		}, []string{"state"}),
		PlayersOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nova_arena_players_online",
			Help: "Current number of connected player sessions.",
		}),
		NetworkPeers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nova_arena_network_peers",
			Help: "Current number of open transport connections.",
		}),
		NetworkFramesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nova_arena_network_frames_total",
			Help: "Total frames processed, by direction.",
		}, []string{"direction"}),
		NetworkQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nova_arena_network_queue_depth",
			Help: "Current depth of the inbound event queue drained each tick.",
		}),
		ScriptErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nova_arena_script_errors_total",
			Help: "Total number of scripted-entity errors swallowed by the scripting bridge.",
		}),
	}

	if registerer != nil {
		registerer.MustRegister(
			m.TickDuration,
			m.TicksTotal,
			m.TickBacklogDropped,
			m.EntitiesActive,
			m.RoomsActive,
			m.PlayersOnline,
			m.NetworkPeers,
			m.NetworkFramesTotal,
			m.NetworkQueueDepth,
			m.ScriptErrorsTotal,
		)
	}
	return m
}

// RecordTick records one simulation step's wall-clock duration.
func (m *Metrics) RecordTick(d time.Duration) {
	m.TickDuration.Observe(d.Seconds())
	m.TicksTotal.Inc()
}
