package room

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// queueEntry is one waiting player plus when they joined the queue, used
// to bundle the *oldest* waiters into a room first.
type queueEntry struct {
	playerID  string
	enqueueAt time.Time
}

// MatchmakingService bundles queued players into fresh rooms once the
// queue reaches a configured threshold. AllowSpectatorFallback defaults to
// false and is not read by Tick: matchmaking never places a queued player
// into a room as a spectator, whatever the flag's value.
type MatchmakingService struct {
	mu sync.Mutex

	lobby      *Lobby
	queue      []queueEntry
	minPlayers int
	maxPlayers int
	matchCount uint64

	AllowSpectatorFallback bool

	// limiter paces AddPlayer to guard the queue against a join-flood; it
	// does not gate Tick, which a caller drives on its own cadence.
	limiter *rate.Limiter
}

// NewMatchmakingService returns a service that bundles rooms of
// [minPlayers, maxPlayers] once the queue reaches minPlayers.
func NewMatchmakingService(lobby *Lobby, minPlayers, maxPlayers int) *MatchmakingService {
	return &MatchmakingService{
		lobby:      lobby,
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
		limiter:    rate.NewLimiter(rate.Limit(20), 40),
	}
}

// AddPlayer enqueues playerID if not already queued.
func (m *MatchmakingService) AddPlayer(playerID string) error {
	if !m.limiter.Allow() {
		return newCapacityExceeded("matchmaking queue join rate exceeded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.queue {
		if e.playerID == playerID {
			return nil
		}
	}
	m.queue = append(m.queue, queueEntry{playerID: playerID, enqueueAt: time.Now()})
	return nil
}

// RemovePlayer drops playerID from the queue, if present.
func (m *MatchmakingService) RemovePlayer(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.queue {
		if e.playerID == playerID {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// QueueLength reports how many players are currently queued.
func (m *MatchmakingService) QueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Tick bundles the oldest min(len(queue), maxPlayers) players into a new
// room when the queue has reached minPlayers; otherwise it tries to place
// the single oldest waiter into any public, WAITING, non-full custom room
// instead of leaving them queued indefinitely. It never joins a player as
// a spectator. Returns the room created or joined this tick, if any.
func (m *MatchmakingService) Tick() *Room {
	m.mu.Lock()
	if len(m.queue) >= m.minPlayers {
		batchSize := len(m.queue)
		if batchSize > m.maxPlayers {
			batchSize = m.maxPlayers
		}
		batch := m.queue[:batchSize]
		m.queue = m.queue[batchSize:]
		m.matchCount++
		roomID := fmt.Sprintf("match_%d", m.matchCount)
		m.mu.Unlock()

		r := NewRoom(roomID, roomID, m.maxPlayers, false, "")
		for _, e := range batch {
			_, _ = r.Join(&Session{PlayerID: e.playerID})
		}
		m.lobby.RegisterRoom(r)
		return r
	}

	if len(m.queue) == 0 {
		m.mu.Unlock()
		return nil
	}
	oldest := m.queue[0]
	m.mu.Unlock()

	for _, r := range m.lobby.PublicRooms() {
		if !strings.HasPrefix(r.ID, "custom_") {
			continue
		}
		if r.PlayerCount() >= r.MaxPlayers {
			continue
		}
		if _, err := r.Join(&Session{PlayerID: oldest.playerID}); err == nil {
			m.RemovePlayer(oldest.playerID)
			return r
		}
	}
	return nil
}
