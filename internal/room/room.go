package room

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// State is the room lifecycle state machine: WAITING -> STARTING ->
// IN_PROGRESS -> FINISHED. Only the host may cause WAITING -> STARTING.
type State int

const (
	StateWaiting State = iota
	StateStarting
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "STARTING"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	default:
		return "WAITING"
	}
}

// startingGracePeriod is how long a room stays in STARTING before the
// loop actually begins, giving clients time to load the map.
const startingGracePeriod = 3 * time.Second

// GameLoop is the subset of internal/loop.Loop the room needs; an
// interface here keeps room testable without a live systems.Context.
type GameLoop interface {
	Run(ctx context.Context)
	Stop()
}

// ChatMessage is one line of room chat, either free text or a recognized
// slash command already dispatched.
type ChatMessage struct {
	FromPlayerID string
	Body         string
	At           time.Time
}

// Room groups a bounded set of sessions into one isolated simulation
// instance.
type Room struct {
	mu sync.Mutex

	ID          string
	Name        string
	IsPrivate   bool
	MaxPlayers  int
	HostID      string
	State       State
	SpeedMult   float64

	players      map[string]*Session // playerId -> session
	joinOrder    []string            // playerId, in join order, for host promotion
	spectators   map[string]*Session
	loop         GameLoop
	loopCancel   context.CancelFunc
	chatLog      []ChatMessage

	onBroadcast func(roomID string, msg string)
}

// NewRoom constructs a WAITING room with no members yet; the creator
// joins via Join immediately after, becoming host.
func NewRoom(id, name string, maxPlayers int, isPrivate bool, hostID string) *Room {
	return &Room{
		ID:         id,
		Name:       name,
		IsPrivate:  isPrivate,
		MaxPlayers: maxPlayers,
		HostID:     hostID,
		State:      StateWaiting,
		SpeedMult:  1.0,
		players:    make(map[string]*Session),
		spectators: make(map[string]*Session),
	}
}

// OnBroadcast registers the callback used to push a system/chat line to
// every member; the network layer supplies this.
func (r *Room) OnBroadcast(fn func(roomID string, msg string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onBroadcast = fn
}

// Join adds sess to the room as a player, or as a spectator if the room is
// already IN_PROGRESS and spectating is the only option left.
func (r *Room) Join(sess *Session) (asSpectator bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.State != StateWaiting && r.State != StateInProgress {
		return false, newInvalidState(fmt.Sprintf("room %s is %s", r.ID, r.State))
	}
	if len(r.players) >= r.MaxPlayers {
		if r.State != StateInProgress {
			return false, newCapacityExceeded(fmt.Sprintf("room %s is full", r.ID))
		}
		r.spectators[sess.PlayerID] = sess
		sess.IsSpectator = true
		sess.RoomID = r.ID
		return true, nil
	}

	r.players[sess.PlayerID] = sess
	r.joinOrder = append(r.joinOrder, sess.PlayerID)
	sess.IsSpectator = false
	sess.RoomID = r.ID
	if r.HostID == "" {
		r.HostID = sess.PlayerID
	}
	return false, nil
}

// Leave removes playerID from players or spectators. If the leaver was
// host, the next player by join order is promoted. Returns true if the
// room is now empty and should be torn down by the caller.
func (r *Room) Leave(playerID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.spectators, playerID)
	if _, ok := r.players[playerID]; ok {
		delete(r.players, playerID)
		r.removeFromJoinOrder(playerID)
		if r.HostID == playerID {
			r.promoteNextHost()
		}
	}
	return len(r.players) == 0 && len(r.spectators) == 0
}

func (r *Room) removeFromJoinOrder(playerID string) {
	for i, id := range r.joinOrder {
		if id == playerID {
			r.joinOrder = append(r.joinOrder[:i], r.joinOrder[i+1:]...)
			return
		}
	}
}

func (r *Room) promoteNextHost() {
	if len(r.joinOrder) == 0 {
		r.HostID = ""
		return
	}
	r.HostID = r.joinOrder[0]
}

// Kick removes targetID from the room's players. Only the host may kick,
// and the host cannot kick themself.
func (r *Room) Kick(hostID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hostID != r.HostID {
		return newForbidden("only the host may kick")
	}
	if targetID == hostID {
		return newForbidden("host cannot kick themself")
	}
	if _, ok := r.players[targetID]; !ok {
		return newNotFound(fmt.Sprintf("player %s is not in this room", targetID))
	}
	delete(r.players, targetID)
	r.removeFromJoinOrder(targetID)
	return nil
}

// StartGame transitions WAITING -> STARTING (immediately) and, after a
// grace period, STARTING -> IN_PROGRESS, at which point runLoop is invoked
// to construct and run this room's GameLoop. Only the host may call this.
func (r *Room) StartGame(hostID string, runLoop func() GameLoop) error {
	r.mu.Lock()
	if hostID != r.HostID {
		r.mu.Unlock()
		return newForbidden("only the host may start the game")
	}
	if r.State != StateWaiting {
		r.mu.Unlock()
		return newInvalidState(fmt.Sprintf("room %s is %s, not WAITING", r.ID, r.State))
	}
	if len(r.players) < 1 {
		r.mu.Unlock()
		return newInvalidState("at least one player is required to start")
	}
	r.State = StateStarting
	r.mu.Unlock()

	go func() {
		time.Sleep(startingGracePeriod)
		r.mu.Lock()
		if r.State != StateStarting {
			r.mu.Unlock()
			return
		}
		r.State = StateInProgress
		gameLoop := runLoop()
		ctx, cancel := context.WithCancel(context.Background())
		r.loop = gameLoop
		r.loopCancel = cancel
		r.mu.Unlock()
		gameLoop.Run(ctx)
	}()
	return nil
}

// Finish transitions the room to FINISHED and stops its loop, if running.
func (r *Room) Finish(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = StateFinished
	if r.loopCancel != nil {
		r.loopCancel()
	}
	if r.loop != nil {
		r.loop.Stop()
	}
}

// PlayerCount returns the number of non-spectator members.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Roster returns player ids in join order, for the /list command and
// room-list broadcasts.
func (r *Room) Roster() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.joinOrder))
	copy(out, r.joinOrder)
	return out
}

// Chat appends a chat line and, if it starts with "/", dispatches it as a
// command instead of broadcasting it as text; an unknown command gets an
// error reply. Recovered from
// original_source/server/Commands (a CommandHandler/ICommand dispatcher
// the distilled spec dropped): /kick, /list, /help.
func (r *Room) Chat(fromPlayerID, body string) {
	r.mu.Lock()
	r.chatLog = append(r.chatLog, ChatMessage{FromPlayerID: fromPlayerID, Body: body, At: time.Now()})
	broadcast := r.onBroadcast
	r.mu.Unlock()

	if strings.HasPrefix(body, "/") {
		r.dispatchCommand(fromPlayerID, body, broadcast)
		return
	}
	if broadcast != nil {
		broadcast(r.ID, fmt.Sprintf("%s: %s", fromPlayerID, body))
	}
}

func (r *Room) dispatchCommand(fromPlayerID, body string, broadcast func(string, string)) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}
	reply := func(msg string) {
		if broadcast != nil {
			broadcast(r.ID, msg)
		}
	}

	switch fields[0] {
	case "/help":
		reply("commands: /kick <player>, /list, /help")
	case "/list":
		reply("players: " + strings.Join(r.Roster(), ", "))
	case "/kick":
		if len(fields) < 2 {
			reply("usage: /kick <player>")
			return
		}
		if err := r.Kick(fromPlayerID, fields[1]); err != nil {
			reply(err.Error())
			return
		}
		reply(fmt.Sprintf("%s was kicked", fields[1]))
	default:
		reply(fmt.Sprintf("unknown command %q", fields[0]))
	}
}
