package network

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"nova-arena/internal/protocol"
)

const (
	// MaxPeers bounds total concurrent connections, independent of any
	// per-room capacity enforced by internal/room.
	MaxPeers = 256

	writeTimeout = 5 * time.Second
	pongWait     = 30 * time.Second
	pingInterval = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Host accepts websocket connections, frames traffic through
// internal/protocol, and exposes every connect/disconnect/message
// occurrence as an Event the simulation thread drains once per tick. It is
// the reliable-datagram substitute named in the concurrency design: no
// game state is touched from the network goroutines, only the event
// queue.
type Host struct {
	mu         sync.Mutex
	peers      map[PeerHandle]*peer
	nextHandle uint64

	eventsMu sync.Mutex
	events   []Event

	log zerolog.Logger
}

// New returns a Host ready to accept connections via ServeHTTP.
func New(log zerolog.Logger) *Host {
	return &Host{
		peers: make(map[PeerHandle]*peer),
		log:   log.With().Str("component", "network").Logger(),
	}
}

// ServeHTTP upgrades an incoming HTTP request to a websocket connection
// and spawns its read/write pumps. Wire this into an http.ServeMux at the
// listen path chosen by configuration.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	count := len(h.peers)
	h.mu.Unlock()
	if count >= MaxPeers {
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	handle := PeerHandle(atomic.AddUint64(&h.nextHandle, 1))
	p := newPeer(handle, conn, r.RemoteAddr)

	h.mu.Lock()
	h.peers[handle] = p
	h.mu.Unlock()

	h.pushEvent(Event{Kind: EventConnected, Peer: handle, RemoteIP: p.remoteIP})

	go h.writePump(p)
	go h.readPump(p)
}

func (h *Host) readPump(p *peer) {
	defer h.disconnect(p)

	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		if !p.limiter.Allow() {
			h.log.Warn().Uint64("peer", uint64(p.handle)).Msg("ingress rate exceeded, dropping peer")
			return
		}

		msgType, body, err := protocol.DecodeFrame(raw)
		if err != nil {
			h.log.Warn().Err(err).Uint64("peer", uint64(p.handle)).Msg("malformed frame")
			_ = h.Kick(p.handle, err.Error())
			<-p.closed
			return
		}

		h.pushEvent(Event{Kind: EventMessage, Peer: p.handle, MsgType: msgType, Payload: body})
	}
}

func (h *Host) writePump(p *peer) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.closed:
			return
		case frame, ok := <-p.outbound:
			if !ok {
				return
			}
			p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := p.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				h.disconnect(p)
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.disconnect(p)
				return
			}
		}
	}
}

func (h *Host) disconnect(p *peer) {
	h.mu.Lock()
	_, present := h.peers[p.handle]
	delete(h.peers, p.handle)
	h.mu.Unlock()
	if !present {
		return
	}
	p.close()
	h.pushEvent(Event{Kind: EventDisconnected, Peer: p.handle})
}

// Send frames payload under msgType and queues it for the peer's writer
// goroutine. A full outbound queue drops the frame rather than blocking
// the caller; the caller is always the simulation thread.
func (h *Host) Send(peer PeerHandle, msgType protocol.MessageType, payload []byte) error {
	h.mu.Lock()
	p, ok := h.peers[peer]
	h.mu.Unlock()
	if !ok {
		return nil
	}
	frame, err := protocol.EncodeFrame(msgType, payload)
	if err != nil {
		return err
	}
	p.enqueue(frame)
	return nil
}

// Broadcast sends the same frame to every connected peer except any in
// exclude.
func (h *Host) Broadcast(msgType protocol.MessageType, payload []byte, exclude ...PeerHandle) error {
	frame, err := protocol.EncodeFrame(msgType, payload)
	if err != nil {
		return err
	}
	skip := make(map[PeerHandle]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for handle, p := range h.peers {
		if skip[handle] {
			continue
		}
		p.enqueue(frame)
	}
	return nil
}

// Kick sends a Kick frame then forcibly disconnects the peer.
func (h *Host) Kick(peer PeerHandle, reason string) error {
	body, err := protocol.EncodeKick(protocol.Kick{Reason: reason})
	if err != nil {
		return err
	}
	_ = h.Send(peer, protocol.MsgKick, body)

	h.mu.Lock()
	p, ok := h.peers[peer]
	h.mu.Unlock()
	if ok {
		time.AfterFunc(writeTimeout, func() { h.disconnect(p) })
	}
	return nil
}

func (h *Host) pushEvent(e Event) {
	h.eventsMu.Lock()
	h.events = append(h.events, e)
	h.eventsMu.Unlock()
}

// Drain returns every event queued since the last Drain and clears the
// queue. Call once per tick from the simulation thread.
func (h *Host) Drain() []Event {
	h.eventsMu.Lock()
	defer h.eventsMu.Unlock()
	if len(h.events) == 0 {
		return nil
	}
	drained := h.events
	h.events = nil
	return drained
}

// PeerCount returns the number of currently connected peers.
func (h *Host) PeerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}
