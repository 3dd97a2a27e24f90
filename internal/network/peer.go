// Package network hosts the reliable-datagram substitute transport: a
// websocket listener that frames every message through internal/protocol
// and exposes connect/disconnect/receive as a single thread-safe event
// queue the simulation thread drains once per tick.
package network

import (
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"nova-arena/internal/room"
)

// PeerHandle identifies a transport connection. It is room.PeerHandle under
// the hood so the room and network layers share one peer identity without
// either importing the other's connection types.
type PeerHandle = room.PeerHandle

const (
	outboundQueueDepth = 64
	ingressRateLimit   = 40 // frames/sec sustained
	ingressBurst       = 80
)

// peer wraps one accepted websocket connection. Writes are serialized
// through outbound since gorilla/websocket forbids concurrent writers on
// the same connection.
type peer struct {
	handle    PeerHandle
	conn      *websocket.Conn
	remoteIP  string
	outbound  chan []byte
	closeOnce sync.Once
	closed    chan struct{}
	limiter   *rate.Limiter
}

func newPeer(handle PeerHandle, conn *websocket.Conn, remoteIP string) *peer {
	return &peer{
		handle:   handle,
		conn:     conn,
		remoteIP: remoteIP,
		outbound: make(chan []byte, outboundQueueDepth),
		closed:   make(chan struct{}),
		limiter:  rate.NewLimiter(rate.Limit(ingressRateLimit), ingressBurst),
	}
}

// close is idempotent: multiple goroutines (reader, writer, host shutdown)
// may all observe the same failure and try to tear the peer down.
func (p *peer) close() {
	p.closeOnce.Do(func() {
		close(p.closed)
		p.conn.Close()
	})
}

func (p *peer) enqueue(frame []byte) bool {
	select {
	case p.outbound <- frame:
		return true
	default:
		// Outbound backpressure: a peer that can't keep up with the tick
		// rate gets a dropped frame rather than an unbounded queue.
		return false
	}
}
