package room

import "time"

// PeerHandle is the opaque, stable identifier the network layer hands out
// for a transport peer, in place of a raw connection pointer — per the
// redesign note on peer lifetime safety.
type PeerHandle uint64

// Session binds a transport peer to a stable gameplay identity. It outlives
// any single room membership: a session moves between lobby and room as
// the player joins/leaves.
type Session struct {
	SessionID   string
	Peer        PeerHandle
	PlayerID    string
	PlayerName  string
	IsSpectator bool
	Active      bool
	RoomID      string
	JoinedAt    time.Time
	LastInputAt time.Time
}

// NewSession returns an active, roomless session for a freshly handshaked
// peer.
func NewSession(sessionID string, peer PeerHandle, playerID, playerName string) *Session {
	now := time.Now()
	return &Session{
		SessionID:   sessionID,
		Peer:        peer,
		PlayerID:    playerID,
		PlayerName:  playerName,
		Active:      true,
		JoinedAt:    now,
		LastInputAt: now,
	}
}
