// Package app wires the protocol, network, room, auth, and scripting
// packages into one running server: it owns the lobby/matchmaking
// registries, dispatches every inbound frame to the right handler, and
// drives each room's simulation loop.
package app

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nova-arena/internal/auth"
	"nova-arena/internal/config"
	"nova-arena/internal/ecs"
	"nova-arena/internal/metrics"
	"nova-arena/internal/network"
	"nova-arena/internal/protocol"
	"nova-arena/internal/room"
)

// dispatchInterval is how often the server drains the network host's
// event queue and ticks matchmaking; independent of any room's own
// simulation rate.
const dispatchInterval = 15 * time.Millisecond

// Server is the single process-wide object gluing every subsystem
// together. Exactly one exists per running instance.
type Server struct {
	cfg     *config.Config
	log     zerolog.Logger
	metrics *metrics.Metrics

	host        *network.Host
	lobby       *room.Lobby
	matchmaking *room.MatchmakingService
	accounts    *auth.Store
	sessions    *auth.SessionManager

	rules Gamerules

	mu        sync.Mutex
	byPeer    map[network.PeerHandle]*room.Session
	runtimes  map[string]*roomRuntime // roomID -> simulation runtime
	guestSeq  uint64
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

// New builds a Server around its already-opened dependencies; call Run to
// start draining the network host.
func New(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, accounts *auth.Store, sessions *auth.SessionManager) *Server {
	host := network.New(log)
	lobby := room.NewLobby()
	return &Server{
		cfg:         cfg,
		log:         log.With().Str("component", "app").Logger(),
		metrics:     m,
		host:        host,
		lobby:       lobby,
		matchmaking: room.NewMatchmakingService(lobby, cfg.MatchmakingMinPlayers, cfg.MatchmakingMaxPlayers),
		accounts:    accounts,
		sessions:    sessions,
		rules:       DefaultGamerules(cfg.WorldWidth, cfg.WorldHeight),
		byPeer:      make(map[network.PeerHandle]*room.Session),
		runtimes:    make(map[string]*roomRuntime),
		stopCh:      make(chan struct{}),
		stoppedCh:   make(chan struct{}),
	}
}

// Host exposes the websocket accept point for mounting on an http.ServeMux.
func (s *Server) Host() *network.Host { return s.host }

// Run blocks, draining network events and ticking matchmaking at
// dispatchInterval until Stop is called.
func (s *Server) Run() {
	defer close(s.stoppedCh)
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			for _, ev := range s.host.Drain() {
				s.handleEvent(ev)
			}
			if r := s.matchmaking.Tick(); r != nil {
				s.log.Info().Str("room", r.ID).Msg("matchmaking formed a room")
				for _, playerID := range r.Roster() {
					if sess := s.sessionByPlayerID(playerID); sess != nil {
						sess.RoomID = r.ID
						s.lobby.RemoveSession(playerID)
					}
				}
				if err := r.StartGame(r.HostID, func() room.GameLoop {
					return s.beginRoom(r)
				}); err != nil {
					s.log.Warn().Err(err).Str("room", r.ID).Msg("matchmaking auto-start rejected")
				}
			}
			if s.metrics != nil {
				s.metrics.NetworkPeers.Set(float64(s.host.PeerCount()))
			}
		}
	}
}

// Stop requests Run to exit and blocks until it has.
func (s *Server) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

func (s *Server) handleEvent(ev network.Event) {
	switch ev.Kind {
	case network.EventConnected:
		s.log.Info().Uint64("peer", uint64(ev.Peer)).Str("ip", ev.RemoteIP).Msg("peer connected")
	case network.EventDisconnected:
		s.handleDisconnect(ev.Peer)
	case network.EventMessage:
		s.handleMessage(ev)
	}
}

func (s *Server) handleDisconnect(peer network.PeerHandle) {
	s.mu.Lock()
	sess, ok := s.byPeer[peer]
	delete(s.byPeer, peer)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.lobby.RemoveSession(sess.PlayerID)
	s.matchmaking.RemovePlayer(sess.PlayerID)
	if sess.RoomID != "" {
		s.leaveRoom(sess)
	}
	s.log.Info().Str("player", sess.PlayerID).Msg("peer disconnected")
}

func (s *Server) handleMessage(ev network.Event) {
	switch ev.MsgType {
	case protocol.MsgHandshakeRequest:
		s.onHandshake(ev.Peer, ev.Payload)
	case protocol.MsgAuthRegister:
		s.onAuthRegister(ev.Peer, ev.Payload)
	case protocol.MsgAuthLogin:
		s.onAuthLogin(ev.Peer, ev.Payload)
	case protocol.MsgPing:
		s.onPing(ev.Peer, ev.Payload)
	case protocol.MsgRoomCreate:
		s.onRoomCreate(ev.Peer, ev.Payload)
	case protocol.MsgRoomJoin:
		s.onRoomJoin(ev.Peer, ev.Payload)
	case protocol.MsgRoomLeave:
		s.onRoomLeave(ev.Peer)
	case protocol.MsgRoomKick:
		s.onRoomKick(ev.Peer, ev.Payload)
	case protocol.MsgRoomStart:
		s.onRoomStart(ev.Peer)
	case protocol.MsgRoomList:
		s.onRoomList(ev.Peer)
	case protocol.MsgMatchmakeJoin:
		s.onMatchmakeJoin(ev.Peer)
	case protocol.MsgChat:
		s.onChat(ev.Peer, ev.Payload)
	case protocol.MsgPlayerInput:
		s.onPlayerInput(ev.Peer, ev.Payload)
	default:
		s.log.Debug().Uint16("type", uint16(ev.MsgType)).Msg("unhandled message type")
	}
}

func (s *Server) sessionFor(peer network.PeerHandle) (*room.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byPeer[peer]
	return sess, ok
}

func (s *Server) onHandshake(peer network.PeerHandle, payload []byte) {
	req, err := protocol.DecodeHandshakeRequest(payload)
	if err != nil {
		_ = s.host.Kick(peer, "malformed handshake")
		return
	}
	if req.ClientVersion != protocol.ProtocolVersion {
		resp, _ := protocol.EncodeHandshakeResponse(protocol.HandshakeResponse{
			Accepted: false, Message: "version mismatch",
		})
		_ = s.host.Send(peer, protocol.MsgHandshakeResponse, resp)
		_ = s.host.Kick(peer, "version mismatch")
		return
	}

	n := atomic.AddUint64(&s.guestSeq, 1)
	playerID := req.PlayerName
	if playerID == "" {
		playerID = fmt.Sprintf("guest_%d", n)
	}
	sessionID := uuid.NewString()
	sess := room.NewSession(sessionID, room.PeerHandle(peer), playerID, req.PlayerName)

	s.mu.Lock()
	s.byPeer[peer] = sess
	s.mu.Unlock()
	s.lobby.AddSession(sess)

	resp, _ := protocol.EncodeHandshakeResponse(protocol.HandshakeResponse{
		Accepted:      true,
		SessionID:     sessionID,
		ServerID:      "nova-arena",
		Message:       "welcome",
		ServerVersion: protocol.ProtocolVersion,
	})
	_ = s.host.Send(peer, protocol.MsgHandshakeResponse, resp)
}

func (s *Server) onAuthRegister(peer network.PeerHandle, payload []byte) {
	req, err := protocol.DecodeAuthRegister(payload)
	if err != nil {
		return
	}
	_, regErr := s.accounts.Register(req.Username, req.Password)
	if regErr != nil {
		s.replyAuth(peer, false, "", regErr.Error())
		return
	}
	token, _, err := s.sessions.Issue(req.Username)
	if err != nil {
		s.replyAuth(peer, false, "", "registered, but session issuance failed")
		return
	}
	s.adoptIdentity(peer, req.Username)
	s.replyAuth(peer, true, token, "registered")
}

func (s *Server) onAuthLogin(peer network.PeerHandle, payload []byte) {
	req, err := protocol.DecodeAuthLogin(payload)
	if err != nil {
		return
	}
	_, authErr := s.accounts.Authenticate(req.Username, req.Password)
	if authErr != nil {
		s.replyAuth(peer, false, "", authErr.Error())
		return
	}
	token, _, err := s.sessions.Issue(req.Username)
	if err != nil {
		s.replyAuth(peer, false, "", "login succeeded, but session issuance failed")
		return
	}
	s.adoptIdentity(peer, req.Username)
	s.replyAuth(peer, true, token, "welcome back")
}

// adoptIdentity rebinds a guest session to its authenticated username, so
// later room/matchmaking operations use the durable identity.
func (s *Server) adoptIdentity(peer network.PeerHandle, username string) {
	s.mu.Lock()
	sess, ok := s.byPeer[peer]
	s.mu.Unlock()
	if !ok {
		return
	}
	s.lobby.RemoveSession(sess.PlayerID)
	sess.PlayerID = username
	sess.PlayerName = username
	s.lobby.AddSession(sess)
}

func (s *Server) replyAuth(peer network.PeerHandle, success bool, token, message string) {
	buf, err := protocol.EncodeAuthResult(protocol.AuthResult{Success: success, SessionToken: token, Message: message})
	if err != nil {
		return
	}
	_ = s.host.Send(peer, protocol.MsgAuthResult, buf)
}

func (s *Server) onPing(peer network.PeerHandle, payload []byte) {
	ping, err := protocol.DecodePing(payload)
	if err != nil {
		return
	}
	buf := protocol.EncodePong(protocol.Pong{
		ClientTimestamp: ping.Timestamp,
		ServerTimestamp: uint32(time.Now().Unix()),
		Seq:             ping.Seq,
	})
	_ = s.host.Send(peer, protocol.MsgPong, buf)
}

func (s *Server) onRoomCreate(peer network.PeerHandle, payload []byte) {
	sess, ok := s.sessionFor(peer)
	if !ok {
		return
	}
	req, err := protocol.DecodeRoomCreate(payload)
	if err != nil {
		return
	}
	maxPlayers := int(req.MaxPlayers)
	if maxPlayers <= 0 {
		maxPlayers = s.cfg.MatchmakingMaxPlayers
	}
	id, r := s.lobby.CreateCustomRoom(sess.PlayerID, req.Name, maxPlayers, req.IsPrivate)
	s.joinRoom(sess, r)
	s.log.Info().Str("room", id).Str("host", sess.PlayerID).Msg("room created")
}

func (s *Server) onRoomJoin(peer network.PeerHandle, payload []byte) {
	sess, ok := s.sessionFor(peer)
	if !ok {
		return
	}
	req, err := protocol.DecodeRoomJoin(payload)
	if err != nil {
		return
	}
	r := s.lobby.Room(req.RoomID)
	if r == nil {
		return
	}
	s.joinRoom(sess, r)
}

func (s *Server) joinRoom(sess *room.Session, r *room.Room) {
	if _, err := r.Join(sess); err != nil {
		s.log.Warn().Err(err).Str("player", sess.PlayerID).Msg("room join rejected")
		return
	}
	s.lobby.RemoveSession(sess.PlayerID)

	s.mu.Lock()
	rr, running := s.runtimes[r.ID]
	s.mu.Unlock()
	if running {
		id := rr.SpawnPlayer(sess.PlayerID, network.PeerHandle(sess.Peer))
		s.sendGameStart(sess, rr, id)
	}
}

func (s *Server) onRoomLeave(peer network.PeerHandle) {
	sess, ok := s.sessionFor(peer)
	if !ok {
		return
	}
	s.leaveRoom(sess)
}

func (s *Server) leaveRoom(sess *room.Session) {
	if sess.RoomID == "" {
		return
	}
	r := s.lobby.Room(sess.RoomID)
	roomID := sess.RoomID
	sess.RoomID = ""
	if r == nil {
		return
	}

	s.mu.Lock()
	rr, running := s.runtimes[roomID]
	s.mu.Unlock()
	if running {
		rr.DespawnPlayer(sess.PlayerID)
	}

	empty := r.Leave(sess.PlayerID)
	if empty {
		s.teardownRoom(roomID)
	}
	sess.Active = true
	s.lobby.AddSession(sess)
}

func (s *Server) onRoomKick(peer network.PeerHandle, payload []byte) {
	sess, ok := s.sessionFor(peer)
	if !ok || sess.RoomID == "" {
		return
	}
	req, err := protocol.DecodeRoomKick(payload)
	if err != nil {
		return
	}
	r := s.lobby.Room(sess.RoomID)
	if r == nil {
		return
	}
	if err := r.Kick(sess.PlayerID, req.TargetPlayerID); err != nil {
		s.log.Warn().Err(err).Msg("room kick rejected")
	}
}

func (s *Server) onRoomStart(peer network.PeerHandle) {
	sess, ok := s.sessionFor(peer)
	if !ok || sess.RoomID == "" {
		return
	}
	r := s.lobby.Room(sess.RoomID)
	if r == nil {
		return
	}
	if err := r.StartGame(sess.PlayerID, func() room.GameLoop {
		return s.beginRoom(r)
	}); err != nil {
		s.log.Warn().Err(err).Msg("room start rejected")
	}
}

func (s *Server) onRoomList(peer network.PeerHandle) {
	rooms := s.lobby.PublicRooms()
	summaries := make([]protocol.RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, protocol.RoomSummary{
			RoomID:      r.ID,
			Name:        r.Name,
			PlayerCount: uint8(r.PlayerCount()),
			MaxPlayers:  uint8(r.MaxPlayers),
			IsPrivate:   r.IsPrivate,
		})
	}
	buf, err := protocol.EncodeRoomList(protocol.RoomList{Rooms: summaries})
	if err != nil {
		return
	}
	_ = s.host.Send(peer, protocol.MsgRoomList, buf)
}

func (s *Server) onMatchmakeJoin(peer network.PeerHandle) {
	sess, ok := s.sessionFor(peer)
	if !ok {
		return
	}
	if err := s.matchmaking.AddPlayer(sess.PlayerID); err != nil {
		s.log.Warn().Err(err).Str("player", sess.PlayerID).Msg("matchmaking join rejected")
	}
}

func (s *Server) onChat(peer network.PeerHandle, payload []byte) {
	sess, ok := s.sessionFor(peer)
	if !ok || sess.RoomID == "" {
		return
	}
	msg, err := protocol.DecodeChat(payload)
	if err != nil {
		return
	}
	r := s.lobby.Room(sess.RoomID)
	if r == nil {
		return
	}
	r.Chat(sess.PlayerID, msg.Body)
}

func (s *Server) onPlayerInput(peer network.PeerHandle, payload []byte) {
	sess, ok := s.sessionFor(peer)
	if !ok || sess.RoomID == "" {
		return
	}
	in, err := protocol.DecodePlayerInput(payload)
	if err != nil {
		return
	}
	sess.LastInputAt = time.Now()

	s.mu.Lock()
	rr, running := s.runtimes[sess.RoomID]
	s.mu.Unlock()
	if running {
		rr.HandleInput(sess.PlayerID, in)
	}
}

// beginRoom constructs and registers the simulation runtime for r, spawns
// every current member, and announces game start. It is passed as the
// StartGame/matchmaking factory, so it runs exactly once per room.
func (s *Server) beginRoom(r *room.Room) *roomRuntime {
	rr := newRoomRuntime(r, s.host, s.rules, s.cfg.WorldWidth, s.cfg.WorldHeight, s.log)

	s.mu.Lock()
	s.runtimes[r.ID] = rr
	s.mu.Unlock()

	for _, playerID := range r.Roster() {
		sess := s.sessionByPlayerID(playerID)
		if sess == nil {
			continue
		}
		id := rr.SpawnPlayer(playerID, network.PeerHandle(sess.Peer))
		s.sendGameStart(sess, rr, id)
	}

	rulesBuf, err := protocol.EncodeGamerulePacket(s.rules.Packet())
	if err == nil {
		rr.broadcast(protocol.MsgGamerules, rulesBuf)
	}
	return rr
}

func (s *Server) sendGameStart(sess *room.Session, rr *roomRuntime, entity ecs.EntityID) {
	buf, err := protocol.EncodeGameStart(protocol.GameStart{
		YourEntityID: uint32(entity),
		InitialState: rr.snapshot(0),
	})
	if err != nil {
		return
	}
	_ = s.host.Send(network.PeerHandle(sess.Peer), protocol.MsgGameStart, buf)
}

func (s *Server) sessionByPlayerID(playerID string) *room.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.byPeer {
		if sess.PlayerID == playerID {
			return sess
		}
	}
	return nil
}

func (s *Server) teardownRoom(roomID string) {
	s.mu.Lock()
	rr, ok := s.runtimes[roomID]
	delete(s.runtimes, roomID)
	s.mu.Unlock()
	if ok {
		rr.room.Finish("empty")
		rr.bridge.Close()
	}
	s.lobby.RemoveRoom(roomID)
}
