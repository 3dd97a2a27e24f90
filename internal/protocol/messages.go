package protocol

// ProtocolVersion is advertised by both ends at handshake; a mismatch is
// rejected with Kick{reason: "version mismatch"}.
const ProtocolVersion uint16 = 1

// InputAction is one discrete action bit a client can send per tick.
type InputAction uint8

const (
	ActionMoveUp InputAction = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionShoot
)

// HandshakeRequest is the first message a client sends after connecting.
type HandshakeRequest struct {
	ClientVersion uint16
	PlayerName    string
	Timestamp     uint32
}

func EncodeHandshakeRequest(m HandshakeRequest) ([]byte, error) {
	w := newByteWriter()
	w.WriteUint16(m.ClientVersion)
	if err := w.WriteString(m.PlayerName); err != nil {
		return nil, err
	}
	w.WriteUint32(m.Timestamp)
	return w.Bytes(), nil
}

func DecodeHandshakeRequest(buf []byte) (HandshakeRequest, error) {
	r := newByteReader(buf)
	var m HandshakeRequest
	var err error
	if m.ClientVersion, err = r.ReadUint16(); err != nil {
		return m, err
	}
	if m.PlayerName, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Timestamp, err = r.ReadUint32(); err != nil {
		return m, err
	}
	return m, nil
}

// HandshakeResponse is the server's reply to HandshakeRequest.
type HandshakeResponse struct {
	Accepted      bool
	SessionID     string
	ServerID      string
	Message       string
	ServerVersion uint16
}

func EncodeHandshakeResponse(m HandshakeResponse) ([]byte, error) {
	w := newByteWriter()
	accepted := uint8(0)
	if m.Accepted {
		accepted = 1
	}
	w.WriteUint8(accepted)
	if err := w.WriteString(m.SessionID); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.ServerID); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Message); err != nil {
		return nil, err
	}
	w.WriteUint16(m.ServerVersion)
	return w.Bytes(), nil
}

func DecodeHandshakeResponse(buf []byte) (HandshakeResponse, error) {
	r := newByteReader(buf)
	var m HandshakeResponse
	accepted, err := r.ReadUint8()
	if err != nil {
		return m, err
	}
	m.Accepted = accepted != 0
	if m.SessionID, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.ServerID, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Message, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.ServerVersion, err = r.ReadUint16(); err != nil {
		return m, err
	}
	return m, nil
}

// Kick is sent before the transport closes a rejected or misbehaving peer.
type Kick struct {
	Reason string
}

func EncodeKick(m Kick) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.Reason); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeKick(buf []byte) (Kick, error) {
	r := newByteReader(buf)
	reason, err := r.ReadString()
	return Kick{Reason: reason}, err
}

// Ping/Pong carry round-trip timing used to track connection liveness.
type Ping struct {
	Timestamp uint32
	Seq       uint32
}

func EncodePing(m Ping) []byte {
	w := newByteWriter()
	w.WriteUint32(m.Timestamp)
	w.WriteUint32(m.Seq)
	return w.Bytes()
}

func DecodePing(buf []byte) (Ping, error) {
	r := newByteReader(buf)
	var m Ping
	var err error
	if m.Timestamp, err = r.ReadUint32(); err != nil {
		return m, err
	}
	if m.Seq, err = r.ReadUint32(); err != nil {
		return m, err
	}
	return m, nil
}

type Pong struct {
	ClientTimestamp uint32
	ServerTimestamp uint32
	Seq             uint32
}

func EncodePong(m Pong) []byte {
	w := newByteWriter()
	w.WriteUint32(m.ClientTimestamp)
	w.WriteUint32(m.ServerTimestamp)
	w.WriteUint32(m.Seq)
	return w.Bytes()
}

func DecodePong(buf []byte) (Pong, error) {
	r := newByteReader(buf)
	var m Pong
	var err error
	if m.ClientTimestamp, err = r.ReadUint32(); err != nil {
		return m, err
	}
	if m.ServerTimestamp, err = r.ReadUint32(); err != nil {
		return m, err
	}
	if m.Seq, err = r.ReadUint32(); err != nil {
		return m, err
	}
	return m, nil
}

// PlayerInput is the per-tick intent a client sends; actions is a bitmask
// over InputAction.
type PlayerInput struct {
	SequenceID uint32
	Actions    uint8
}

func (p PlayerInput) Has(a InputAction) bool { return p.Actions&(1<<uint(a)) != 0 }

func EncodePlayerInput(m PlayerInput) []byte {
	w := newByteWriter()
	w.WriteUint32(m.SequenceID)
	w.WriteUint8(m.Actions)
	return w.Bytes()
}

func DecodePlayerInput(buf []byte) (PlayerInput, error) {
	r := newByteReader(buf)
	var m PlayerInput
	var err error
	if m.SequenceID, err = r.ReadUint32(); err != nil {
		return m, err
	}
	if m.Actions, err = r.ReadUint8(); err != nil {
		return m, err
	}
	return m, nil
}

// EntityState is one entity's row inside a GameState snapshot. Health −1
// means "not applicable" (no Health component).
type EntityState struct {
	EntityID            uint32
	Type                uint8
	X, Y                float32
	Health              int32
	LastProcessedInput  uint32
}

// GameState is the per-tick authoritative snapshot broadcast to a room.
type GameState struct {
	ServerTick uint32
	Entities   []EntityState
}

func EncodeGameState(m GameState) ([]byte, error) {
	w := newByteWriter()
	w.WriteUint32(m.ServerTick)
	w.WriteUint32(uint32(len(m.Entities)))
	for _, e := range m.Entities {
		w.WriteUint32(e.EntityID)
		w.WriteUint8(e.Type)
		w.WriteFloat32(e.X)
		w.WriteFloat32(e.Y)
		w.WriteUint32(uint32(int32(e.Health)))
		w.WriteUint32(e.LastProcessedInput)
	}
	return w.Bytes(), nil
}

func DecodeGameState(buf []byte) (GameState, error) {
	r := newByteReader(buf)
	var m GameState
	var err error
	if m.ServerTick, err = r.ReadUint32(); err != nil {
		return m, err
	}
	count, err := r.ReadUint32()
	if err != nil {
		return m, err
	}
	m.Entities = make([]EntityState, 0, count)
	for i := uint32(0); i < count; i++ {
		var e EntityState
		if e.EntityID, err = r.ReadUint32(); err != nil {
			return m, err
		}
		if e.Type, err = r.ReadUint8(); err != nil {
			return m, err
		}
		if e.X, err = r.ReadFloat32(); err != nil {
			return m, err
		}
		if e.Y, err = r.ReadFloat32(); err != nil {
			return m, err
		}
		health, err := r.ReadUint32()
		if err != nil {
			return m, err
		}
		e.Health = int32(health)
		if e.LastProcessedInput, err = r.ReadUint32(); err != nil {
			return m, err
		}
		m.Entities = append(m.Entities, e)
	}
	return m, nil
}

// EntityDestroyed announces one entity's removal to the room.
type EntityDestroyed struct {
	EntityID uint32
	Reason   EntityDestroyedReason
}

func EncodeEntityDestroyed(m EntityDestroyed) []byte {
	w := newByteWriter()
	w.WriteUint32(m.EntityID)
	w.WriteUint8(uint8(m.Reason))
	return w.Bytes()
}

func DecodeEntityDestroyed(buf []byte) (EntityDestroyed, error) {
	r := newByteReader(buf)
	var m EntityDestroyed
	var err error
	if m.EntityID, err = r.ReadUint32(); err != nil {
		return m, err
	}
	reason, err := r.ReadUint8()
	if err != nil {
		return m, err
	}
	m.Reason = EntityDestroyedReason(reason)
	return m, nil
}

// GameStart is broadcast to a room when its loop begins.
type GameStart struct {
	YourEntityID uint32
	InitialState GameState
}

func EncodeGameStart(m GameStart) ([]byte, error) {
	w := newByteWriter()
	w.WriteUint32(m.YourEntityID)
	stateBytes, err := EncodeGameState(m.InitialState)
	if err != nil {
		return nil, err
	}
	w.WriteUint32(uint32(len(stateBytes)))
	w.buf = append(w.buf, stateBytes...)
	return w.Bytes(), nil
}

func DecodeGameStart(buf []byte) (GameStart, error) {
	r := newByteReader(buf)
	var m GameStart
	var err error
	if m.YourEntityID, err = r.ReadUint32(); err != nil {
		return m, err
	}
	n, err := r.ReadUint32()
	if err != nil {
		return m, err
	}
	if r.remaining() < int(n) {
		return m, newProtocolError("truncated embedded GameState")
	}
	m.InitialState, err = DecodeGameState(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return m, err
}

// Gamerule is one {key, value} pair; keys are drawn from the fixed set in
// types.go.
type Gamerule struct {
	Key   string
	Value float32
}

// GamerulePacket is the server-to-client tunable bundle.
type GamerulePacket struct {
	Gamerules []Gamerule
}

func EncodeGamerulePacket(m GamerulePacket) ([]byte, error) {
	w := newByteWriter()
	w.WriteUint32(uint32(len(m.Gamerules)))
	for _, g := range m.Gamerules {
		if err := w.WriteString(g.Key); err != nil {
			return nil, err
		}
		w.WriteFloat32(g.Value)
	}
	return w.Bytes(), nil
}

func DecodeGamerulePacket(buf []byte) (GamerulePacket, error) {
	r := newByteReader(buf)
	count, err := r.ReadUint32()
	if err != nil {
		return GamerulePacket{}, err
	}
	out := GamerulePacket{Gamerules: make([]Gamerule, 0, count)}
	for i := uint32(0); i < count; i++ {
		var g Gamerule
		if g.Key, err = r.ReadString(); err != nil {
			return out, err
		}
		if g.Value, err = r.ReadFloat32(); err != nil {
			return out, err
		}
		out.Gamerules = append(out.Gamerules, g)
	}
	return out, nil
}

// GameOver announces a room's simulation has ended.
type GameOver struct {
	WinnerPlayerID string
	Reason         string
}

func EncodeGameOver(m GameOver) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.WinnerPlayerID); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Reason); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeGameOver(buf []byte) (GameOver, error) {
	r := newByteReader(buf)
	var m GameOver
	var err error
	if m.WinnerPlayerID, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Reason, err = r.ReadString(); err != nil {
		return m, err
	}
	return m, nil
}

// AuthRegister creates a new account.
type AuthRegister struct {
	Username string
	Password string
}

func EncodeAuthRegister(m AuthRegister) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.Username); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Password); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeAuthRegister(buf []byte) (AuthRegister, error) {
	r := newByteReader(buf)
	var m AuthRegister
	var err error
	if m.Username, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Password, err = r.ReadString(); err != nil {
		return m, err
	}
	return m, nil
}

// AuthLogin authenticates an existing account.
type AuthLogin struct {
	Username string
	Password string
}

func EncodeAuthLogin(m AuthLogin) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.Username); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Password); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeAuthLogin(buf []byte) (AuthLogin, error) {
	r := newByteReader(buf)
	var m AuthLogin
	var err error
	if m.Username, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Password, err = r.ReadString(); err != nil {
		return m, err
	}
	return m, nil
}

// AuthResult is the server's reply to AuthRegister/AuthLogin.
type AuthResult struct {
	Success      bool
	SessionToken string
	Message      string
}

func EncodeAuthResult(m AuthResult) ([]byte, error) {
	w := newByteWriter()
	success := uint8(0)
	if m.Success {
		success = 1
	}
	w.WriteUint8(success)
	if err := w.WriteString(m.SessionToken); err != nil {
		return nil, err
	}
	if err := w.WriteString(m.Message); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeAuthResult(buf []byte) (AuthResult, error) {
	r := newByteReader(buf)
	var m AuthResult
	success, err := r.ReadUint8()
	if err != nil {
		return m, err
	}
	m.Success = success != 0
	if m.SessionToken, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.Message, err = r.ReadString(); err != nil {
		return m, err
	}
	return m, nil
}

// RoomCreate requests a new custom room.
type RoomCreate struct {
	Name       string
	MaxPlayers uint8
	IsPrivate  bool
}

func EncodeRoomCreate(m RoomCreate) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.Name); err != nil {
		return nil, err
	}
	w.WriteUint8(m.MaxPlayers)
	private := uint8(0)
	if m.IsPrivate {
		private = 1
	}
	w.WriteUint8(private)
	return w.Bytes(), nil
}

func DecodeRoomCreate(buf []byte) (RoomCreate, error) {
	r := newByteReader(buf)
	var m RoomCreate
	var err error
	if m.Name, err = r.ReadString(); err != nil {
		return m, err
	}
	if m.MaxPlayers, err = r.ReadUint8(); err != nil {
		return m, err
	}
	private, err := r.ReadUint8()
	if err != nil {
		return m, err
	}
	m.IsPrivate = private != 0
	return m, nil
}

// RoomJoin requests to join a room by id.
type RoomJoin struct {
	RoomID string
}

func EncodeRoomJoin(m RoomJoin) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.RoomID); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeRoomJoin(buf []byte) (RoomJoin, error) {
	r := newByteReader(buf)
	roomID, err := r.ReadString()
	return RoomJoin{RoomID: roomID}, err
}

// RoomKick requests the removal of a player from the sender's room; only
// the host's request is honored, enforced by internal/room.
type RoomKick struct {
	TargetPlayerID string
}

func EncodeRoomKick(m RoomKick) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.TargetPlayerID); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeRoomKick(buf []byte) (RoomKick, error) {
	r := newByteReader(buf)
	targetPlayerID, err := r.ReadString()
	return RoomKick{TargetPlayerID: targetPlayerID}, err
}

// RoomSummary is one entry in a RoomList reply.
type RoomSummary struct {
	RoomID      string
	Name        string
	PlayerCount uint8
	MaxPlayers  uint8
	IsPrivate   bool
}

// RoomList is the server's reply to a room-list request, carrying every
// public joinable room.
type RoomList struct {
	Rooms []RoomSummary
}

func EncodeRoomList(m RoomList) ([]byte, error) {
	w := newByteWriter()
	w.WriteUint32(uint32(len(m.Rooms)))
	for _, rm := range m.Rooms {
		if err := w.WriteString(rm.RoomID); err != nil {
			return nil, err
		}
		if err := w.WriteString(rm.Name); err != nil {
			return nil, err
		}
		w.WriteUint8(rm.PlayerCount)
		w.WriteUint8(rm.MaxPlayers)
		private := uint8(0)
		if rm.IsPrivate {
			private = 1
		}
		w.WriteUint8(private)
	}
	return w.Bytes(), nil
}

func DecodeRoomList(buf []byte) (RoomList, error) {
	r := newByteReader(buf)
	count, err := r.ReadUint32()
	if err != nil {
		return RoomList{}, err
	}
	out := RoomList{Rooms: make([]RoomSummary, 0, count)}
	for i := uint32(0); i < count; i++ {
		var rm RoomSummary
		if rm.RoomID, err = r.ReadString(); err != nil {
			return out, err
		}
		if rm.Name, err = r.ReadString(); err != nil {
			return out, err
		}
		if rm.PlayerCount, err = r.ReadUint8(); err != nil {
			return out, err
		}
		if rm.MaxPlayers, err = r.ReadUint8(); err != nil {
			return out, err
		}
		private, err := r.ReadUint8()
		if err != nil {
			return out, err
		}
		rm.IsPrivate = private != 0
		out.Rooms = append(out.Rooms, rm)
	}
	return out, nil
}

// Chat carries free text or a slash command, dispatched by internal/room.
type Chat struct {
	Body string
}

func EncodeChat(m Chat) ([]byte, error) {
	w := newByteWriter()
	if err := w.WriteString(m.Body); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func DecodeChat(buf []byte) (Chat, error) {
	r := newByteReader(buf)
	body, err := r.ReadString()
	return Chat{Body: body}, err
}
