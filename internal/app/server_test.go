package app

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"nova-arena/internal/auth"
	"nova-arena/internal/config"
	"nova-arena/internal/protocol"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr:               ":0",
		MetricsAddr:              ":0",
		MaxPeers:                 256,
		TickRate:                 60,
		WorldWidth:               800,
		WorldHeight:              600,
		BoundsMargin:             64,
		MatchmakingMinPlayers:    2,
		MatchmakingMaxPlayers:    4,
		InactivityTimeoutSeconds: 120,
		SessionSecret:            "test-secret",
		SessionTTLHours:          24,
		LogLevel:                 "error",
	}
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := testConfig()
	store, err := auth.OpenStore(filepath.Join(t.TempDir(), "accounts.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sessions := auth.NewSessionManager([]byte(cfg.SessionSecret), time.Hour)
	srv := New(cfg, zerolog.Nop(), nil, store, sessions)

	go srv.Run()
	t.Cleanup(srv.Stop)

	httpSrv := httptest.NewServer(srv.Host())
	t.Cleanup(httpSrv.Close)
	return srv, httpSrv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType protocol.MessageType, payload []byte) {
	t.Helper()
	frame, err := protocol.EncodeFrame(msgType, payload)
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// recv reads frames until one of msgType arrives, or the deadline passes.
func recv(t *testing.T, conn *websocket.Conn, msgType protocol.MessageType, timeout time.Duration) []byte {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			t.Fatalf("timed out waiting for message type %v", msgType)
		}
		conn.SetReadDeadline(time.Now().Add(remaining))
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		gotType, payload, err := protocol.DecodeFrame(raw)
		if err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		if gotType == msgType {
			return payload
		}
	}
}

func handshake(t *testing.T, conn *websocket.Conn, playerName string) protocol.HandshakeResponse {
	t.Helper()
	body, err := protocol.EncodeHandshakeRequest(protocol.HandshakeRequest{
		ClientVersion: protocol.ProtocolVersion,
		PlayerName:    playerName,
		Timestamp:     1,
	})
	if err != nil {
		t.Fatalf("encode handshake: %v", err)
	}
	send(t, conn, protocol.MsgHandshakeRequest, body)

	payload := recv(t, conn, protocol.MsgHandshakeResponse, 2*time.Second)
	resp, err := protocol.DecodeHandshakeResponse(payload)
	if err != nil {
		t.Fatalf("decode handshake response: %v", err)
	}
	return resp
}

func TestServer_HandshakeAcceptsCompatibleVersion(t *testing.T) {
	_, httpSrv := newTestServer(t)
	conn := dial(t, httpSrv)

	resp := handshake(t, conn, "astra")
	if !resp.Accepted {
		t.Fatalf("expected handshake to be accepted, got %+v", resp)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a non-empty session id")
	}
}

func TestServer_HandshakeRejectsVersionMismatch(t *testing.T) {
	_, httpSrv := newTestServer(t)
	conn := dial(t, httpSrv)

	body, _ := protocol.EncodeHandshakeRequest(protocol.HandshakeRequest{
		ClientVersion: protocol.ProtocolVersion + 1,
		PlayerName:    "astra",
	})
	send(t, conn, protocol.MsgHandshakeRequest, body)

	payload := recv(t, conn, protocol.MsgHandshakeResponse, 2*time.Second)
	resp, err := protocol.DecodeHandshakeResponse(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Accepted {
		t.Fatal("expected handshake to be rejected on version mismatch")
	}
}

func TestServer_RoomCreateAppearsInRoomList(t *testing.T) {
	_, httpSrv := newTestServer(t)
	host := dial(t, httpSrv)
	lister := dial(t, httpSrv)

	handshake(t, host, "host-player")
	handshake(t, lister, "lister-player")

	createBody, _ := protocol.EncodeRoomCreate(protocol.RoomCreate{Name: "astra's arena", MaxPlayers: 4})
	send(t, host, protocol.MsgRoomCreate, createBody)

	// Give the dispatch loop a tick to process the create before listing.
	time.Sleep(50 * time.Millisecond)
	send(t, lister, protocol.MsgRoomList, nil)

	payload := recv(t, lister, protocol.MsgRoomList, 2*time.Second)
	list, err := protocol.DecodeRoomList(payload)
	if err != nil {
		t.Fatalf("decode room list: %v", err)
	}
	found := false
	for _, r := range list.Rooms {
		if r.Name == "astra's arena" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to find created room in list, got %+v", list.Rooms)
	}
}

func TestServer_RoomStartSpawnsPlayerAndBroadcastsGameStart(t *testing.T) {
	_, httpSrv := newTestServer(t)
	conn := dial(t, httpSrv)
	handshake(t, conn, "solo-player")

	createBody, _ := protocol.EncodeRoomCreate(protocol.RoomCreate{Name: "solo room", MaxPlayers: 4})
	send(t, conn, protocol.MsgRoomCreate, createBody)
	time.Sleep(50 * time.Millisecond)

	send(t, conn, protocol.MsgRoomStart, nil)

	// StartGame holds a fixed grace period before the loop (and the
	// GameStart broadcast) begins.
	payload := recv(t, conn, protocol.MsgGameStart, 6*time.Second)
	start, err := protocol.DecodeGameStart(payload)
	if err != nil {
		t.Fatalf("decode game start: %v", err)
	}
	if start.YourEntityID == 0 {
		t.Fatal("expected a nonzero entity id")
	}

	gamerulesPayload := recv(t, conn, protocol.MsgGamerules, 2*time.Second)
	rules, err := protocol.DecodeGamerulePacket(gamerulesPayload)
	if err != nil {
		t.Fatalf("decode gamerules: %v", err)
	}
	if len(rules.Gamerules) == 0 {
		t.Fatal("expected a nonempty gamerule bundle")
	}
}
