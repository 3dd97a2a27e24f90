package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoop struct{ stopped bool }

func (f *fakeLoop) Run(ctx context.Context) { <-ctx.Done() }
func (f *fakeLoop) Stop()                   { f.stopped = true }

func TestRoom_JoinAssignsHostOnFirstJoin(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	sess := NewSession("s1", PeerHandle(1), "p1", "Alice")

	spectator, err := r.Join(sess)
	require.NoError(t, err)
	assert.False(t, spectator)
	assert.Equal(t, "p1", r.HostID)
	assert.Equal(t, 1, r.PlayerCount())
}

func TestRoom_JoinRejectsWhenFull(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 1, false, "p1")
	_, err := r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	require.NoError(t, err)

	_, err = r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))
	require.Error(t, err)
	var roomErr *RoomError
	require.ErrorAs(t, err, &roomErr)
	assert.Equal(t, ErrCapacityExceeded, roomErr.Code)
}

func TestRoom_JoinBecomesSpectatorWhenFullAndInProgress(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 1, false, "p1")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	r.State = StateInProgress

	isSpectator, err := r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))
	require.NoError(t, err)
	assert.True(t, isSpectator)
	assert.Equal(t, 1, r.PlayerCount())
}

func TestRoom_LeavePromotesNextHostByJoinOrder(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	_, _ = r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))

	empty := r.Leave("p1")
	assert.False(t, empty)
	assert.Equal(t, "p2", r.HostID)
}

func TestRoom_LeaveReportsEmptyRoom(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))

	assert.True(t, r.Leave("p1"))
}

func TestRoom_KickOnlyHostCanKickAndNotThemself(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	_, _ = r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))

	require.Error(t, r.Kick("p2", "p1"))
	require.Error(t, r.Kick("p1", "p1"))
	require.NoError(t, r.Kick("p1", "p2"))
	assert.Equal(t, 1, r.PlayerCount())
}

func TestRoom_StartGameOnlyHostAndRequiresAPlayer(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))

	err := r.StartGame("p2", func() GameLoop { return &fakeLoop{} })
	require.Error(t, err)
	var roomErr *RoomError
	require.ErrorAs(t, err, &roomErr)
	assert.Equal(t, ErrForbidden, roomErr.Code)

	err = r.StartGame("p1", func() GameLoop { return &fakeLoop{} })
	require.NoError(t, err)
	assert.Equal(t, StateStarting, r.State)
}

func TestRoom_ChatBroadcastsPlainText(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "p1")
	var got string
	r.OnBroadcast(func(roomID, msg string) { got = msg })

	r.Chat("p1", "hello room")
	assert.Equal(t, "p1: hello room", got)
}

func TestRoom_ChatSlashListReportsRoster(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	_, _ = r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))

	var got string
	r.OnBroadcast(func(roomID, msg string) { got = msg })
	r.Chat("p1", "/list")
	assert.Contains(t, got, "p1")
	assert.Contains(t, got, "p2")
}

func TestRoom_ChatSlashKickDispatchesToKick(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	_, _ = r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))

	r.Chat("p1", "/kick p2")
	assert.Equal(t, 1, r.PlayerCount())
}

func TestRoom_ChatSlashKickFromNonHostFails(t *testing.T) {
	r := NewRoom("custom_p1_1", "arena", 4, false, "")
	_, _ = r.Join(NewSession("s1", PeerHandle(1), "p1", "Alice"))
	_, _ = r.Join(NewSession("s2", PeerHandle(2), "p2", "Bob"))

	var got string
	r.OnBroadcast(func(roomID, msg string) { got = msg })
	r.Chat("p2", "/kick p1")
	assert.Equal(t, 2, r.PlayerCount())
	assert.Contains(t, got, "Forbidden")
}
