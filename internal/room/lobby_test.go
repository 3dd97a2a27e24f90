package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobby_CreateCustomRoomIdIsDeterministicPattern(t *testing.T) {
	lobby := NewLobby()
	id, r := lobby.CreateCustomRoom("p1", "arena", 4, false)

	assert.Equal(t, "custom_p1_1", id)
	assert.Equal(t, id, r.ID)
	assert.Same(t, r, lobby.Room(id))
}

func TestLobby_CreateCustomRoomCounterIsMonotonic(t *testing.T) {
	lobby := NewLobby()
	id1, _ := lobby.CreateCustomRoom("p1", "a", 4, false)
	id2, _ := lobby.CreateCustomRoom("p1", "b", 4, false)

	assert.NotEqual(t, id1, id2)
}

func TestLobby_PublicRoomsExcludesPrivateAndFull(t *testing.T) {
	lobby := NewLobby()
	_, pub := lobby.CreateCustomRoom("p1", "public", 2, false)
	_, priv := lobby.CreateCustomRoom("p2", "private", 2, true)
	_, full := lobby.CreateCustomRoom("p3", "full", 1, false)

	_, err := full.Join(NewSession("s3", PeerHandle(3), "p3", "Carl"))
	require.NoError(t, err)

	rooms := lobby.PublicRooms()
	ids := make(map[string]bool)
	for _, r := range rooms {
		ids[r.ID] = true
	}
	assert.True(t, ids[pub.ID])
	assert.False(t, ids[priv.ID])
	assert.False(t, ids[full.ID])
}

func TestLobby_RemoveRoomDropsIt(t *testing.T) {
	lobby := NewLobby()
	id, _ := lobby.CreateCustomRoom("p1", "arena", 4, false)
	lobby.RemoveRoom(id)
	assert.Nil(t, lobby.Room(id))
}
