package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchmaking_TickBundlesOldestPlayersUpToMax(t *testing.T) {
	lobby := NewLobby()
	svc := NewMatchmakingService(lobby, 2, 4)

	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		require.NoError(t, svc.AddPlayer(id))
	}

	r := svc.Tick()
	require.NotNil(t, r)
	assert.Equal(t, 4, r.PlayerCount())
	assert.Equal(t, 1, svc.QueueLength())
}

func TestMatchmaking_TickDoesNothingBelowMinPlayers(t *testing.T) {
	lobby := NewLobby()
	svc := NewMatchmakingService(lobby, 3, 4)
	require.NoError(t, svc.AddPlayer("p1"))

	r := svc.Tick()
	assert.Nil(t, r)
	assert.Equal(t, 1, svc.QueueLength())
}

func TestMatchmaking_AddPlayerIsIdempotentPerPlayer(t *testing.T) {
	lobby := NewLobby()
	svc := NewMatchmakingService(lobby, 2, 4)
	require.NoError(t, svc.AddPlayer("p1"))
	require.NoError(t, svc.AddPlayer("p1"))

	assert.Equal(t, 1, svc.QueueLength())
}

func TestMatchmaking_RemovePlayerDropsFromQueue(t *testing.T) {
	lobby := NewLobby()
	svc := NewMatchmakingService(lobby, 2, 4)
	require.NoError(t, svc.AddPlayer("p1"))
	svc.RemovePlayer("p1")

	assert.Equal(t, 0, svc.QueueLength())
}

func TestMatchmaking_SpectatorFallbackDefaultsOff(t *testing.T) {
	lobby := NewLobby()
	svc := NewMatchmakingService(lobby, 2, 4)
	assert.False(t, svc.AllowSpectatorFallback)
}
