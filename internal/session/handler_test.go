package session

import (
	"testing"

	"kingbandits/internal/game/player"
	"kingbandits/internal/game/room"
	"kingbandits/internal/session/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAnnouncesIdentity(t *testing.T) {
	f := newFixture(t)
	p := f.connect("abc")
	require.Len(t, p.inbox, 1)
	assert.Equal(t, message.ConnectionEstablished{PlayerID: "abc"}, p.inbox[0])
}

func TestJoinRoom(t *testing.T) {
	f := newFixture(t)
	p0 := f.connect("p0")
	f.join(p0, "Ana")

	joined := lastOf[message.RoomJoined](t, p0)
	assert.Equal(t, "p0", joined.PlayerID)
	assert.Equal(t, tableID, joined.RoomID)
	require.Len(t, joined.Players, 1)
	assert.Equal(t, "Ana", joined.Players[0].Name)

	p1 := f.connect("p1")
	f.join(p1, "Bo")
	assert.Equal(t, []string{"Ana joined the room", "Bo joined the room"}, logLines(p0))
	state := lastOf[message.GameState](t, p0)
	assert.Len(t, state.Players, 2)
	assert.False(t, state.GameStarted)
	assert.Equal(t, "lobby", state.Phase)
	assert.Equal(t, []string{"Ana joined the room", "Bo joined the room"}, f.feed.logs)
}

func TestJoinNames(t *testing.T) {
	f := newFixture(t)
	p := f.connect("p0")
	f.join(p, "   ")
	assert.Equal(t, "Player-p0", lastOf[message.RoomJoined](t, p).Players[0].Name)

	assert.Equal(t, "Player-abcd", displayName("", "abcdef-123"))
	assert.Equal(t, "Ana", displayName("  Ana ", "x"))
	assert.Len(t, []rune(displayName("ÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀÀ", "x")), maxNameLength)
}

func TestJoinTwiceRejected(t *testing.T) {
	f := newFixture(t)
	p := f.connect("p0")
	f.join(p, "Ana")
	f.send(p, map[string]string{"action": "CREATE_OR_JOIN_ROOM", "roomId": "elsewhere", "playerName": "Ana"})

	assert.Equal(t, ErrAlreadyInRoom.Error(), lastError(t, p))
	_, ok := f.rooms.Get("elsewhere")
	assert.False(t, ok)
}

func TestJoinFullRoom(t *testing.T) {
	f := newFixture(t)
	peers := f.seat(5)
	late := f.connect("p9")
	f.join(late, "Fay")

	assert.Equal(t, room.ErrRoomFull.Error(), lastError(t, late))
	rm, _ := f.rooms.Get(tableID)
	assert.Equal(t, 5, rm.Len())
	assert.NotContains(t, logLines(peers[0]), "Fay joined the room")

	// The rejected player may still join another room.
	f.send(late, map[string]string{"action": "CREATE_OR_JOIN_ROOM", "roomId": "annex", "playerName": "Fay"})
	assert.Equal(t, "annex", lastOf[message.RoomJoined](t, late).RoomID)
}

func TestProtocolErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  string
	}{
		{"not json", `nope`, "malformed message"},
		{"unknown command", `{"action":"DANCE","roomId":"x"}`, `unknown command "DANCE"`},
		{"missing room", `{"action":"START_GAME"}`, "roomId is required for START_GAME"},
		{"unknown action", `{"action":"PLAYER_ACTION","roomId":"x","type":"FLY"}`, `unknown action "FLY"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.connect("p0")
			f.h.OnMessage(p, []byte(tt.frame))
			assert.Contains(t, lastError(t, p), tt.want)

			// The connection keeps working.
			f.join(p, "Ana")
			assert.Equal(t, tableID, lastOf[message.RoomJoined](t, p).RoomID)
		})
	}
}

func TestMessageFromUnknownPeerIgnored(t *testing.T) {
	f := newFixture(t)
	stranger := &fakePeer{id: "ghost"}
	f.h.OnMessage(stranger, []byte(`{"action":"GET_PLAYERS","roomId":"x"}`))
	assert.Empty(t, stranger.inbox)
}

func TestStartNeedsFivePlayers(t *testing.T) {
	f := newFixture(t)
	peers := f.seat(3)
	f.start(peers[0])
	assert.Equal(t, room.ErrNotEnoughPlayers.Error(), lastError(t, peers[0]))

	rm, _ := f.rooms.Get(tableID)
	assert.Equal(t, room.PhaseLobby, rm.Phase())
}

func TestCommandsForOtherRoomRejected(t *testing.T) {
	f := newFixture(t)
	peers := f.seat(1)
	f.send(peers[0], map[string]string{"action": "START_GAME", "roomId": "other"})
	assert.Equal(t, ErrNotInRoom.Error(), lastError(t, peers[0]))

	outsider := f.connect("p7")
	f.send(outsider, map[string]string{"action": "GET_PLAYERS", "roomId": tableID})
	assert.Equal(t, ErrNotInRoom.Error(), lastError(t, outsider))
}

func TestStartSendsPrivateViews(t *testing.T) {
	f := newFixture(t)
	peers := f.seat(5)
	f.start(peers[0])
	rm, _ := f.rooms.Get(tableID)
	king := rm.King()
	require.NotNil(t, king)

	for _, p := range peers {
		state := lastOf[message.GameState](t, p)
		assert.True(t, state.GameStarted)
		assert.Equal(t, "p0", state.GameStartedBy)
		assert.Equal(t, 47, state.DeckCount)
		assert.Equal(t, rm.CurrentIndex(), state.CurrentPlayerIndex)

		for _, v := range state.Players {
			switch {
			case v.ID == p.id:
				require.NotNil(t, v.Role)
				require.NotNil(t, v.Card)
			case v.ID == king.ID:
				require.NotNil(t, v.Role)
				assert.Equal(t, player.RoleKing, *v.Role)
				assert.Nil(t, v.Card)
			default:
				assert.Nil(t, v.Role)
				assert.Nil(t, v.Card)
			}
		}
		assert.Contains(t, logLines(p), "Game started by Ana")
		assert.Contains(t, logLines(p), king.Name+" is the King")
	}
}

func TestActionAuthorization(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	cur := f.current(rm)
	idx := rm.CurrentIndex()

	var bystander *fakePeer
	for _, p := range peers {
		if p != cur {
			bystander = p
			break
		}
	}
	f.act(bystander, "PASS")
	assert.Equal(t, room.ErrNotYourTurn.Error(), lastError(t, bystander))

	f.send(cur, map[string]string{"action": "PLAYER_ACTION", "roomId": tableID, "playerId": bystander.id, "type": "PASS"})
	assert.Equal(t, ErrIdentityMismatch.Error(), lastError(t, cur))

	assert.Equal(t, idx, rm.CurrentIndex())
	for _, p := range peers {
		assert.Empty(t, logLines(p), "a rejected action must not be broadcast")
	}
}

func TestActionBroadcast(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	cur := f.current(rm)
	name := rm.Current().Name

	f.act(cur, "DRAW")
	for _, p := range peers {
		assert.Equal(t, []string{name + " drew a new card"}, logLines(p))
		assert.Equal(t, 46, lastOf[message.GameState](t, p).DeckCount)
	}

	// The same ability cannot be used twice.
	for f.current(rm) != cur {
		f.act(f.current(rm), "PASS")
	}
	f.act(cur, "DRAW")
	assert.Equal(t, room.ErrAlreadyDrawn.Error(), lastError(t, cur))
}

func TestPeekIsPrivate(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	for rm.Current().Role != player.RoleKing {
		f.act(f.current(rm), "PASS")
	}
	king := f.current(rm)
	kingName := rm.Current().Name

	var target *player.Player
	for _, id := range rm.PlayerIDs() {
		if id != king.id {
			target, _ = rm.Player(id)
			break
		}
	}
	f.act(king, "PEEK", "targetPlayerId", target.ID)

	peek := lastOf[message.PeekResult](t, king)
	assert.Equal(t, target.Name, peek.PlayerName)
	assert.Equal(t, *target.Card, peek.Card)

	want := kingName + " peeked at " + target.Name + "'s card"
	for _, p := range peers {
		assert.Contains(t, logLines(p), want)
		if p != king {
			assert.Empty(t, ofType[message.PeekResult](p))
		}
	}
}

func TestGameEndAndReset(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	f.passUntilEnd(rm)
	require.Equal(t, room.PhaseEnded, rm.Phase())

	for _, p := range peers {
		end := lastOf[message.GameEnd](t, p)
		assert.Len(t, end.AllPlayers, 5)
		assert.Contains(t, []player.Team{player.TeamKing, player.TeamBandits}, end.Winner)
	}
	require.Len(t, f.feed.results, 1)
	require.Len(t, f.sched.tasks, 1)
	assert.Equal(t, DefaultResetDelay, f.sched.tasks[0].delay)

	f.sched.runAll()
	assert.Equal(t, room.PhaseLobby, rm.Phase())
	for _, p := range peers {
		state := lastOf[message.GameState](t, p)
		assert.False(t, state.GameStarted)
		assert.Zero(t, state.DeckCount)
		for _, v := range state.Players {
			assert.Nil(t, v.Role)
			assert.Nil(t, v.Card)
		}
		assert.Contains(t, logLines(p), "Returning to the lobby")
	}
}

func TestResetDelayOption(t *testing.T) {
	f := newFixture(t, WithResetDelay(0))
	rm, _ := f.started()
	f.passUntilEnd(rm)
	require.Len(t, f.sched.tasks, 1)
	assert.Zero(t, f.sched.tasks[0].delay)
}

func TestStaleResetIgnored(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	f.passUntilEnd(rm)

	f.start(peers[0])
	require.Equal(t, room.PhaseInProgress, rm.Phase())
	assert.Contains(t, logLines(peers[1]), "Game restarted by Ana")

	f.sched.runAll()
	assert.Equal(t, room.PhaseInProgress, rm.Phase())
	assert.Equal(t, uint64(2), rm.Generation())
}

func TestRestartByOtherPlayerRejected(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	f.start(peers[1])
	assert.Equal(t, room.ErrNotAllowedToRestart.Error(), lastError(t, peers[1]))
	assert.Equal(t, uint64(1), rm.Generation())
}

func TestDisconnectDuringGameAborts(t *testing.T) {
	f := newFixture(t)
	rm, peers := f.started()
	f.h.OnDisconnect(peers[2])

	assert.Equal(t, room.PhaseLobby, rm.Phase())
	for _, p := range peers {
		if p == peers[2] {
			assert.Empty(t, p.inbox)
			continue
		}
		assert.Contains(t, logLines(p), "Cy disconnected, the game was aborted")
		state := lastOf[message.GameState](t, p)
		assert.False(t, state.GameStarted)
		assert.Len(t, state.Players, 4)
	}
}

func TestDisconnectInLobby(t *testing.T) {
	f := newFixture(t)
	peers := f.seat(2)

	f.h.OnDisconnect(peers[1])
	assert.Contains(t, logLines(peers[0]), "Bo left the room")
	assert.Len(t, lastOf[message.GameState](t, peers[0]).Players, 1)

	f.h.OnDisconnect(peers[0])
	_, ok := f.rooms.Get(tableID)
	assert.False(t, ok)
	assert.Zero(t, f.rooms.Len())

	// A second notification for the same peer is harmless.
	f.h.OnDisconnect(peers[0])
}

func TestGetPlayers(t *testing.T) {
	f := newFixture(t)
	peers := f.seat(3)
	for _, p := range peers {
		p.inbox = nil
	}
	f.send(peers[1], map[string]string{"action": "GET_PLAYERS", "roomId": tableID})

	list := lastOf[message.PlayerList](t, peers[1])
	assert.Len(t, list.Players, 3)
	assert.Empty(t, peers[0].inbox)
	assert.Empty(t, peers[2].inbox)
}

type panickingFeed struct{}

func (panickingFeed) RoomLog(string, message.LogEntry)   { panic("feed exploded") }
func (panickingFeed) RoomResult(string, message.GameEnd) {}

func TestPanicIsContained(t *testing.T) {
	f := newFixture(t, WithFeed(panickingFeed{}))
	p := f.connect("p0")
	f.join(p, "Ana")
	assert.Equal(t, "internal server error", lastError(t, p))

	f.send(p, map[string]string{"action": "GET_PLAYERS", "roomId": tableID})
	assert.Len(t, lastOf[message.PlayerList](t, p).Players, 1)
}
