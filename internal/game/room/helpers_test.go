package room

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"

	"github.com/stretchr/testify/require"
)

var names = []string{"Ana", "Bo", "Cy", "Di", "Ed"}

// kingAtTwo seats the King third so play opens on seat 3.
var kingAtTwo = []player.Role{
	player.RoleGuard,
	player.RoleBigBandit,
	player.RoleKing,
	player.RoleSmallBandit,
	player.RoleGuard,
}

func seatedRoom(t *testing.T, n int) *Room {
	t.Helper()
	r := New("room-1", WithRand(rand.New(rand.NewPCG(1, 2))))
	for i := 0; i < n; i++ {
		_, err := r.AddPlayer(fmt.Sprintf("p%d", i), names[i])
		require.NoError(t, err)
	}
	return r
}

// dealtRoom deals roles in seat order; seat i receives ranks[i] and the
// remaining deck holds one Queen of Spades per entry in spare.
func dealtRoom(t *testing.T, roles []player.Role, ranks []card.Rank, spare int) *Room {
	t.Helper()
	r := seatedRoom(t, player.TableSize)
	deck := make(card.Deck, 0, spare+len(ranks))
	for i := 0; i < spare; i++ {
		deck = append(deck, card.MustNew(card.Queen, card.Spades))
	}
	for i := len(ranks) - 1; i >= 0; i-- {
		deck = append(deck, card.MustNew(ranks[i], card.Hearts))
	}
	require.NoError(t, r.deal("p0", roles, deck))
	return r
}

func defaultRoom(t *testing.T) *Room {
	return dealtRoom(t, kingAtTwo, []card.Rank{card.Two, card.Three, card.Four, card.Five, card.Six}, 5)
}

func id(seat int) string { return fmt.Sprintf("p%d", seat) }

func currentCount(r *Room) int {
	n := 0
	for _, p := range r.players {
		if p.IsCurrent {
			n++
		}
	}
	return n
}

// passRound makes the next k players pass in turn.
func passRound(t *testing.T, r *Room, k int) {
	t.Helper()
	for i := 0; i < k; i++ {
		_, err := r.Apply(r.Current().ID, Pass{})
		require.NoError(t, err)
	}
}
