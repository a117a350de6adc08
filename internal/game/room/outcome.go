package room

import (
	"fmt"
	"sort"

	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"
)

// Reveal is one player's role and card shown at the end of a game.
type Reveal struct {
	ID   string
	Name string
	Role player.Role
	Card *card.Card
}

// Tiebreak holds the numeric values the winner was decided on.
type Tiebreak struct {
	KingValue     int
	HighestBandit int
	SecondBandit  int
	HighestGuard  int
}

// Outcome is the result of a finished game.
type Outcome struct {
	Winner         player.Team
	TiebreakerUsed bool
	KingCard       card.Card
	Values         Tiebreak
	Players        []Reveal
}

// Decide applies the winning rule to the final values. The King team wins
// outright with a card above both Bandits and the Bandits win outright with a
// card above the King's. On a tie for top, the second Bandit must beat the
// best Guard for the Bandits to win.
func Decide(v Tiebreak) (winner player.Team, tiebreaker bool) {
	switch {
	case v.KingValue > v.HighestBandit:
		return player.TeamKing, false
	case v.HighestBandit > v.KingValue:
		return player.TeamBandits, false
	case v.SecondBandit > v.HighestGuard:
		return player.TeamBandits, true
	default:
		return player.TeamKing, true
	}
}

// Evaluate computes the outcome from the final hands of a full table.
func Evaluate(players []*player.Player) (Outcome, error) {
	var (
		king    *card.Card
		bandits []int
		guards  []int
		reveals = make([]Reveal, 0, len(players))
	)
	for _, p := range players {
		if p.Card == nil {
			return Outcome{}, fmt.Errorf("player %s holds no card", p.ID)
		}
		reveals = append(reveals, Reveal{ID: p.ID, Name: p.Name, Role: p.Role, Card: p.Card})
		switch p.Role {
		case player.RoleKing:
			if king != nil {
				return Outcome{}, fmt.Errorf("more than one King at the table")
			}
			king = p.Card
		case player.RoleGuard:
			guards = append(guards, p.Card.Numeric())
		case player.RoleBigBandit, player.RoleSmallBandit:
			bandits = append(bandits, p.Card.Numeric())
		default:
			return Outcome{}, fmt.Errorf("player %s has no role", p.ID)
		}
	}
	if king == nil || len(bandits) != 2 || len(guards) != 2 {
		return Outcome{}, fmt.Errorf("incomplete lineup: king=%t bandits=%d guards=%d", king != nil, len(bandits), len(guards))
	}

	sort.Sort(sort.Reverse(sort.IntSlice(bandits)))
	values := Tiebreak{
		KingValue:     king.Numeric(),
		HighestBandit: bandits[0],
		SecondBandit:  bandits[1],
		HighestGuard:  max(guards[0], guards[1]),
	}
	winner, tiebreaker := Decide(values)
	return Outcome{
		Winner:         winner,
		TiebreakerUsed: tiebreaker,
		KingCard:       *king,
		Values:         values,
		Players:        reveals,
	}, nil
}
