package room

import (
	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"
)

// PlayerView is a player as seen by one recipient.
type PlayerView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      *player.Role `json:"role"`
	Card      *card.Card   `json:"card"`
	IsCurrent bool         `json:"isCurrent"`
	Passed    bool         `json:"passed"`
}

// Snapshot is the room state as seen by one recipient.
type Snapshot struct {
	RoomID             string
	Players            []PlayerView
	CurrentPlayerIndex int
	DeckCount          int
	GameStarted        bool
	GameStartedBy      string
	Phase              Phase
}

// PlayersFor projects the table for viewerID: the viewer sees their own role
// and card, everyone sees the King's role, and no other card is disclosed.
func (r *Room) PlayersFor(viewerID string) []PlayerView {
	views := make([]PlayerView, len(r.players))
	for i, p := range r.players {
		v := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			IsCurrent: p.IsCurrent,
			Passed:    p.Passed,
		}
		if p.Role != player.RoleNone && (p.ID == viewerID || p.Role == player.RoleKing) {
			role := p.Role
			v.Role = &role
		}
		if p.ID == viewerID && p.Card != nil {
			c := *p.Card
			v.Card = &c
		}
		views[i] = v
	}
	return views
}

func (r *Room) SnapshotFor(viewerID string) Snapshot {
	return Snapshot{
		RoomID:             r.ID,
		Players:            r.PlayersFor(viewerID),
		CurrentPlayerIndex: r.current,
		DeckCount:          r.deck.Len(),
		GameStarted:        r.phase != PhaseLobby,
		GameStartedBy:      r.startedBy,
		Phase:              r.phase,
	}
}
