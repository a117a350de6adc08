package room

import (
	"fmt"

	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"
)

// CycleState tracks laps of play measured from the King's seat. A lap opens
// when play reaches the seat after the King and closes when it returns there.
type CycleState int

const (
	// CycleIdle: no lap has opened since the deal.
	CycleIdle CycleState = iota
	// CycleOpen: a lap is running; pass bookkeeping counts toward it.
	CycleOpen
	// CycleClosed: play is back at the King after a full lap.
	CycleClosed
)

func (c CycleState) String() string {
	switch c {
	case CycleIdle:
		return "idle"
	case CycleOpen:
		return "open"
	case CycleClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Start deals a new game. From the lobby any seated player may start it;
// once a game exists only the player who started it may restart.
func (r *Room) Start(initiatorID string) error {
	if r.indexOf(initiatorID) < 0 {
		return ErrPlayerNotFound
	}
	if r.phase != PhaseLobby && initiatorID != r.startedBy {
		return ErrNotAllowedToRestart
	}
	if len(r.players) != player.TableSize {
		return ErrNotEnoughPlayers
	}
	return r.deal(initiatorID, player.AssignRoles(r.rng), card.NewGameDeck(r.rng))
}

func (r *Room) deal(initiatorID string, roles []player.Role, deck card.Deck) error {
	if err := validateLineup(roles, len(r.players)); err != nil {
		return err
	}
	if deck.Len() < len(r.players) {
		return ErrEmptyDeck
	}

	for i, p := range r.players {
		c, _ := deck.Draw()
		p.Deal(roles[i], c)
	}
	r.deck = deck
	r.phase = PhaseInProgress
	r.startedBy = initiatorID
	r.generation++
	r.cycle = CycleIdle
	r.passesThisCycle = 0
	r.outcome = nil

	r.current = (r.kingIndex() + 1) % len(r.players)
	r.players[r.current].BeginTurn()
	return nil
}

func validateLineup(roles []player.Role, seats int) error {
	if len(roles) != seats {
		return fmt.Errorf("got %d roles for %d seats", len(roles), seats)
	}
	want := make(map[player.Role]int)
	for _, role := range player.Lineup() {
		want[role]++
	}
	for _, role := range roles {
		want[role]--
	}
	for role, n := range want {
		if n != 0 {
			return fmt.Errorf("role %q dealt %d times too few", role, n)
		}
	}
	return nil
}

// advanceTurn hands the turn to the next seat in join order.
func (r *Room) advanceTurn() {
	n := len(r.players)
	r.players[r.current].IsCurrent = false
	king := r.kingIndex()
	r.current = (r.current + 1) % n

	switch {
	case r.cycle != CycleOpen && r.current == (king+1)%n:
		r.cycle = CycleOpen
		r.passesThisCycle = 0
		for _, p := range r.players {
			p.PassedDuringCycle = false
		}
	case r.cycle == CycleOpen && r.current == king:
		r.cycle = CycleClosed
	}

	r.players[r.current].BeginTurn()
}

// lapPassedByAll reports whether every player except the King passed during
// the lap that just closed.
func (r *Room) lapPassedByAll() bool {
	if r.cycle != CycleClosed {
		return false
	}
	for _, p := range r.players {
		if p.Role != player.RoleKing && !p.PassedDuringCycle {
			return false
		}
	}
	return true
}

// abilitiesExhausted reports whether nobody has an ability left.
func (r *Room) abilitiesExhausted() bool {
	for _, p := range r.players {
		if !p.Exhausted() {
			return false
		}
	}
	return true
}

func (r *Room) end() (*Outcome, error) {
	for _, p := range r.players {
		p.IsCurrent = false
	}
	r.phase = PhaseEnded
	outcome, err := Evaluate(r.players)
	if err != nil {
		return nil, fmt.Errorf("evaluate room %s: %w", r.ID, err)
	}
	r.outcome = &outcome
	return r.outcome, nil
}
