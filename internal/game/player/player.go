package player

import "kingbandits/internal/game/card"

// Player is one seat at a room. Everything below Name is per-game state.
type Player struct {
	ID   string
	Name string

	Role Role
	Card *card.Card
	Used Abilities

	Passed            bool
	PassedDuringCycle bool
	ActionsTaken      int
	IsCurrent         bool
}

func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

// CanUse reports whether the player's role grants a and it is still unused.
func (p *Player) CanUse(a Ability) bool {
	return p.Role.Abilities().Has(a) && !p.Used.Has(a)
}

func (p *Player) Consume(a Ability) { p.Used = p.Used.With(a) }

// Exhausted reports whether every ability of the player's role has been used.
func (p *Player) Exhausted() bool {
	return p.Role != RoleNone && p.Used.Covers(p.Role.Abilities())
}

// BeginTurn marks the player as the one to act.
func (p *Player) BeginTurn() {
	p.IsCurrent = true
	p.ActionsTaken = 0
	p.Passed = false
}

// Deal prepares the player for a new game.
func (p *Player) Deal(role Role, c card.Card) {
	p.Reset()
	p.Role = role
	p.Card = &c
}

// Reset returns the player to lobby state.
func (p *Player) Reset() {
	p.Role = RoleNone
	p.Card = nil
	p.Used = 0
	p.Passed = false
	p.PassedDuringCycle = false
	p.ActionsTaken = 0
	p.IsCurrent = false
}
