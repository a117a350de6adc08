package player

import "math/rand/v2"

// Role is the secret identity a player holds for one game.
type Role string

const (
	RoleNone        Role = ""
	RoleKing        Role = "King"
	RoleGuard       Role = "Guard"
	RoleBigBandit   Role = "Big Bandit"
	RoleSmallBandit Role = "Small Bandit"
)

// Team is the side a role plays for.
type Team string

const (
	TeamNone    Team = ""
	TeamKing    Team = "King"
	TeamBandits Team = "Bandits"
)

// TableSize is the exact number of players a game is played with.
const TableSize = 5

// Lineup returns the fixed role multiset dealt every game.
func Lineup() []Role {
	return []Role{RoleKing, RoleGuard, RoleGuard, RoleBigBandit, RoleSmallBandit}
}

// AssignRoles returns a random permutation of Lineup.
func AssignRoles(r *rand.Rand) []Role {
	roles := Lineup()
	r.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })
	return roles
}

func (r Role) Team() Team {
	switch r {
	case RoleKing, RoleGuard:
		return TeamKing
	case RoleBigBandit, RoleSmallBandit:
		return TeamBandits
	default:
		return TeamNone
	}
}

func (r Role) IsBandit() bool { return r.Team() == TeamBandits }

// Abilities lists every once-per-game ability the role may use.
func (r Role) Abilities() Abilities {
	if r == RoleNone {
		return 0
	}
	set := Abilities(0).With(AbilitySwap).With(AbilityDraw)
	switch r {
	case RoleKing:
		set = set.With(AbilityPeek)
	case RoleBigBandit:
		set = set.With(AbilitySpecialSwap)
	}
	return set
}
