package player

import "strings"

// Ability is a once-per-game capability tag.
type Ability uint8

const (
	AbilitySwap Ability = 1 << iota
	AbilityDraw
	AbilitySpecialSwap
	AbilityPeek
)

var abilityNames = map[Ability]string{
	AbilitySwap:        "swap",
	AbilityDraw:        "draw",
	AbilitySpecialSwap: "special swap",
	AbilityPeek:        "peek",
}

func (a Ability) String() string {
	if name, ok := abilityNames[a]; ok {
		return name
	}
	return "unknown"
}

// Abilities is a set of ability tags.
type Abilities uint8

func (s Abilities) Has(a Ability) bool { return s&Abilities(a) != 0 }

func (s Abilities) With(a Ability) Abilities { return s | Abilities(a) }

// Covers reports whether every ability in other is also in s.
func (s Abilities) Covers(other Abilities) bool { return s&other == other }

func (s Abilities) String() string {
	var names []string
	for _, a := range []Ability{AbilitySwap, AbilityDraw, AbilitySpecialSwap, AbilityPeek} {
		if s.Has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}
