package room

import (
	"fmt"

	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"
)

// ActionKind is the wire tag of a player action.
type ActionKind string

const (
	ActionPass        ActionKind = "PASS"
	ActionDraw        ActionKind = "DRAW"
	ActionSwap        ActionKind = "SWAP"
	ActionSpecialSwap ActionKind = "SPECIAL_SWAP"
	ActionPeek        ActionKind = "PEEK"
)

// Action is one of Pass, Draw, Swap, SpecialSwap or Peek.
type Action interface {
	Kind() ActionKind
	isAction()
}

type Pass struct{}

type Draw struct{}

// Swap exchanges the actor's card with Target's.
type Swap struct{ Target string }

// SpecialSwap exchanges the cards of two distinct players, possibly including the actor.
type SpecialSwap struct{ First, Second string }

// Peek shows Target's card to the actor only.
type Peek struct{ Target string }

func (Pass) Kind() ActionKind        { return ActionPass }
func (Draw) Kind() ActionKind        { return ActionDraw }
func (Swap) Kind() ActionKind        { return ActionSwap }
func (SpecialSwap) Kind() ActionKind { return ActionSpecialSwap }
func (Peek) Kind() ActionKind        { return ActionPeek }

func (Pass) isAction()        {}
func (Draw) isAction()        {}
func (Swap) isAction()        {}
func (SpecialSwap) isAction() {}
func (Peek) isAction()        {}

// Event is the public record of an applied action.
type Event struct {
	Actor        string
	Action       ActionKind
	Target       string
	SecondTarget string
}

// Message renders the event for the room log. It never carries card values.
func (e Event) Message() string {
	switch e.Action {
	case ActionPass:
		return fmt.Sprintf("%s passed", e.Actor)
	case ActionDraw:
		return fmt.Sprintf("%s drew a new card", e.Actor)
	case ActionSwap:
		return fmt.Sprintf("%s swapped cards with %s", e.Actor, e.Target)
	case ActionSpecialSwap:
		return fmt.Sprintf("%s used a special swap between %s and %s", e.Actor, e.Target, e.SecondTarget)
	case ActionPeek:
		return fmt.Sprintf("%s peeked at %s's card", e.Actor, e.Target)
	default:
		return fmt.Sprintf("%s acted", e.Actor)
	}
}

// PeekResult is delivered privately to the King who peeked.
type PeekResult struct {
	ViewerID   string
	TargetName string
	Card       card.Card
}

// Resolution describes the side effects of an applied action.
type Resolution struct {
	Event   Event
	Peek    *PeekResult
	Outcome *Outcome // set when the action ended the game
}

// Apply validates and applies an action by actorID. On error the room is unchanged.
func (r *Room) Apply(actorID string, a Action) (Resolution, error) {
	if r.phase != PhaseInProgress {
		return Resolution{}, ErrGameNotStarted
	}
	idx := r.indexOf(actorID)
	if idx < 0 {
		return Resolution{}, ErrPlayerNotFound
	}
	actor := r.players[idx]
	if !actor.IsCurrent || idx != r.current {
		return Resolution{}, ErrNotYourTurn
	}
	if actor.ActionsTaken != 0 {
		return Resolution{}, ErrDuplicateAction
	}

	switch act := a.(type) {
	case Pass:
		return r.pass(actor)
	case Draw:
		return r.draw(actor)
	case Swap:
		return r.swap(actor, act)
	case SpecialSwap:
		return r.specialSwap(actor, act)
	case Peek:
		return r.peek(actor, act)
	default:
		return Resolution{}, ErrUnknownAction
	}
}

func (r *Room) pass(actor *player.Player) (Resolution, error) {
	actor.Passed = true
	actor.PassedDuringCycle = true
	actor.ActionsTaken++
	r.passesThisCycle++

	res := Resolution{Event: Event{Actor: actor.Name, Action: ActionPass}}
	if actor.Role == player.RoleKing && r.lapPassedByAll() {
		outcome, err := r.end()
		if err != nil {
			return res, err
		}
		res.Outcome = outcome
		return res, nil
	}
	r.advanceTurn()
	return res, nil
}

func (r *Room) draw(actor *player.Player) (Resolution, error) {
	if !actor.CanUse(player.AbilityDraw) {
		return Resolution{}, ErrAlreadyDrawn
	}
	c, err := r.deck.Draw()
	if err != nil {
		return Resolution{}, ErrEmptyDeck
	}
	actor.Card = &c
	return r.finishAbility(actor, player.AbilityDraw, Resolution{
		Event: Event{Actor: actor.Name, Action: ActionDraw},
	})
}

func (r *Room) swap(actor *player.Player, act Swap) (Resolution, error) {
	if !actor.CanUse(player.AbilitySwap) {
		return Resolution{}, ErrAlreadySwapped
	}
	target, ok := r.Player(act.Target)
	if !ok || target == actor || target.Card == nil || actor.Card == nil {
		return Resolution{}, ErrInvalidTarget
	}
	actor.Card, target.Card = target.Card, actor.Card
	return r.finishAbility(actor, player.AbilitySwap, Resolution{
		Event: Event{Actor: actor.Name, Action: ActionSwap, Target: target.Name},
	})
}

func (r *Room) specialSwap(actor *player.Player, act SpecialSwap) (Resolution, error) {
	if actor.Role != player.RoleBigBandit {
		return Resolution{}, ErrNotBigBandit
	}
	if !actor.CanUse(player.AbilitySpecialSwap) {
		return Resolution{}, ErrAlreadySpecialSwapped
	}
	first, ok1 := r.Player(act.First)
	second, ok2 := r.Player(act.Second)
	if !ok1 || !ok2 || first == second || first.Card == nil || second.Card == nil {
		return Resolution{}, ErrInvalidTarget
	}
	first.Card, second.Card = second.Card, first.Card
	return r.finishAbility(actor, player.AbilitySpecialSwap, Resolution{
		Event: Event{Actor: actor.Name, Action: ActionSpecialSwap, Target: first.Name, SecondTarget: second.Name},
	})
}

func (r *Room) peek(actor *player.Player, act Peek) (Resolution, error) {
	if actor.Role != player.RoleKing {
		return Resolution{}, ErrNotKing
	}
	if !actor.CanUse(player.AbilityPeek) {
		return Resolution{}, ErrAlreadyPeeked
	}
	target, ok := r.Player(act.Target)
	if !ok {
		return Resolution{}, ErrPlayerNotFound
	}
	if target == actor || target.Card == nil {
		return Resolution{}, ErrInvalidTarget
	}
	return r.finishAbility(actor, player.AbilityPeek, Resolution{
		Event: Event{Actor: actor.Name, Action: ActionPeek, Target: target.Name},
		Peek:  &PeekResult{ViewerID: actor.ID, TargetName: target.Name, Card: *target.Card},
	})
}

// finishAbility books a consumed ability, moves the turn on and ends the game
// once no ability is left at the table.
func (r *Room) finishAbility(actor *player.Player, a player.Ability, res Resolution) (Resolution, error) {
	actor.Consume(a)
	actor.ActionsTaken++
	actor.PassedDuringCycle = false
	r.advanceTurn()

	if r.abilitiesExhausted() {
		outcome, err := r.end()
		if err != nil {
			return res, err
		}
		res.Outcome = outcome
	}
	return res, nil
}
