package room

import (
	"math/rand/v2"
	"time"

	"kingbandits/internal/game/card"
	"kingbandits/internal/game/player"
)

// Phase is the lifecycle stage of a room.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseInProgress
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseInProgress:
		return "in_progress"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Room is one authoritative game table. It is not safe for concurrent use;
// the owner serializes every call.
type Room struct {
	ID string

	players []*player.Player // join order, also turn order
	deck    card.Deck
	current int

	phase      Phase
	startedBy  string
	generation uint64

	cycle           CycleState
	passesThisCycle int

	outcome *Outcome
	rng     *rand.Rand
}

type Option func(*Room)

// WithRand sets the random source for role assignment and shuffling.
func WithRand(r *rand.Rand) Option {
	return func(rm *Room) { rm.rng = r }
}

func New(id string, opts ...Option) *Room {
	r := &Room{
		ID:      id,
		players: make([]*player.Player, 0, player.TableSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := uint64(time.Now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>17))
	}
	r.deck = card.NewGameDeck(r.rng)
	return r
}

// AddPlayer seats a new player at the end of the turn order.
func (r *Room) AddPlayer(id, name string) (*player.Player, error) {
	if r.indexOf(id) >= 0 {
		return nil, ErrAlreadySeated
	}
	if len(r.players) >= player.TableSize {
		return nil, ErrRoomFull
	}
	p := player.NewPlayer(id, name)
	r.players = append(r.players, p)
	return p, nil
}

// RemovePlayer drops a player from the room. Leaving an active or ended game
// aborts it and returns the room to the lobby.
func (r *Room) RemovePlayer(id string) (removed, aborted bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return false, false
	}
	r.players = append(r.players[:idx], r.players[idx+1:]...)
	if r.phase != PhaseLobby {
		r.ResetToLobby()
		aborted = true
	}
	return true, aborted
}

func (r *Room) Len() int           { return len(r.players) }
func (r *Room) Empty() bool        { return len(r.players) == 0 }
func (r *Room) Full() bool         { return len(r.players) >= player.TableSize }
func (r *Room) Phase() Phase       { return r.phase }
func (r *Room) StartedBy() string  { return r.startedBy }
func (r *Room) DeckCount() int     { return r.deck.Len() }

// Generation increases every time a game is dealt.
func (r *Room) Generation() uint64 { return r.generation }

func (r *Room) Cycle() CycleState    { return r.cycle }
func (r *Room) PassesThisCycle() int { return r.passesThisCycle }

// Outcome is the result of the last finished game, nil otherwise.
func (r *Room) Outcome() *Outcome { return r.outcome }

// CurrentIndex is the join-order index of the player to act.
func (r *Room) CurrentIndex() int { return r.current }

// Current returns the player to act, nil outside an active game.
func (r *Room) Current() *player.Player {
	if r.phase != PhaseInProgress || r.current >= len(r.players) {
		return nil
	}
	return r.players[r.current]
}

// King returns the King of the dealt game, nil in the lobby.
func (r *Room) King() *player.Player {
	if i := r.kingIndex(); i >= 0 {
		return r.players[i]
	}
	return nil
}

// Player looks up a seated player by id.
func (r *Room) Player(id string) (*player.Player, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return r.players[idx], true
}

// PlayerIDs lists seated players in turn order.
func (r *Room) PlayerIDs() []string {
	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

// ResetToLobby clears every per-game field and the deck.
func (r *Room) ResetToLobby() {
	for _, p := range r.players {
		p.Reset()
	}
	r.deck = nil
	r.current = 0
	r.phase = PhaseLobby
	r.startedBy = ""
	r.cycle = CycleIdle
	r.passesThisCycle = 0
	r.outcome = nil
}

func (r *Room) indexOf(id string) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// kingIndex returns the King's seat, or -1 outside a dealt game.
func (r *Room) kingIndex() int {
	for i, p := range r.players {
		if p.Role == player.RoleKing {
			return i
		}
	}
	return -1
}
