package room

import "errors"

// Kind classifies a room error for reporting.
type Kind int

const (
	KindUnknown Kind = iota
	KindProtocol
	KindAuthorization
	KindAbilityReuse
	KindResourceExhaustion
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindAuthorization:
		return "authorization"
	case KindAbilityReuse:
		return "ability_reuse"
	case KindResourceExhaustion:
		return "resource_exhaustion"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a validation failure. Operations that return one leave the room untouched.
type Error struct {
	kind Kind
	msg  string
}

// NewError builds a classified error for layers that report through the same taxonomy.
func NewError(kind Kind, msg string) *Error { return &Error{kind: kind, msg: msg} }

func newError(kind Kind, msg string) *Error { return NewError(kind, msg) }

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

var (
	ErrUnknownAction = newError(KindProtocol, "unknown action")

	ErrRoomFull            = newError(KindAuthorization, "room is full")
	ErrAlreadySeated       = newError(KindAuthorization, "player is already in the room")
	ErrNotEnoughPlayers    = newError(KindAuthorization, "exactly 5 players are needed to start")
	ErrNotAllowedToRestart = newError(KindAuthorization, "only the player who started the game can restart it")
	ErrGameNotStarted      = newError(KindAuthorization, "the game has not started")
	ErrNotYourTurn         = newError(KindAuthorization, "it is not your turn")
	ErrDuplicateAction     = newError(KindAuthorization, "you already acted this turn")
	ErrNotKing             = newError(KindAuthorization, "only the King can peek")
	ErrNotBigBandit        = newError(KindAuthorization, "only the Big Bandit can special swap")

	ErrAlreadyDrawn          = newError(KindAbilityReuse, "you already drew a card this game")
	ErrAlreadySwapped        = newError(KindAbilityReuse, "you already swapped this game")
	ErrAlreadySpecialSwapped = newError(KindAbilityReuse, "you already used the special swap this game")
	ErrAlreadyPeeked         = newError(KindAbilityReuse, "you already peeked this game")

	ErrEmptyDeck = newError(KindResourceExhaustion, "the deck is empty")

	ErrRoomNotFound   = newError(KindNotFound, "room not found")
	ErrPlayerNotFound = newError(KindNotFound, "player not found")
	ErrInvalidTarget  = newError(KindNotFound, "invalid target player")
)

// KindOf returns the classification of err, looking through wrapping.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}
