package card

import (
	"errors"
	"math/rand/v2"
)

// DeckSize is the number of cards a game starts with.
const DeckSize = 52

var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered pile of cards. The top of the deck is the last element.
type Deck []Card

// BuildDeck returns the 52 distinct cards, suit by suit, ranks ascending.
func BuildDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{rank: r, suit: s})
		}
	}
	return deck
}

// TripleAndTruncate concatenates d to itself three times and keeps the first
// DeckSize cards. Decks shorter than DeckSize come back with repeated cards.
func TripleAndTruncate(d Deck) Deck {
	tripled := make(Deck, 0, len(d)*3)
	for i := 0; i < 3; i++ {
		tripled = append(tripled, d...)
	}
	if len(tripled) > DeckSize {
		tripled = tripled[:DeckSize]
	}
	out := make(Deck, len(tripled))
	copy(out, tripled)
	return out
}

// Shuffle returns a Fisher-Yates permutation of d; d itself is left as is.
func Shuffle(d Deck, r *rand.Rand) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewGameDeck builds the deck a new game is dealt from.
func NewGameDeck(r *rand.Rand) Deck {
	return Shuffle(TripleAndTruncate(BuildDeck()), r)
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	n := len(*d)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	top := (*d)[n-1]
	*d = (*d)[:n-1]
	return top, nil
}

func (d Deck) Len() int { return len(d) }
