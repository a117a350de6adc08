//START OF FILE kingbandits/internal/game/card/card.go
package card

import (
	"encoding/json"
	"fmt"
)

// Suit is one of the four French suits.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitSymbols = [...]string{"♠", "♥", "♦", "♣"}

// Suits lists every suit in deck-building order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

func (s Suit) Symbol() string {
	if int(s) >= len(suitSymbols) {
		return "?"
	}
	return suitSymbols[s]
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool { return s == Hearts || s == Diamonds }

// Rank orders cards from Ace (weakest, 1) to King (strongest, 13).
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankSymbols = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Ranks lists every rank from weakest to strongest.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

func (r Rank) Symbol() string {
	if r < Ace || r > King {
		return "?"
	}
	return rankSymbols[r]
}

// Card is an immutable playing card. The zero value is not a valid card.
type Card struct {
	rank Rank
	suit Suit
}

// New builds a card, rejecting ranks or suits outside the standard deck.
func New(rank Rank, suit Suit) (Card, error) {
	if rank < Ace || rank > King {
		return Card{}, fmt.Errorf("invalid card rank: %d (must be 1-13)", rank)
	}
	if int(suit) >= len(suitSymbols) {
		return Card{}, fmt.Errorf("invalid card suit: %d", suit)
	}
	return Card{rank: rank, suit: suit}, nil
}

// MustNew is New for ranks and suits known to be valid.
func MustNew(rank Rank, suit Suit) Card {
	c, err := New(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Card) Rank() Rank   { return c.rank }
func (c Card) Suit() Suit   { return c.suit }
func (c Card) Numeric() int { return int(c.rank) }
func (c Card) IsRed() bool  { return c.suit.IsRed() }

// IsZero reports whether c was never dealt from a deck.
func (c Card) IsZero() bool { return c.rank == 0 }

func (c Card) String() string {
	return c.rank.Symbol() + c.suit.Symbol()
}

// wireCard is the JSON shape clients render.
type wireCard struct {
	Value        string `json:"value"`
	Suit         string `json:"suit"`
	NumericValue int    `json:"numericValue"`
	IsRed        bool   `json:"isRed"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCard{
		Value:        c.rank.Symbol(),
		Suit:         c.suit.Symbol(),
		NumericValue: c.Numeric(),
		IsRed:        c.IsRed(),
	})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var w wireCard
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	rank, ok := rankFromSymbol(w.Value)
	if !ok {
		return fmt.Errorf("unknown card value %q", w.Value)
	}
	suit, ok := suitFromSymbol(w.Suit)
	if !ok {
		return fmt.Errorf("unknown card suit %q", w.Suit)
	}
	*c = Card{rank: rank, suit: suit}
	return nil
}

func rankFromSymbol(s string) (Rank, bool) {
	for _, r := range Ranks {
		if rankSymbols[r] == s {
			return r, true
		}
	}
	return 0, false
}

func suitFromSymbol(s string) (Suit, bool) {
	for i, sym := range suitSymbols {
		if sym == s {
			return Suit(i), true
		}
	}
	return 0, false
}

//END OF FILE kingbandits/internal/game/card/card.go
