package deck

import (
	"errors"

	"carddealer-server/internal/rng"
)

// ErrInsufficientCards is an error when a deal is attempted for more cards than remain
var ErrInsufficientCards = errors.New("not enough cards left in the deck")

// Deck represents a playing deck
type Deck struct {
	Cards []*Card `json:"cards"`
	rand  rng.Generator
}

// New returns a new, shuffled 52-card deck
func New() *Deck {
	d := &Deck{
		rand: rng.Crypto{},
	}

	d.buildDeck()
	d.shuffle()
	return d
}

// SetRandomizer will replace the random source.
// This should only be used by tests that need a deterministic shuffle.
func (d *Deck) SetRandomizer(r rng.Generator) {
	d.rand = r
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will rebuild and shuffle the deck
func (d *Deck) Shuffle() {
	d.buildDeck()
	d.shuffle()
}

func (d *Deck) shuffle() {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rand.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Deal removes and returns the next count cards from the deck.
// If fewer than count cards remain, ErrInsufficientCards is returned and the deck is untouched.
func (d *Deck) Deal(count int) ([]*Card, error) {
	if count > len(d.Cards) {
		return nil, ErrInsufficientCards
	}

	cards := d.Cards[0:count]
	d.Cards = d.Cards[count:]

	return cards, nil
}

// CanDeal returns true if there are at least {want} cards left in the deck
func (d *Deck) CanDeal(want int) bool {
	return len(d.Cards) >= want
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.Cards)
}

// Reset returns the deck to a full, freshly shuffled 52-card state
func (d *Deck) Reset() {
	d.buildDeck()
	d.shuffle()
}
