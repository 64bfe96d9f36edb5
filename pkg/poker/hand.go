package poker

import (
	"carddealer-server/pkg/deck"
)

// Hand is an evaluated five-card poker hand.
// Cards are ordered descending by rank. Hands are only produced by FindBestHand,
// which guarantees Category is the correct classification of Cards.
type Hand struct {
	Cards    deck.Hand `json:"cards"`
	Category Category  `json:"category"`
}

// Compare provides a total order over hands.
// It returns a negative number if h is the weaker hand, a positive number if
// h is the stronger hand, and zero if the hands are of equal strength.
// The category is compared first, then the ranks of the cards position-by-position.
// Suits never affect the order.
func (h *Hand) Compare(other *Hand) int {
	if h.Category != other.Category {
		return int(h.Category) - int(other.Category)
	}

	for i, card := range h.Cards {
		if i >= len(other.Cards) {
			break
		}

		if cmp := card.Rank - other.Cards[i].Rank; cmp != 0 {
			return cmp
		}
	}

	return 0
}

// Equal returns true if the hands are of equal strength
func (h *Hand) Equal(other *Hand) bool {
	return h.Compare(other) == 0
}

func (h *Hand) String() string {
	return h.Cards.String()
}
