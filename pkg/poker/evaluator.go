package poker

import (
	"errors"
	"sort"

	"carddealer-server/pkg/deck"
)

// handSize is the number of cards in an evaluated poker hand
const handSize = 5

// ErrTooFewCards is an error when fewer than five cards are passed to FindBestHand
var ErrTooFewCards = errors.New("at least five cards are required to evaluate a hand")

type sortByRank []*deck.Card

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// FindBestHand returns the strongest five-card hand that can be made from the cards.
// Every five-card subset is evaluated and the maximum under Hand.Compare is kept,
// so a seven-card input checks all 21 subsets. If fewer than five cards are
// provided, ErrTooFewCards is returned.
func FindBestHand(cards []*deck.Card) (*Hand, error) {
	if len(cards) < handSize {
		return nil, ErrTooFewCards
	}

	var best *Hand
	forEachSubset(cards, handSize, func(subset []*deck.Card) {
		hand := evaluateHand(subset)
		if best == nil || hand.Compare(best) > 0 {
			best = hand
		}
	})

	return best, nil
}

// forEachSubset calls fn with every k-card subset of cards.
// The slice passed to fn is reused between calls; fn must not retain it.
func forEachSubset(cards []*deck.Card, k int, fn func([]*deck.Card)) {
	subset := make([]*deck.Card, k)

	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			fn(subset)
			return
		}

		for i := start; i <= len(cards)-(k-depth); i++ {
			subset[depth] = cards[i]
			recurse(i+1, depth+1)
		}
	}

	recurse(0, 0)
}

// evaluateHand classifies exactly five cards into a Hand
func evaluateHand(cards []*deck.Card) *Hand {
	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.Sort(sort.Reverse(sortByRank(sorted)))

	isFlush := checkFlush(sorted)
	isStraight := checkStraight(sorted)

	var category Category
	switch {
	case isFlush && isStraight:
		category = StraightFlush
	case hasOfAKind(sorted, 4):
		category = FourOfAKind
	case hasOfAKind(sorted, 3) && hasOfAKind(sorted, 2):
		category = FullHouse
	case isFlush:
		category = Flush
	case isStraight:
		category = Straight
	case hasOfAKind(sorted, 3):
		category = ThreeOfAKind
	case countPairs(sorted) == 2:
		category = TwoPair
	case countPairs(sorted) == 1:
		category = OnePair
	default:
		category = HighCard
	}

	return &Hand{
		Cards:    sorted,
		Category: category,
	}
}

// checkFlush returns true if all five cards share a suit
func checkFlush(cards deck.Hand) bool {
	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			return false
		}
	}

	return true
}

// checkStraight returns true if the cards form five consecutive ranks.
// The ace is always high; there is no wheel (A-2-3-4-5) straight.
// The cards must already be sorted descending by rank.
func checkStraight(cards deck.Hand) bool {
	for i, card := range cards {
		if card.Rank != cards[0].Rank-i {
			return false
		}
	}

	return true
}

// hasOfAKind returns true if any rank occurs exactly n times
func hasOfAKind(cards deck.Hand, n int) bool {
	for _, count := range rankCounts(cards) {
		if count == n {
			return true
		}
	}

	return false
}

// countPairs returns the number of distinct ranks occurring exactly twice
func countPairs(cards deck.Hand) int {
	pairs := 0
	for _, count := range rankCounts(cards) {
		if count == 2 {
			pairs++
		}
	}

	return pairs
}

func rankCounts(cards deck.Hand) map[int]int {
	counts := make(map[int]int)
	for _, card := range cards {
		counts[card.Rank]++
	}

	return counts
}
