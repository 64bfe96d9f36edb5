package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/poker"
)

func TestNewPlayer(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 1000)
	a.Equal("p1", p.ID)
	a.Equal("Alice", p.DisplayName)
	a.Equal(1000, p.ChipStack)
	a.True(p.IsInPlay)
	a.False(p.IsSittingOut)
	a.Nil(p.BestHand)
	a.Nil(p.HandStrength)
}

func TestPlayer_EvaluateHand(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 1000)
	p.HoleCards = deck.CardsFromString("14s,14d")

	community := deck.CardsFromString("14c,13h,13d,2c,7s")
	a.NoError(p.EvaluateHand(community))

	a.NotNil(p.BestHand)
	a.Equal(poker.FullHouse, p.BestHand.Category)

	// HandStrength mirrors the best hand's category
	a.NotNil(p.HandStrength)
	a.Equal(p.BestHand.Category, *p.HandStrength)
}

func TestPlayer_EvaluateHand_recomputes(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 1000)
	p.HoleCards = deck.CardsFromString("2s,7d")

	a.NoError(p.EvaluateHand(deck.CardsFromString("3c,9h,11d")))
	a.Equal(poker.HighCard, *p.HandStrength)

	// a later evaluation fully replaces the previous result
	a.NoError(p.EvaluateHand(deck.CardsFromString("2c,2d,7h,7c,9s")))
	a.Equal(poker.FullHouse, *p.HandStrength)
}

func TestPlayer_EvaluateHand_tooFewCards(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 1000)
	p.HoleCards = deck.CardsFromString("2s,7d")

	err := p.EvaluateHand(deck.CardsFromString("3c,9h"))
	a.Equal(poker.ErrTooFewCards, err)

	// a failed evaluation must not store a partial result
	a.Nil(p.BestHand)
	a.Nil(p.HandStrength)
}

func TestPlayer_Bet(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 100)
	a.NoError(p.Bet(60))
	a.Equal(40, p.ChipStack)

	a.Equal(ErrInsufficientChips, p.Bet(50))
	a.Equal(40, p.ChipStack)

	a.NoError(p.Bet(40))
	a.True(p.IsAllIn())

	a.Equal([]Action{
		{Type: ActionBet, Amount: 60},
		{Type: ActionBet, Amount: 40},
	}, p.Actions())
}

func TestPlayer_Raise(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 500)
	total, err := p.Raise(100, 50)
	a.NoError(err)
	a.Equal(150, total)
	a.Equal(350, p.ChipStack)

	_, err = p.Raise(300, 100)
	a.Equal(ErrInsufficientChips, err)
	a.Equal(350, p.ChipStack)
}

func TestPlayer_Fold(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 100)
	p.HoleCards = deck.CardsFromString("14s,14d")
	a.NoError(p.EvaluateHand(deck.CardsFromString("2c,3c,4c,5h,9d")))

	p.Fold()
	a.False(p.IsInPlay)
	a.Equal(0, len(p.HoleCards))
	a.Nil(p.BestHand)
	a.Nil(p.HandStrength)
}

func TestPlayer_SitOut(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 100)
	p.SitOut()
	a.True(p.IsSittingOut)
	a.False(p.IsInPlay)

	// a sitting-out player stays out across hands
	p.ResetForNewHand()
	a.False(p.IsInPlay)
}

func TestPlayer_ResetForNewHand(t *testing.T) {
	a := assert.New(t)

	p := NewPlayer("p1", "Alice", 0, 100)
	p.HoleCards = deck.CardsFromString("14s,14d")
	a.NoError(p.EvaluateHand(deck.CardsFromString("2c,3c,4c,5h,9d")))
	a.NoError(p.Bet(50))
	p.Fold()

	p.ResetForNewHand()
	a.True(p.IsInPlay)
	a.Equal(0, len(p.HoleCards))
	a.Nil(p.BestHand)
	a.Nil(p.HandStrength)
	a.Equal(0, len(p.Actions()))
	a.Equal(50, p.ChipStack)

	p.AddChips(25)
	a.Equal(75, p.ChipStack)
}
