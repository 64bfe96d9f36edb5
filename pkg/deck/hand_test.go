package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand(t *testing.T) {
	a := assert.New(t)

	hand := Hand{}
	hand.AddCard(CardFromString("2c"))
	hand.AddCard(CardFromString("14s"))

	a.Equal("2c,14s", hand.String())
	a.True(hand.HasCard(CardFromString("14s")))
	a.False(hand.HasCard(CardFromString("3d")))

	clone := hand.Clone()
	clone.AddCard(CardFromString("5h"))
	a.Equal(2, len(hand))
	a.Equal(3, len(clone))
}
