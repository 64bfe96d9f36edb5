package game

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/table"
)

func newTestGame(t *testing.T, players ...string) *Controller {
	t.Helper()

	c := New(logrus.StandardLogger())
	for _, name := range players {
		_, err := c.AddPlayer(name, name, 1000)
		assert.NoError(t, err)
	}

	return c
}

func TestController_AddPlayer(t *testing.T) {
	a := assert.New(t)

	c := New(logrus.StandardLogger())
	p, err := c.AddPlayer("p1", "Alice", 500)
	a.NoError(err)
	a.Equal(0, p.TablePosition)
	a.Equal(500, p.ChipStack)

	p2, err := c.AddPlayer("p2", "Bob", 500)
	a.NoError(err)
	a.Equal(1, p2.TablePosition)

	_, err = c.AddPlayer("p1", "Imposter", 500)
	a.Equal(ErrPlayerExists, err)
	a.Equal(2, len(c.Players()))
}

func TestController_DealHoleCards(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2", "p3")
	a.NoError(c.DealHoleCards())

	seen := make(map[string]bool)
	for _, player := range c.Players() {
		a.Equal(2, len(player.HoleCards))
		for _, card := range player.HoleCards {
			s := deck.CardToString(card)
			a.False(seen[s], "card %s dealt twice", s)
			seen[s] = true
		}
	}
}

func TestController_DealHoleCards_noPlayers(t *testing.T) {
	c := New(logrus.StandardLogger())
	assert.Equal(t, ErrNoPlayers, c.DealHoleCards())
}

func TestController_DealHoleCards_insufficientCards(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2")

	// burn through most of the deck
	for i := 0; i < 12; i++ {
		a.NoError(c.DealHoleCards())
	}

	// 48 cards dealt; 4 remain, the next full deal fits exactly
	a.NoError(c.DealHoleCards())
	a.Equal(deck.ErrInsufficientCards, c.DealHoleCards())
}

func TestController_DealCommunityCards(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2", "p3")
	a.NoError(c.DealHoleCards())
	a.NoError(c.DealCommunityCards())

	a.Equal(5, len(c.CommunityCards()))

	// every player was evaluated
	for _, player := range c.Players() {
		a.NotNil(player.BestHand)
		a.NotNil(player.HandStrength)
		a.Equal(player.BestHand.Category, *player.HandStrength)
		a.Equal(5, len(player.BestHand.Cards))
	}
}

func TestController_fullRound(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2", "p3")
	a.NoError(c.DealHoleCards())

	a.NoError(c.AddBet("p1", 100))
	a.NoError(c.AddBet("p2", 100))
	a.NoError(c.AddBet("p3", 100))
	a.Equal(300, c.Table().PotTotal())
	a.Equal(900, mustPlayer(t, c, "p1").ChipStack)

	a.NoError(c.DealCommunityCards())
	a.NoError(c.ResolvePots())

	pots := c.PotViews()
	a.Equal(1, len(pots))
	a.NotEmpty(pots[0].Winners)

	// the pot winners hold the maximum hand over all players
	winners, err := c.GetWinners(nil)
	a.NoError(err)
	a.Equal(winners, pots[0].Winners)
}

func TestController_AddBet_allIn(t *testing.T) {
	a := assert.New(t)

	c := New(logrus.StandardLogger())
	_, err := c.AddPlayer("short", "Shorty", 100)
	a.NoError(err)
	_, err = c.AddPlayer("big1", "Big One", 1000)
	a.NoError(err)
	_, err = c.AddPlayer("big2", "Big Two", 1000)
	a.NoError(err)

	a.NoError(c.DealHoleCards())

	a.NoError(c.AddBet("short", 100))
	a.True(mustPlayer(t, c, "short").IsAllIn())

	a.NoError(c.AddBet("big1", 300))
	a.NoError(c.AddBet("big2", 300))

	pots := c.PotViews()
	a.Equal(2, len(pots))
	a.Equal(300, pots[0].Total)
	a.Equal([]string{"short", "big1", "big2"}, pots[0].EligiblePlayers)
	a.Equal(400, pots[1].Total)
	a.Equal([]string{"big1", "big2"}, pots[1].EligiblePlayers)
}

func TestController_AddBet_insufficientChips(t *testing.T) {
	a := assert.New(t)

	c := New(logrus.StandardLogger())
	_, err := c.AddPlayer("p1", "Alice", 50)
	a.NoError(err)
	a.NoError(c.DealHoleCards())

	a.Equal(table.ErrInsufficientChips, c.AddBet("p1", 100))
	a.Equal(50, mustPlayer(t, c, "p1").ChipStack)
	a.Equal(0, c.Table().PotTotal())

	a.Equal(table.ErrUnknownPlayer, c.AddBet("nobody", 100))
}

func TestController_Fold(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2")
	a.NoError(c.DealHoleCards())
	a.NoError(c.AddBet("p1", 100))
	a.NoError(c.AddBet("p2", 100))

	a.NoError(c.Fold("p2"))
	a.False(mustPlayer(t, c, "p2").IsInPlay)

	a.NoError(c.DealCommunityCards())
	a.NoError(c.ResolvePots())

	// the folded player has no evaluated hand and cannot win
	a.Equal([]string{"p1"}, c.PotViews()[0].Winners)
}

func TestController_Fold_beforeDeal(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2")

	// the player exists but isn't seated yet; the fold must be rejected
	// without touching the player
	a.Equal(table.ErrUnknownPlayer, c.Fold("p2"))

	p2 := mustPlayer(t, c, "p2")
	a.True(p2.IsInPlay)
	a.Empty(p2.Actions())

	// the rejected fold must not knock the player out of the deal
	a.NoError(c.DealHoleCards())
	a.Equal(2, len(p2.HoleCards))
}

func TestController_GetWinners_noContender(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2")

	_, err := c.GetWinners(nil)
	a.Equal(table.ErrNoContender, err)

	_, err = c.WinnerViews(nil)
	a.Equal(table.ErrNoContender, err)
}

func TestController_Reset(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2")
	a.NoError(c.DealHoleCards())
	a.NoError(c.AddBet("p1", 100))
	a.NoError(c.AddBet("p2", 100))
	a.NoError(c.DealCommunityCards())
	a.NoError(c.ResolvePots())

	c.Reset()

	a.Equal(0, len(c.CommunityCards()))
	a.Equal(0, c.Table().PotTotal())
	a.Equal(table.RoundOpen, c.Table().State())
	for _, player := range c.Players() {
		a.Equal(0, len(player.HoleCards))
		a.Nil(player.BestHand)
	}

	// chips are not restored by a reset
	a.Equal(900, mustPlayer(t, c, "p1").ChipStack)

	// a fresh hand can be dealt
	a.NoError(c.DealHoleCards())
}

func TestController_PlayerViews(t *testing.T) {
	a := assert.New(t)

	c := newTestGame(t, "p1", "p2")
	a.NoError(c.DealHoleCards())
	a.NoError(c.DealCommunityCards())

	views := c.PlayerViews()
	a.Equal(2, len(views))
	a.Equal("p1", views[0].PlayerID)
	a.Equal(2, len(views[0].HoleCards))
	a.NotNil(views[0].BestHand)
	a.NotNil(views[0].HandStrength)
}

func mustPlayer(t *testing.T, c *Controller, id string) *table.Player {
	t.Helper()

	player, ok := c.Player(id)
	assert.True(t, ok)
	return player
}
