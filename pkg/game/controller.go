package game

import (
	"errors"

	"github.com/sirupsen/logrus"

	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/poker"
	"carddealer-server/pkg/table"
)

// ErrPlayerExists is an error when a player ID is added twice
var ErrPlayerExists = errors.New("a player with that ID is already in the game")

// ErrNoPlayers is an error when a deal is attempted with no players
var ErrNoPlayers = errors.New("the game has no players")

const holeCardCount = 2
const communityCardCount = 5

// Controller orchestrates a hand: it owns the deck, the table, and the player
// collection, and runs deal, evaluate, and resolve in sequence. It holds no
// algorithm of its own. Callers must serialize mutating calls.
type Controller struct {
	logger  logrus.FieldLogger
	deck    *deck.Deck
	table   *table.Table
	players []*table.Player
	byID    map[string]*table.Player
}

// New returns a new game controller
func New(logger logrus.FieldLogger) *Controller {
	return &Controller{
		logger:  logger,
		deck:    deck.New(),
		table:   table.New(),
		players: make([]*table.Player, 0),
		byID:    make(map[string]*table.Player),
	}
}

// AddPlayer seats a new player at the next table position
func (c *Controller) AddPlayer(id, displayName string, chipStack int) (*table.Player, error) {
	if _, ok := c.byID[id]; ok {
		return nil, ErrPlayerExists
	}

	player := table.NewPlayer(id, displayName, len(c.players), chipStack)
	c.players = append(c.players, player)
	c.byID[id] = player

	c.logger.WithFields(logrus.Fields{
		"playerId":    id,
		"displayName": displayName,
	}).Debug("player added")

	return player, nil
}

// Player returns the player with the given ID
func (c *Controller) Player(id string) (*table.Player, bool) {
	player, ok := c.byID[id]
	return player, ok
}

// Players returns the players in table position order
func (c *Controller) Players() []*table.Player {
	return c.players
}

// Table returns the controller's table
func (c *Controller) Table() *table.Table {
	return c.table
}

// CommunityCards returns the shared cards dealt so far
func (c *Controller) CommunityCards() deck.Hand {
	return c.table.CommunityCards
}

// DealHoleCards deals two hole cards to every in-play player and seats them
// at the table for the betting round. Any previous hole cards are replaced.
// If the deck cannot cover every player, no cards are assigned.
func (c *Controller) DealHoleCards() error {
	inPlay := c.inPlayPlayers()
	if len(inPlay) == 0 {
		return ErrNoPlayers
	}

	if !c.deck.CanDeal(holeCardCount * len(inPlay)) {
		return deck.ErrInsufficientCards
	}

	for _, player := range inPlay {
		cards, err := c.deck.Deal(holeCardCount)
		if err != nil {
			return err
		}

		player.HoleCards = cards
		c.table.SeatPlayer(player.ID)
	}

	c.logger.WithField("players", len(inPlay)).Debug("dealt hole cards")
	return nil
}

// DealCommunityCards deals the five shared cards and evaluates every in-play
// player's best hand against them
func (c *Controller) DealCommunityCards() error {
	cards, err := c.deck.Deal(communityCardCount)
	if err != nil {
		return err
	}

	c.table.CommunityCards = cards
	return c.EvaluateHands()
}

// EvaluateHands recomputes the best hand for every in-play player holding
// cards. Players without hole cards are skipped.
func (c *Controller) EvaluateHands() error {
	for _, player := range c.inPlayPlayers() {
		if len(player.HoleCards) == 0 {
			continue
		}

		if err := player.EvaluateHand(c.table.CommunityCards); err != nil {
			return err
		}
	}

	return nil
}

// AddBet debits the player's chip stack and adds the bet to the table,
// marking the player all-in when their stack hits zero
func (c *Controller) AddBet(playerID string, amount int) error {
	player, ok := c.byID[playerID]
	if !ok {
		return table.ErrUnknownPlayer
	}

	if err := player.Bet(amount); err != nil {
		return err
	}

	if err := c.table.AddBet(playerID, amount); err != nil {
		// refund; the table did not accept the bet
		player.AddChips(amount)
		return err
	}

	if player.IsAllIn() {
		return c.table.MarkAllIn(playerID)
	}

	return nil
}

// Fold removes the player from the current hand. The table is asked first;
// if it rejects the fold the player is left untouched.
func (c *Controller) Fold(playerID string) error {
	player, ok := c.byID[playerID]
	if !ok {
		return table.ErrUnknownPlayer
	}

	if err := c.table.Fold(playerID); err != nil {
		return err
	}

	player.Fold()
	return nil
}

// ResolvePots determines the winners of every pot
func (c *Controller) ResolvePots() error {
	return c.table.ResolvePots(c)
}

// GetWinners returns the players holding the strongest evaluated hand among
// the pool. An empty pool is a convenience for the HTTP layer and expands to
// every player in the game; note this differs from table.GetWinners, where
// an empty pool has nobody in contention and yields ErrNoContender.
func (c *Controller) GetWinners(pool []string) ([]string, error) {
	if len(pool) == 0 {
		pool = make([]string, len(c.players))
		for i, player := range c.players {
			pool[i] = player.ID
		}
	}

	return c.table.GetWinners(pool, c)
}

// BestHand implements table.HandProvider
func (c *Controller) BestHand(playerID string) (*poker.Hand, bool) {
	player, ok := c.byID[playerID]
	if !ok || player.BestHand == nil {
		return nil, false
	}

	return player.BestHand, true
}

// Reset returns the deck to a fresh shuffled state and clears all per-hand
// player and table state. Players and chip stacks are kept.
func (c *Controller) Reset() {
	c.deck.Reset()
	c.table.ResetForNewRound()
	for _, player := range c.players {
		player.ResetForNewHand()
	}

	c.logger.Debug("game reset")
}

func (c *Controller) inPlayPlayers() []*table.Player {
	inPlay := make([]*table.Player, 0, len(c.players))
	for _, player := range c.players {
		if player.IsInPlay {
			inPlay = append(inPlay, player)
		}
	}

	return inPlay
}
