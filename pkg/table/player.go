package table

import (
	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/poker"
)

// Player holds the per-player state for a hand: hole cards, the most recently
// evaluated best hand, and the bankroll slice (chip stack and action history).
type Player struct {
	// ID is a stable identifier, unique within a game
	ID          string
	DisplayName string

	HoleCards deck.Hand

	// BestHand is only populated after an evaluation over >= 5 combined cards.
	// HandStrength mirrors BestHand's category and is never set independently.
	BestHand     *poker.Hand
	HandStrength *poker.Category

	ChipStack     int
	TablePosition int
	IsSittingOut  bool
	IsInPlay      bool

	actionHistory []Action
}

// NewPlayer returns a new player instance
func NewPlayer(id, displayName string, tablePosition, chipStack int) *Player {
	return &Player{
		ID:            id,
		DisplayName:   displayName,
		HoleCards:     make(deck.Hand, 0, 2),
		ChipStack:     chipStack,
		TablePosition: tablePosition,
		IsInPlay:      true,
		actionHistory: make([]Action, 0),
	}
}

// EvaluateHand combines the player's hole cards with the community cards and
// stores the best five-card hand along with its category.
// Each call is a full recomputation; any previous result is overwritten.
// On error nothing is stored.
func (p *Player) EvaluateHand(communityCards deck.Hand) error {
	combined := make(deck.Hand, 0, len(p.HoleCards)+len(communityCards))
	combined = append(combined, p.HoleCards...)
	combined = append(combined, communityCards...)

	hand, err := poker.FindBestHand(combined)
	if err != nil {
		return err
	}

	category := hand.Category
	p.BestHand = hand
	p.HandStrength = &category
	return nil
}

// Bet deducts a bet amount from the player's chip stack
func (p *Player) Bet(amount int) error {
	if amount > p.ChipStack {
		return ErrInsufficientChips
	}

	p.ChipStack -= amount
	p.recordAction(Action{Type: ActionBet, Amount: amount})
	return nil
}

// Raise combines a bet at the current level with an additional raise amount.
// The total amount deducted is returned.
func (p *Player) Raise(currentBet, raiseAmount int) (int, error) {
	totalBet := currentBet + raiseAmount
	if totalBet > p.ChipStack {
		return 0, ErrInsufficientChips
	}

	p.ChipStack -= totalBet
	p.recordAction(Action{Type: ActionRaise, Amount: raiseAmount})
	return totalBet, nil
}

// Fold marks the player as out of the current hand
func (p *Player) Fold() {
	p.IsInPlay = false
	p.HoleCards = p.HoleCards[0:0]
	p.BestHand = nil
	p.HandStrength = nil
	p.recordAction(Action{Type: ActionFold})
}

// SitOut marks the player as sitting out; they will not be dealt into new hands
func (p *Player) SitOut() {
	p.IsSittingOut = true
	p.IsInPlay = false
	p.HoleCards = p.HoleCards[0:0]
	p.BestHand = nil
	p.HandStrength = nil
	p.recordAction(Action{Type: ActionSitOut})
}

// AddChips adds chips to the player's stack
func (p *Player) AddChips(amount int) {
	p.ChipStack += amount
}

// IsAllIn returns true if the player is in the hand with no chips behind
func (p *Player) IsAllIn() bool {
	return p.IsInPlay && p.ChipStack == 0
}

// ResetForNewHand clears per-hand state. A sitting-out player stays out.
func (p *Player) ResetForNewHand() {
	p.HoleCards = p.HoleCards[0:0]
	p.BestHand = nil
	p.HandStrength = nil
	p.IsInPlay = !p.IsSittingOut
	p.actionHistory = p.actionHistory[0:0]
}

// Actions returns the player's action history for the current hand
func (p *Player) Actions() []Action {
	actions := make([]Action, len(p.actionHistory))
	copy(actions, p.actionHistory)

	return actions
}

func (p *Player) recordAction(action Action) {
	p.actionHistory = append(p.actionHistory, action)
}
