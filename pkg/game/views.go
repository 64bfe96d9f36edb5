package game

import (
	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/poker"
	"carddealer-server/pkg/table"
)

// PlayerView is the read view of a single player
type PlayerView struct {
	PlayerID     string          `json:"player_id"`
	DisplayName  string          `json:"display_name"`
	HoleCards    deck.Hand       `json:"hole_cards"`
	HandStrength *poker.Category `json:"hand_strength"`
	BestHand     *poker.Hand     `json:"best_hand"`
}

// WinnerView pairs a winning player with their best hand
type WinnerView struct {
	PlayerID string      `json:"player_id"`
	BestHand *poker.Hand `json:"best_hand"`
}

// PlayerViews returns the read view of every player in table position order
func (c *Controller) PlayerViews() []PlayerView {
	views := make([]PlayerView, len(c.players))
	for i, player := range c.players {
		views[i] = PlayerView{
			PlayerID:     player.ID,
			DisplayName:  player.DisplayName,
			HoleCards:    player.HoleCards,
			HandStrength: player.HandStrength,
			BestHand:     player.BestHand,
		}
	}

	return views
}

// WinnerViews resolves the pool to winner views.
// A table.ErrNoContender error passes through untouched so callers can
// distinguish "no winner" from other failures.
func (c *Controller) WinnerViews(pool []string) ([]WinnerView, error) {
	winners, err := c.GetWinners(pool)
	if err != nil {
		return nil, err
	}

	views := make([]WinnerView, len(winners))
	for i, id := range winners {
		hand, _ := c.BestHand(id)
		views[i] = WinnerView{
			PlayerID: id,
			BestHand: hand,
		}
	}

	return views, nil
}

// PotViews returns every pot in creation order, main pot first
func (c *Controller) PotViews() []*table.Pot {
	return c.table.Pots()
}
