package table

// ActionType identifies a player action
type ActionType string

// action type constants
const (
	ActionBet    ActionType = "bet"
	ActionRaise  ActionType = "raise"
	ActionCall   ActionType = "call"
	ActionCheck  ActionType = "check"
	ActionFold   ActionType = "fold"
	ActionSitOut ActionType = "sit-out"
)

// Action is a single entry in a player's action history
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}
