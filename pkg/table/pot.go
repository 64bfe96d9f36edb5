package table

import "encoding/json"

// Pot is a single pot (main or side). The eligibility set is fixed when the
// pot is created and is never mutated afterwards; only Winners is written by
// the resolution step.
type Pot struct {
	Total           int
	EligiblePlayers []string
	Winners         []string

	// floor and cap bound the slice of cumulative per-player commitment this
	// pot collects: (floor, cap]. A cap of zero means the pot is still open.
	floor int
	cap   int
}

type potJSON struct {
	Total           int      `json:"total"`
	EligiblePlayers []string `json:"eligible_players"`
	Winners         []string `json:"winners"`
}

// MarshalJSON provides custom marshalling
func (p *Pot) MarshalJSON() ([]byte, error) {
	return json.Marshal(potJSON{
		Total:           p.Total,
		EligiblePlayers: p.EligiblePlayers,
		Winners:         p.Winners,
	})
}

// IsResolved returns true if the resolution step determined winners for this pot
func (p *Pot) IsResolved() bool {
	return p.Winners != nil
}

// contributionRange returns how much of a commitment that moves from already
// to newTotal lands in this pot's slice
func (p *Pot) contributionRange(already, newTotal int) int {
	return p.clamp(newTotal) - p.clamp(already)
}

func (p *Pot) clamp(commitment int) int {
	if commitment < p.floor {
		return p.floor
	}

	if p.cap > 0 && commitment > p.cap {
		return p.cap
	}

	return commitment
}
