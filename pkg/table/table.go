package table

import (
	"fmt"

	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/poker"
)

// RoundState represents where a betting round is in its lifecycle
type RoundState int

// constants for RoundState
const (
	RoundOpen RoundState = iota
	RoundResolving
	RoundResolved
)

// String returns the string representation of a round state
func (r RoundState) String() string {
	switch r {
	case RoundOpen:
		return "open"
	case RoundResolving:
		return "resolving"
	case RoundResolved:
		return "resolved"
	}

	return ""
}

// HandProvider looks up a player's evaluated best hand.
// The second return value is false if the player has no evaluated hand.
type HandProvider interface {
	BestHand(playerID string) (*poker.Hand, bool)
}

// Table owns the community cards, the pot sequence, and the per-player bet
// ledger for the current betting round
type Table struct {
	CommunityCards deck.Hand

	pots       []*Pot
	playerBets map[string]int
	minBet     int
	maxBet     int
	state      RoundState

	seatOrder []string
	active    map[string]bool
	allInCaps map[string]int
}

// New returns a new, empty table
func New() *Table {
	t := &Table{}
	t.ResetForNewRound()

	return t
}

// ResetForNewRound clears the table for a new betting round
func (t *Table) ResetForNewRound() {
	t.CommunityCards = make(deck.Hand, 0, 5)
	t.pots = make([]*Pot, 0)
	t.playerBets = make(map[string]int)
	t.minBet = 0
	t.maxBet = 0
	t.state = RoundOpen
	t.seatOrder = make([]string, 0)
	t.active = make(map[string]bool)
	t.allInCaps = make(map[string]int)
}

// SeatPlayer registers a player as active for the current round.
// Players must be seated before they can bet. Seating order determines the
// order of eligibility sets.
func (t *Table) SeatPlayer(playerID string) {
	if _, ok := t.active[playerID]; ok {
		return
	}

	t.seatOrder = append(t.seatOrder, playerID)
	t.active[playerID] = true
}

// Fold marks a seated player as no longer active. Existing pot eligibility
// sets are unaffected; the player simply stops appearing in new ones.
func (t *Table) Fold(playerID string) error {
	if _, ok := t.active[playerID]; !ok {
		return ErrUnknownPlayer
	}

	t.active[playerID] = false
	return nil
}

// AddBet adds a player's bet to the table and manages pots. Chips fill the
// open pots up to their caps; any amount beyond the highest cap opens a new
// side pot whose eligibility set is snapshotted at that moment.
// The sum of all pot totals always equals the sum of all amounts bet.
func (t *Table) AddBet(playerID string, amount int) error {
	if t.state != RoundOpen {
		return ErrRoundClosed
	}

	if _, ok := t.active[playerID]; !ok {
		return ErrUnknownPlayer
	}

	already := t.playerBets[playerID]
	newTotal := already + amount

	remaining := amount
	for _, pot := range t.pots {
		contribution := pot.contributionRange(already, newTotal)
		pot.Total += contribution
		remaining -= contribution
	}

	if remaining > 0 {
		// every existing pot is capped below the player's commitment;
		// the excess opens a new side pot
		pot := t.appendOpenPot()
		pot.Total += remaining
	}

	t.playerBets[playerID] = newTotal
	if newTotal > t.maxBet {
		t.maxBet = newTotal
	}

	return nil
}

// MarkAllIn caps the player's pot participation at their current commitment.
// If the commitment falls inside the open pot, the pot is capped and chips
// already collected above the cap spill into a fresh side pot the capped
// player is not eligible for. If it falls inside an already-capped pot (an
// all-in below an earlier all-in), that pot is split at the commitment so
// the player is not eligible for chips above their ceiling.
func (t *Table) MarkAllIn(playerID string) error {
	if t.state != RoundOpen {
		return ErrRoundClosed
	}

	if _, ok := t.active[playerID]; !ok {
		return ErrUnknownPlayer
	}

	capAmount := t.playerBets[playerID]
	t.allInCaps[playerID] = capAmount

	for i, pot := range t.pots {
		if capAmount <= pot.floor || (pot.cap > 0 && capAmount >= pot.cap) {
			continue
		}

		if pot.cap == 0 {
			// open pot: cap it and move any chips above the new cap
			// into a side pot
			pot.cap = capAmount

			excess := 0
			for _, id := range t.seatOrder {
				if over := t.playerBets[id] - capAmount; over > 0 {
					excess += over
				}
			}

			if excess > 0 {
				pot.Total -= excess
				side := t.appendOpenPot()
				side.Total = excess
			}

			return nil
		}

		t.splitPot(i, capAmount)
		return nil
	}

	return nil
}

// splitPot splits the capped pot at index i into two pots at the given
// commitment boundary. The lower slice keeps the pot's eligibility set as
// taken; the upper slice drops the players capped at or below the boundary.
func (t *Table) splitPot(i, boundary int) {
	pot := t.pots[i]

	low := &Pot{
		EligiblePlayers: pot.EligiblePlayers,
		floor:           pot.floor,
		cap:             boundary,
	}

	high := &Pot{
		EligiblePlayers: make([]string, 0, len(pot.EligiblePlayers)),
		floor:           boundary,
		cap:             pot.cap,
	}
	for _, id := range pot.EligiblePlayers {
		if capAmount, ok := t.allInCaps[id]; ok && capAmount <= boundary {
			continue
		}

		high.EligiblePlayers = append(high.EligiblePlayers, id)
	}

	// redistribute the pot's chips between the two slices
	for _, bet := range t.playerBets {
		low.Total += low.contributionRange(0, bet)
		high.Total += high.contributionRange(0, bet)
	}

	pots := make([]*Pot, 0, len(t.pots)+1)
	pots = append(pots, t.pots[:i]...)
	pots = append(pots, low, high)
	pots = append(pots, t.pots[i+1:]...)
	t.pots = pots
}

// appendOpenPot creates a new uncapped pot whose floor is the previous pot's
// cap and whose eligibility set is the active players who can still commit
// beyond that floor
func (t *Table) appendOpenPot() *Pot {
	floor := 0
	if n := len(t.pots); n > 0 {
		floor = t.pots[n-1].cap
	}

	pot := &Pot{
		EligiblePlayers: t.eligibleAbove(floor),
		floor:           floor,
	}

	t.pots = append(t.pots, pot)
	return pot
}

// eligibleAbove returns the seated, active players whose all-in cap does not
// stop them at or below the given commitment floor
func (t *Table) eligibleAbove(floor int) []string {
	eligible := make([]string, 0, len(t.seatOrder))
	for _, id := range t.seatOrder {
		if !t.active[id] {
			continue
		}

		if cap, ok := t.allInCaps[id]; ok && cap <= floor {
			continue
		}

		eligible = append(eligible, id)
	}

	return eligible
}

// ResolvePots determines the winners of each pot independently. A player
// without an evaluated hand is simply not in contention, mirroring a fold.
// If every pot found at least one contender the round transitions to
// resolved; otherwise an ErrNoContender is returned for the first pot that
// could not be resolved and the round stays in the resolving state.
func (t *Table) ResolvePots(provider HandProvider) error {
	t.state = RoundResolving

	var unresolved = -1
	for i, pot := range t.pots {
		winners := bestAmong(pot.EligiblePlayers, provider)
		if len(winners) == 0 {
			if unresolved < 0 {
				unresolved = i
			}
			continue
		}

		pot.Winners = winners
	}

	if unresolved >= 0 {
		return fmt.Errorf("pot %d: %w", unresolved, ErrNoContender)
	}

	t.state = RoundResolved
	return nil
}

// GetWinners returns the subset of the pool holding the strongest evaluated
// hand. This is a pure query; pot state is not touched. An empty pool, or a
// pool where nobody has an evaluated hand, yields ErrNoContender.
func (t *Table) GetWinners(pool []string, provider HandProvider) ([]string, error) {
	winners := bestAmong(pool, provider)
	if len(winners) == 0 {
		return nil, ErrNoContender
	}

	return winners, nil
}

// bestAmong returns every player in the pool whose evaluated hand reaches the
// maximum under the hand total order. Players without an evaluated hand are
// skipped.
func bestAmong(pool []string, provider HandProvider) []string {
	var best *poker.Hand
	winners := make([]string, 0, 1)

	for _, id := range pool {
		hand, ok := provider.BestHand(id)
		if !ok || hand == nil {
			continue
		}

		if best == nil || hand.Compare(best) > 0 {
			best = hand
			winners = append(winners[0:0], id)
		} else if hand.Compare(best) == 0 {
			winners = append(winners, id)
		}
	}

	if len(winners) == 0 {
		return nil
	}

	return winners
}

// Pots returns the pot sequence in creation order, main pot first
func (t *Table) Pots() []*Pot {
	return t.pots
}

// PotTotal returns the combined total of all pots
func (t *Table) PotTotal() int {
	total := 0
	for _, pot := range t.pots {
		total += pot.Total
	}

	return total
}

// PlayerBet returns how much the player has committed this round
func (t *Table) PlayerBet(playerID string) int {
	return t.playerBets[playerID]
}

// State returns the current round state
func (t *Table) State() RoundState {
	return t.state
}

// MinBet returns the minimum bet for the current round
func (t *Table) MinBet() int {
	return t.minBet
}

// SetMinBet sets the minimum bet for the current round
func (t *Table) SetMinBet(amount int) {
	t.minBet = amount
}

// MaxBet returns the highest per-player commitment seen this round
func (t *Table) MaxBet() int {
	return t.maxBet
}
