package table

import "errors"

// ErrInsufficientChips is an error when a player tries to bet more than their chip stack
var ErrInsufficientChips = errors.New("not enough chips to bet")

// ErrNoContender is an error when no player in a pot or pool has an evaluated hand
var ErrNoContender = errors.New("no player with an evaluated hand")

// ErrRoundClosed is an error when a bet is attempted outside an open betting round
var ErrRoundClosed = errors.New("betting round is not open")

// ErrUnknownPlayer is an error when a player ID is not seated at the table
var ErrUnknownPlayer = errors.New("player is not seated at the table")
