package engine

import "errors"

// Rule violations are sentinel errors so callers can classify with errors.Is.
// Every violation is detected before any state mutation; a rejected action
// leaves the GameState untouched and resumable.
var (
	ErrInvalidCardID        = errors.New("invalid card id")
	ErrMeldTooSmall         = errors.New("meld has fewer than 3 cards")
	ErrInsufficientNaturals = errors.New("meld needs at least 2 natural cards")
	ErrTooManyWilds         = errors.New("meld allows at most 3 wild cards")
	ErrMixedRanks           = errors.New("meld cards span more than one natural rank")
	ErrBlackThreeRestricted = errors.New("black threes may only be melded when going out")
	ErrInitialMeldTooLow    = errors.New("meld value below the initial meld minimum")
	ErrPickupNotEligible    = errors.New("not eligible to take the discard pile")
	ErrPileEmpty            = errors.New("pile is empty")
	ErrActionNotLegal       = errors.New("action not legal in the current state")
	ErrGoOutIneligible      = errors.New("going out requires a canasta and partner consent")
)
