package engine

import (
	"fmt"
	"sort"
)

// MeldCap is the largest possible meld: all 8 naturals of a rank plus 3 wilds.
const MeldCap = 11

// CanastaStatus classifies a meld's canasta standing.
type CanastaStatus uint8

const (
	CanastaNone    CanastaStatus = iota
	CanastaNatural               // 7+ cards, no wilds
	CanastaMixed                 // 7+ cards with wilds
)

// Meld is a team-owned set of same-rank natural cards plus attached wilds.
// It is a flat value type so TeamState snapshots remain plain struct copies.
// Melds are append-only for the duration of a hand.
type Meld struct {
	Rank         uint8
	Cards        [MeldCap]Card
	Len          uint8
	NaturalCount uint8
	WildCount    uint8
}

// CanastaStatus derives the meld's canasta standing. The status is monotonic
// within a hand because melds only ever grow.
func (m *Meld) CanastaStatus() CanastaStatus {
	if m.Len < 7 {
		return CanastaNone
	}
	if m.WildCount == 0 {
		return CanastaNatural
	}
	return CanastaMixed
}

// Value returns the point sum of the meld's cards.
func (m *Meld) Value() int {
	v := 0
	for i := uint8(0); i < m.Len; i++ {
		v += m.Cards[i].Value()
	}
	return v
}

// CardIDs returns the meld's cards in append order.
func (m *Meld) CardIDs() []Card {
	out := make([]Card, m.Len)
	copy(out, m.Cards[:m.Len])
	return out
}

func (m *Meld) add(c Card) {
	m.Cards[m.Len] = c
	m.Len++
	if c.IsWild() {
		m.WildCount++
	} else {
		m.NaturalCount++
	}
}

// validateComposition checks the core meld invariants shared by creation and
// extension. Black threes pass only as a wild-free going-out meld.
func validateComposition(rank uint8, naturalCount, wildCount uint8, goingOut bool) error {
	total := naturalCount + wildCount
	if rank == RankThree {
		if !goingOut || wildCount > 0 {
			return ErrBlackThreeRestricted
		}
		if total < 3 {
			return ErrMeldTooSmall
		}
		return nil
	}
	if total < 3 {
		return ErrMeldTooSmall
	}
	if naturalCount < 2 {
		return ErrInsufficientNaturals
	}
	if wildCount > 3 {
		return ErrTooManyWilds
	}
	if total > MeldCap {
		return ErrTooManyWilds
	}
	return nil
}

// buildMeld assembles a Meld from cards, deriving the natural rank. Wilds are
// rank-agnostic and attach to whatever natural rank is present.
func buildMeld(cards []Card, goingOut bool) (Meld, error) {
	var m Meld
	rank := uint8(0xFF)
	naturals, wilds := uint8(0), uint8(0)
	for _, c := range cards {
		if uint8(c) >= NumCards {
			return Meld{}, fmt.Errorf("card %d: %w", uint8(c), ErrInvalidCardID)
		}
		if c.IsNatural() {
			r := c.Rank()
			if rank == 0xFF {
				rank = r
			} else if r != rank {
				return Meld{}, ErrMixedRanks
			}
			naturals++
		} else {
			wilds++
		}
	}
	if rank == 0xFF {
		// Wild-only compositions can never anchor a meld.
		return Meld{}, ErrInsufficientNaturals
	}
	if err := validateComposition(rank, naturals, wilds, goingOut); err != nil {
		return Meld{}, err
	}
	m.Rank = rank
	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, c := range sorted {
		m.add(c)
	}
	return m, nil
}

// CanFormMeld decides whether the given cards may form a fresh meld, returning
// the validated meld descriptor or a classified rule violation.
func CanFormMeld(cards []Card) (Meld, error) {
	return buildMeld(cards, false)
}

// CanExtendMeld re-validates the composition that would result from appending
// cards to an existing meld.
func CanExtendMeld(m *Meld, cards []Card) (Meld, error) {
	combined := make([]Card, 0, int(m.Len)+len(cards))
	combined = append(combined, m.Cards[:m.Len]...)
	for _, c := range cards {
		if uint8(c) >= NumCards {
			return Meld{}, fmt.Errorf("card %d: %w", uint8(c), ErrInvalidCardID)
		}
		if c.IsNatural() && c.Rank() != m.Rank {
			return Meld{}, ErrMixedRanks
		}
		combined = append(combined, c)
	}
	return buildMeld(combined, m.Rank == RankThree)
}
