package engine

import "math/bits"

func setBit(mask *[MaskWords]uint64, idx uint16) {
	mask[idx>>6] |= 1 << (idx & 63)
}

// HasAction reports whether idx is set in a legal-action mask.
func HasAction(mask [MaskWords]uint64, idx uint16) bool {
	if idx >= NumActions {
		return false
	}
	return mask[idx>>6]&(1<<(idx&63)) != 0
}

// LegalActions returns the bitmask of action indices the current player may
// take. Chance and terminal states have no legal actions.
func (g *GameState) LegalActions() [MaskWords]uint64 {
	var mask [MaskWords]uint64
	switch g.Phase {
	case PhaseDraw:
		g.legalDraw(&mask)
	case PhaseMeld:
		g.legalMeld(&mask)
	case PhaseGoOutQuery:
		setBit(&mask, ActionAnswerYes)
		setBit(&mask, ActionAnswerNo)
	case PhaseDiscard:
		g.legalDiscard(&mask)
	}
	return mask
}

// LegalActionsList expands the legal-action mask into a sorted index slice.
func (g *GameState) LegalActionsList() []uint16 {
	mask := g.LegalActions()
	out := make([]uint16, 0, 16)
	for w := 0; w < MaskWords; w++ {
		word := mask[w]
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, uint16(w*64+b))
			word &= word - 1
		}
	}
	return out
}

func (g *GameState) legalDraw(mask *[MaskWords]uint64) {
	if g.StockLen > 0 {
		setBit(mask, ActionDrawStock)
	}
	if g.canTakePile(g.CurrentPlayer) == nil {
		setBit(mask, ActionTakePile)
	}
}

func (g *GameState) legalMeld(mask *[MaskWords]uint64) {
	player := g.CurrentPlayer

	// A granted go-out request is binding: the player must go out now.
	if g.GoOutApproved {
		setBit(mask, ActionGoOut)
		return
	}

	if g.MustMeldRank == 0 {
		setBit(mask, ActionSkipMeld)
	}

	team := teamOf(player)
	wilds := g.wildsInHand(player)
	maxW := wilds
	if maxW > 3 {
		maxW = 3
	}
	for rank := uint8(0); rank < NumRanks; rank++ {
		naturals := g.matchingNaturals(player, rank)
		if naturals < 2 {
			continue
		}
		for n := uint8(2); n <= naturals; n++ {
			for w := uint8(0); w <= maxW; w++ {
				idx := EncodeCreateMeld(rank, n, w)
				if g.canCreateMeld(player, rank, n, w) == nil {
					setBit(mask, idx)
				}
			}
		}
	}
	for mi := uint8(0); mi < g.Teams[team].MeldCount; mi++ {
		rank := g.Teams[team].Melds[mi].Rank
		naturals := g.matchingNaturals(player, rank)
		for n := uint8(0); n <= naturals; n++ {
			for w := uint8(0); w <= maxW; w++ {
				if n+w == 0 {
					continue
				}
				idx := EncodeExtendMeld(mi, n, w)
				if g.canExtendMeldAction(player, mi, n, w) == nil {
					setBit(mask, idx)
				}
			}
		}
	}
	if g.canAskPartner(player) == nil {
		setBit(mask, ActionAskPartner)
	}
	if g.canGoOutAction(player) == nil {
		setBit(mask, ActionGoOut)
	}
}

func (g *GameState) legalDiscard(mask *[MaskWords]uint64) {
	player := g.CurrentPlayer
	hand := &g.Players[player]
	for i := uint8(0); i < hand.HandLen; i++ {
		c := hand.Hand[i]
		if g.canDiscard(player, c) == nil {
			setBit(mask, EncodeDiscard(c))
		}
	}
}

// approvalOK reports whether the player clears the go-out consent rules: an
// explicit yes, no asking required, or a concealed go-out. A denied request is
// binding for the rest of the turn.
func (g *GameState) approvalOK(player uint8) bool {
	if g.GoOutApproved {
		return true
	}
	if g.PartnerAsked {
		return false
	}
	return !g.Rules.AskPartnerRequired || !g.PlayerMelded[player]
}

// teamCanastaCountAfter counts the team's canastas assuming the meld at
// replaceIdx is swapped for candidate (replaceIdx == -1 appends it instead).
func (g *GameState) teamCanastaCountAfter(team uint8, replaceIdx int8, candidate *Meld) uint8 {
	t := &g.Teams[team]
	count := uint8(0)
	for i := uint8(0); i < t.MeldCount; i++ {
		m := &t.Melds[i]
		if int8(i) == replaceIdx {
			m = candidate
		}
		if m.CanastaStatus() != CanastaNone {
			count++
		}
	}
	if replaceIdx < 0 && candidate != nil && candidate.CanastaStatus() != CanastaNone {
		count++
	}
	return count
}

// checkHandFloor rejects meld actions that would strand the player: a meld may
// only drop the hand below 2 cards as part of a legal go-out.
func (g *GameState) checkHandFloor(player uint8, spend uint8, team uint8, replaceIdx int8, candidate *Meld) error {
	remaining := g.Players[player].HandLen - spend
	if remaining >= 2 {
		return nil
	}
	if !g.approvalOK(player) {
		return ErrGoOutIneligible
	}
	if g.teamCanastaCountAfter(team, replaceIdx, candidate) == 0 {
		return ErrGoOutIneligible
	}
	return nil
}

func (g *GameState) canCreateMeld(player uint8, rank uint8, naturalCount, wildCount uint8) error {
	if g.GoOutApproved {
		return ErrActionNotLegal
	}
	if rank == RankThree {
		// Black threes only meld inside a go-out plan.
		return ErrBlackThreeRestricted
	}
	if g.MustMeldRank != 0 && rank != g.MustMeldRank-1 {
		return ErrActionNotLegal
	}
	team := teamOf(player)
	if g.Teams[team].meldOfRank(rank) >= 0 {
		return ErrActionNotLegal // same rank grows by extension, not a second meld
	}
	if g.Teams[team].MeldCount >= MaxMelds {
		return ErrActionNotLegal
	}
	cards := g.selectMeldCards(player, rank, naturalCount, wildCount)
	if cards == nil {
		return ErrActionNotLegal
	}
	m, err := CanFormMeld(cards)
	if err != nil {
		return err
	}
	if !g.Teams[team].InitialMeldMade {
		if int32(m.Value()) < int32(initialMeldMinimum(g.Teams[team].CumulativeScore)) {
			return ErrInitialMeldTooLow
		}
	}
	return g.checkHandFloor(player, naturalCount+wildCount, team, -1, &m)
}

func (g *GameState) canExtendMeldAction(player uint8, meldIndex uint8, naturalsAdded, wildsAdded uint8) error {
	if g.GoOutApproved {
		return ErrActionNotLegal
	}
	if naturalsAdded+wildsAdded == 0 {
		return ErrActionNotLegal
	}
	team := teamOf(player)
	if meldIndex >= g.Teams[team].MeldCount {
		return ErrActionNotLegal
	}
	m := &g.Teams[team].Melds[meldIndex]
	if g.MustMeldRank != 0 && (m.Rank != g.MustMeldRank-1 || naturalsAdded == 0) {
		// The pile obligation is only discharged by melding the taken card.
		return ErrActionNotLegal
	}
	cards := g.selectMeldCards(player, m.Rank, naturalsAdded, wildsAdded)
	if cards == nil {
		return ErrActionNotLegal
	}
	grown, err := CanExtendMeld(m, cards)
	if err != nil {
		return err
	}
	return g.checkHandFloor(player, naturalsAdded+wildsAdded, team, int8(meldIndex), &grown)
}

func (g *GameState) canDiscard(player uint8, c Card) error {
	if !g.Players[player].contains(c) {
		return ErrActionNotLegal
	}
	if g.Players[player].HandLen == 1 {
		// Shedding the last card is going out by discard.
		if !g.approvalOK(player) || !g.Teams[teamOf(player)].HasCanasta() {
			return ErrGoOutIneligible
		}
	}
	return nil
}

func (g *GameState) canAskPartner(player uint8) error {
	if !g.Rules.AskPartnerRequired || g.PartnerAsked || g.GoOutApproved {
		return ErrActionNotLegal
	}
	// A denial is binding for the turn, so asking is off the table while the
	// pile obligation has no discharge other than the go-out itself.
	if g.MustMeldRank != 0 && !g.hasObligationMeld(player) {
		return ErrActionNotLegal
	}
	// Asking is only meaningful when a yes would let the player go out.
	if _, ok := g.planGoOut(player); !ok {
		return ErrGoOutIneligible
	}
	return nil
}

func (g *GameState) canGoOutAction(player uint8) error {
	if !g.approvalOK(player) {
		return ErrGoOutIneligible
	}
	if _, ok := g.planGoOut(player); !ok {
		return ErrGoOutIneligible
	}
	return nil
}
