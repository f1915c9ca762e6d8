package engine

// Discard pile pickup rules. The pile has two notions of "frozen": the global
// freeze set by a wild or black-three discard (and at every fresh deal), and
// the per-team freeze that lasts until the team has made its initial meld.

// frozenFor reports whether the pile is frozen from a team's perspective.
func (g *GameState) frozenFor(team uint8) bool {
	return g.PileFrozen || !g.Teams[team].InitialMeldMade
}

// matchingNaturals counts natural cards of the given rank in a player's hand.
func (g *GameState) matchingNaturals(player uint8, rank uint8) uint8 {
	n := uint8(0)
	hand := &g.Players[player]
	for i := uint8(0); i < hand.HandLen; i++ {
		c := hand.Hand[i]
		if c.IsNatural() && c.Rank() == rank {
			n++
		}
	}
	return n
}

// bestTopRankMeldValue is the highest point value of a meld of the pile-top
// rank the player could lay using the top card, every matching natural in
// hand, and up to 3 wilds (jokers first, they score more). Used to fail a
// pickup fast when a team cannot reach its initial meld minimum.
func (g *GameState) bestTopRankMeldValue(player uint8, top Card) int {
	naturals := g.matchingNaturals(player, top.Rank())
	v := top.Value() + int(naturals)*top.Value()
	jokers, twos := uint8(0), uint8(0)
	hand := &g.Players[player]
	for i := uint8(0); i < hand.HandLen; i++ {
		switch c := hand.Hand[i]; {
		case c.IsJoker():
			jokers++
		case c.Rank() == RankTwo:
			twos++
		}
	}
	wilds := uint8(0)
	for wilds < 3 && jokers > 0 {
		v += 50
		jokers--
		wilds++
	}
	for wilds < 3 && twos > 0 {
		v += 20
		twos--
		wilds++
	}
	return v
}

// canTakePile decides whether the current player may take the discard pile,
// returning nil or the specific violation. Taking the pile commits the player
// to melding the top card this turn, so beyond the natural-card matching
// rules the check replays the pickup on a trial copy and confirms at least
// one obligation-discharging move would be legal. That closes every
// pickup-then-stuck path.
func (g *GameState) canTakePile(player uint8) error {
	if g.DiscardLen == 0 {
		return ErrPileEmpty
	}
	top := g.DiscardTop()
	if top.IsWild() || top.IsBlackThree() || top.IsRedThree() {
		return ErrPickupNotEligible
	}
	rank := top.Rank()
	team := teamOf(player)
	match := g.matchingNaturals(player, rank)

	if g.frozenFor(team) {
		// Frozen pile: two matching naturals from hand, no shortcuts.
		if match < 2 {
			return ErrPickupNotEligible
		}
	} else {
		// Unfrozen: one matching natural suffices when the obligation is
		// plainly coverable by an existing meld or a wild.
		switch {
		case match >= 2:
		case match >= 1 && (g.Teams[team].meldOfRank(rank) >= 0 || g.wildsInHand(player) > 0):
		default:
			return ErrPickupNotEligible
		}
	}

	if !g.Teams[team].InitialMeldMade {
		minimum := initialMeldMinimum(g.Teams[team].CumulativeScore)
		if g.bestTopRankMeldValue(player, top) < minimum {
			return ErrInitialMeldTooLow
		}
	}

	trial := *g
	trial.takePile(player)
	trial.Phase = PhaseMeld
	if !trial.hasObligationMove(player) {
		return ErrPickupNotEligible
	}
	return nil
}

// hasObligationMove reports whether any legal move discharges the outstanding
// pile obligation: a create or extend of the owed rank, or a full go-out.
func (g *GameState) hasObligationMove(player uint8) bool {
	return g.hasObligationMeld(player) || g.canGoOutAction(player) == nil
}

// hasObligationMeld reports whether a create or extend of the owed rank is
// legal on its own, without going out.
func (g *GameState) hasObligationMeld(player uint8) bool {
	rank := g.MustMeldRank - 1
	team := teamOf(player)
	match := g.matchingNaturals(player, rank)
	maxW := g.wildsInHand(player)
	if maxW > 3 {
		maxW = 3
	}
	if mi := g.Teams[team].meldOfRank(rank); mi >= 0 {
		for n := uint8(1); n <= match; n++ {
			for w := uint8(0); w <= maxW; w++ {
				if g.canExtendMeldAction(player, uint8(mi), n, w) == nil {
					return true
				}
			}
		}
	} else {
		for n := uint8(2); n <= match; n++ {
			for w := uint8(0); w <= maxW; w++ {
				if g.canCreateMeld(player, rank, n, w) == nil {
					return true
				}
			}
		}
	}
	return false
}

// wildsInHand counts wild cards in a player's hand.
func (g *GameState) wildsInHand(player uint8) uint8 {
	n := uint8(0)
	hand := &g.Players[player]
	for i := uint8(0); i < hand.HandLen; i++ {
		if hand.Hand[i].IsWild() {
			n++
		}
	}
	return n
}

// takePile moves the entire discard pile into the current player's hand and
// records the meld obligation for the top card's rank. Red threes buried in
// the pile route to the team's pile without replacement.
func (g *GameState) takePile(player uint8) {
	top := g.DiscardTop()
	team := teamOf(player)
	for i := uint8(0); i < g.DiscardLen; i++ {
		c := g.Discard[i]
		if c.IsRedThree() {
			g.Teams[team].addRedThree(c)
			continue
		}
		g.Players[player].add(c)
	}
	g.DiscardLen = 0
	g.PileFrozen = false
	g.MustMeldRank = top.Rank() + 1
}
