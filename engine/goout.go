package engine

// Going out: melding the entire hand, with at most one card held back as the
// final discard. The planner reuses the value-type GameState for trial runs:
// a plan is validated by executing it against a struct copy, so the real
// state is only touched once a full plan is known to succeed.

// planGoOut searches for a discard choice that lets the player shed the whole
// hand legally. It tries melding everything first, then each distinct card as
// the held-back discard in ascending id order. The second return is false when
// no plan exists.
func (g *GameState) planGoOut(player uint8) (Card, bool) {
	trial := *g
	if trial.executeGoOut(player, EmptyCard) {
		return EmptyCard, true
	}
	hand := &g.Players[player]
	for id := 0; id < NumCards; id++ {
		c := Card(id)
		if !hand.contains(c) {
			continue
		}
		trial = *g
		if trial.executeGoOut(player, c) {
			return c, true
		}
	}
	return EmptyCard, false
}

// executeGoOut melds the player's entire hand except the held-back discard,
// mutating g, and reports whether the plan is legal. Callers run it on a trial
// copy first; a false return leaves the receiver in an undefined intermediate
// state.
//
// The planner is greedy: naturals extend an existing meld of their rank or
// open a fresh one, and wilds then grow whichever meld is closest to canasta.
// Exotic splits (holding wilds across several new melds to clear the initial
// minimum) are not searched.
func (g *GameState) executeGoOut(player uint8, discard Card) bool {
	team := teamOf(player)
	t := &g.Teams[team]
	hand := &g.Players[player]

	if discard != EmptyCard && !hand.remove(discard) {
		return false
	}
	if hand.HandLen == 0 {
		// Nothing left to meld; that path is a plain last-card discard.
		return false
	}

	if g.MustMeldRank != 0 && g.matchingNaturals(player, g.MustMeldRank-1) == 0 {
		return false
	}

	var byRank [NumRanks][]Card
	var blackThrees []Card
	wilds := g.wildCards(player)
	for i := uint8(0); i < hand.HandLen; i++ {
		c := hand.Hand[i]
		if c.IsWild() {
			continue
		}
		if c.IsBlackThree() {
			blackThrees = append(blackThrees, c)
			continue
		}
		byRank[c.Rank()] = append(byRank[c.Rank()], c)
	}

	// One or two leftover black threes are unmeldable and sink the plan.
	if n := len(blackThrees); n == 1 || n == 2 {
		return false
	}

	hadInitialMeld := t.InitialMeldMade
	var created []uint8

	for rank := uint8(0); rank < NumRanks; rank++ {
		cards := byRank[rank]
		if len(cards) == 0 {
			continue
		}
		if mi := t.meldOfRank(rank); mi >= 0 {
			m := &t.Melds[mi]
			if int(m.Len)+len(cards) > MeldCap {
				return false
			}
			for _, c := range cards {
				m.add(c)
			}
		} else {
			if len(cards) < 2 || t.MeldCount >= MaxMelds {
				return false
			}
			m := &t.Melds[t.MeldCount]
			*m = Meld{Rank: rank}
			for _, c := range cards {
				m.add(c)
			}
			created = append(created, t.MeldCount)
			t.MeldCount++
		}
	}

	if len(blackThrees) >= 3 {
		if t.MeldCount >= MaxMelds {
			return false
		}
		m := &t.Melds[t.MeldCount]
		*m = Meld{Rank: RankThree}
		for _, c := range blackThrees {
			m.add(c)
		}
		t.MeldCount++
	}

	// Every wild must land somewhere. Undersized fresh melds get first claim
	// (a bare pair is not a legal meld); the rest grow the largest eligible
	// meld so near-canastas complete.
	for _, w := range wilds {
		best := int8(-1)
		for _, mi := range created {
			if t.Melds[mi].Len < 3 && t.Melds[mi].WildCount < 3 {
				best = int8(mi)
				break
			}
		}
		if best < 0 {
			for i := uint8(0); i < t.MeldCount; i++ {
				m := &t.Melds[i]
				if m.Rank == RankThree || m.WildCount >= 3 || m.Len >= MeldCap {
					continue
				}
				if best < 0 || m.Len > t.Melds[best].Len {
					best = int8(i)
				}
			}
		}
		if best < 0 {
			return false
		}
		t.Melds[best].add(w)
	}

	for _, mi := range created {
		if t.Melds[mi].Len < 3 {
			return false
		}
	}

	if !hadInitialMeld {
		minimum := initialMeldMinimum(t.CumulativeScore)
		met := false
		for _, mi := range created {
			if t.Melds[mi].Rank != RankThree && t.Melds[mi].Value() >= minimum {
				met = true
				break
			}
		}
		if !met {
			return false
		}
		t.InitialMeldMade = true
	}

	if !t.HasCanasta() {
		return false
	}

	hand.HandLen = 0
	return true
}
