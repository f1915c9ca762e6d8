package engine

// ApplyAction advances the state machine by one action index. Invalid or
// illegal actions return a classified error and leave the state untouched;
// every mutation below happens only after its validator has passed.
func (g *GameState) ApplyAction(idx uint16) error {
	if idx >= NumActions {
		return ErrActionNotLegal
	}
	switch g.Phase {
	case PhaseDraw:
		switch idx {
		case ActionDrawStock:
			return g.applyDrawStock()
		case ActionTakePile:
			return g.applyTakePile()
		}
	case PhaseMeld:
		switch idx {
		case ActionSkipMeld:
			return g.applySkipMeld()
		case ActionAskPartner:
			return g.applyAskPartner()
		case ActionGoOut:
			return g.applyGoOut()
		}
		if rank, n, w, ok := ActionIsCreateMeld(idx); ok {
			return g.applyCreateMeld(rank, n, w)
		}
		if mi, n, w, ok := ActionIsExtendMeld(idx); ok {
			return g.applyExtendMeld(mi, n, w)
		}
	case PhaseGoOutQuery:
		switch idx {
		case ActionAnswerYes:
			return g.applyAnswer(true)
		case ActionAnswerNo:
			return g.applyAnswer(false)
		}
	case PhaseDiscard:
		if c, ok := ActionIsDiscard(idx); ok {
			return g.applyDiscard(c)
		}
	}
	return ErrActionNotLegal
}

func (g *GameState) applyDrawStock() error {
	if g.StockLen == 0 {
		return ErrPileEmpty
	}
	player := g.CurrentPlayer
	team := teamOf(player)
	// Red threes drawn from stock go straight to the team pile and are
	// replaced from the stock while cards remain.
	drew := false
	for g.StockLen > 0 {
		g.StockLen--
		c := g.Stock[g.StockLen]
		if c.IsRedThree() {
			g.Teams[team].addRedThree(c)
			continue
		}
		g.Players[player].add(c)
		drew = true
		break
	}
	if !drew {
		// Red threes emptied the stock; the hand ends on the spot.
		g.endHand(-1, false)
		return nil
	}
	g.Phase = PhaseMeld
	return nil
}

func (g *GameState) applyTakePile() error {
	if err := g.canTakePile(g.CurrentPlayer); err != nil {
		return err
	}
	g.takePile(g.CurrentPlayer)
	g.Phase = PhaseMeld
	return nil
}

func (g *GameState) applySkipMeld() error {
	if g.GoOutApproved {
		return ErrActionNotLegal // a granted request must be carried out
	}
	if g.MustMeldRank != 0 {
		return ErrActionNotLegal // pile obligation outstanding
	}
	g.Phase = PhaseDiscard
	return nil
}

func (g *GameState) applyAskPartner() error {
	if err := g.canAskPartner(g.CurrentPlayer); err != nil {
		return err
	}
	g.PartnerAsked = true
	g.GoOutQueryAsker = int8(g.CurrentPlayer)
	g.CurrentPlayer = partnerOf(g.CurrentPlayer)
	g.Phase = PhaseGoOutQuery
	return nil
}

func (g *GameState) applyAnswer(yes bool) error {
	if g.GoOutQueryAsker < 0 {
		return ErrActionNotLegal
	}
	g.GoOutApproved = yes
	g.CurrentPlayer = uint8(g.GoOutQueryAsker)
	g.GoOutQueryAsker = -1
	g.Phase = PhaseMeld
	return nil
}

func (g *GameState) applyCreateMeld(rank uint8, naturalCount, wildCount uint8) error {
	player := g.CurrentPlayer
	if err := g.canCreateMeld(player, rank, naturalCount, wildCount); err != nil {
		return err
	}
	cards := g.selectMeldCards(player, rank, naturalCount, wildCount)
	m, err := CanFormMeld(cards)
	if err != nil {
		return err
	}
	team := teamOf(player)
	for _, c := range cards {
		g.Players[player].remove(c)
	}
	g.Teams[team].Melds[g.Teams[team].MeldCount] = m
	g.Teams[team].MeldCount++
	g.Teams[team].InitialMeldMade = true
	g.afterMeld(player, team)
	return nil
}

func (g *GameState) applyExtendMeld(meldIndex uint8, naturalsAdded, wildsAdded uint8) error {
	player := g.CurrentPlayer
	if err := g.canExtendMeldAction(player, meldIndex, naturalsAdded, wildsAdded); err != nil {
		return err
	}
	team := teamOf(player)
	m := &g.Teams[team].Melds[meldIndex]
	cards := g.selectMeldCards(player, m.Rank, naturalsAdded, wildsAdded)
	grown, err := CanExtendMeld(m, cards)
	if err != nil {
		return err
	}
	for _, c := range cards {
		g.Players[player].remove(c)
	}
	*m = grown
	g.afterMeld(player, team)
	return nil
}

// afterMeld records the meld side effects shared by create and extend: the
// pile obligation is discharged (validators only admit obligation-satisfying
// melds while one is outstanding) and an emptied hand ends the hand.
func (g *GameState) afterMeld(player uint8, team uint8) {
	g.MustMeldRank = 0
	concealed := !g.PlayerMelded[player]
	g.MeldedThisTurn = true
	if g.Players[player].HandLen == 0 {
		g.endHand(int8(team), concealed)
	}
}

func (g *GameState) applyGoOut() error {
	player := g.CurrentPlayer
	if err := g.canGoOutAction(player); err != nil {
		return err
	}
	discard, ok := g.planGoOut(player)
	if !ok {
		return ErrGoOutIneligible
	}
	concealed := !g.PlayerMelded[player]
	g.executeGoOut(player, discard) // plan already validated on a trial copy
	if discard != EmptyCard {
		g.Discard[g.DiscardLen] = discard
		g.DiscardLen++
	}
	g.MustMeldRank = 0
	g.MeldedThisTurn = true
	g.endHand(int8(teamOf(player)), concealed)
	return nil
}

func (g *GameState) applyDiscard(c Card) error {
	player := g.CurrentPlayer
	if err := g.canDiscard(player, c); err != nil {
		return err
	}
	g.Players[player].remove(c)
	g.Discard[g.DiscardLen] = c
	g.DiscardLen++
	// Wilds and black threes freeze the pile against everyone.
	if c.IsWild() || c.IsBlackThree() {
		g.PileFrozen = true
	}
	if g.Players[player].HandLen == 0 {
		concealed := !g.PlayerMelded[player] && g.MeldedThisTurn
		g.endHand(int8(teamOf(player)), concealed)
		return nil
	}
	g.advanceTurn()
	return nil
}

// advanceTurn rotates to the next player and ends the hand when the stock is
// exhausted and the incoming player cannot take the pile.
func (g *GameState) advanceTurn() {
	g.PlayerMelded[g.CurrentPlayer] = g.PlayerMelded[g.CurrentPlayer] || g.MeldedThisTurn
	g.MeldedThisTurn = false
	g.MustMeldRank = 0
	g.GoOutApproved = false
	g.PartnerAsked = false
	g.GoOutQueryAsker = -1
	g.TurnNumber++
	g.CurrentPlayer = (g.CurrentPlayer + 1) % NumPlayers
	g.Phase = PhaseDraw
	if g.StockLen == 0 && g.canTakePile(g.CurrentPlayer) != nil {
		g.endHand(-1, false)
	}
}
