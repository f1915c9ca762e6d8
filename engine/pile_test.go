package engine

import (
	"errors"
	"testing"
)

// pileTestGame builds a hand-in-progress at seat 0's draw phase with a filled
// stock; tests then place hands and pile contents directly.
func pileTestGame(t *testing.T) GameState {
	t.Helper()
	g := NewMatch(1, DefaultRuleConfig())
	g.Phase = PhaseDraw
	g.CurrentPlayer = 0
	for i := 0; i < 20; i++ {
		g.Stock[i] = Card(42 + i) // no red threes in this id range
	}
	g.StockLen = 20
	return g
}

func setHand(g *GameState, p uint8, cards ...Card) {
	g.Players[p] = PlayerState{}
	for _, c := range cards {
		g.Players[p].add(c)
	}
}

func pushDiscard(g *GameState, cards ...Card) {
	for _, c := range cards {
		g.Discard[g.DiscardLen] = c
		g.DiscardLen++
	}
}

func TestTakePileFrozenNeedsTwoNaturals(t *testing.T) {
	kings := CardsOfRank(RankKing)
	fours := CardsOfRank(RankFour)

	g := pileTestGame(t)
	g.PileFrozen = true
	g.Teams[0].InitialMeldMade = true
	pushDiscard(&g, kings[0])

	// One matching natural plus a wild is not enough against a frozen pile.
	setHand(&g, 0, kings[1], Card(104), fours[0], fours[1])
	if err := g.canTakePile(0); !errors.Is(err, ErrPickupNotEligible) {
		t.Fatalf("expected ErrPickupNotEligible, got %v", err)
	}

	setHand(&g, 0, kings[1], kings[2], fours[0], fours[1])
	if err := g.canTakePile(0); err != nil {
		t.Fatalf("expected pickup allowed with two naturals, got %v", err)
	}
}

func TestTakePileUnfrozenSingleNatural(t *testing.T) {
	kings := CardsOfRank(RankKing)
	fours := CardsOfRank(RankFour)

	g := pileTestGame(t)
	g.PileFrozen = false
	g.Teams[0].InitialMeldMade = true
	pushDiscard(&g, kings[0])

	// Single natural plus a wild covers the meld obligation.
	setHand(&g, 0, kings[1], Card(104), fours[0], fours[1])
	if err := g.canTakePile(0); err != nil {
		t.Fatalf("expected pickup allowed, got %v", err)
	}

	// Single natural with no wild and no meld of the rank cannot.
	setHand(&g, 0, kings[1], fours[0], fours[1], fours[2])
	if err := g.canTakePile(0); !errors.Is(err, ErrPickupNotEligible) {
		t.Fatalf("expected ErrPickupNotEligible, got %v", err)
	}

	// An existing team meld of the rank stands in for the second natural.
	meld, err := CanFormMeld([]Card{kings[4], kings[5], kings[6]})
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}
	g.Teams[0].Melds[0] = meld
	g.Teams[0].MeldCount = 1
	setHand(&g, 0, kings[1], fours[0], fours[1], fours[2])
	if err := g.canTakePile(0); err != nil {
		t.Fatalf("expected pickup allowed via existing meld, got %v", err)
	}

	// No matching natural at all.
	setHand(&g, 0, fours[0], fours[1], fours[2], Card(104))
	if err := g.canTakePile(0); !errors.Is(err, ErrPickupNotEligible) {
		t.Fatalf("expected ErrPickupNotEligible, got %v", err)
	}
}

func TestTakePileRejectsUntakeableTops(t *testing.T) {
	g := pileTestGame(t)
	g.Teams[0].InitialMeldMade = true
	kings := CardsOfRank(RankKing)
	setHand(&g, 0, kings[0], kings[1], kings[2], kings[3])

	for _, top := range []Card{Card(104), CardsOfRank(RankTwo)[0], Card(2), Card(15)} {
		g.DiscardLen = 0
		pushDiscard(&g, top)
		if err := g.canTakePile(0); !errors.Is(err, ErrPickupNotEligible) {
			t.Fatalf("top %v: expected ErrPickupNotEligible, got %v", top, err)
		}
	}

	g.DiscardLen = 0
	if err := g.canTakePile(0); !errors.Is(err, ErrPileEmpty) {
		t.Fatalf("expected ErrPileEmpty, got %v", err)
	}
}

func TestTakePileInitialMeldGate(t *testing.T) {
	fours := CardsOfRank(RankFour)
	g := pileTestGame(t)
	g.PileFrozen = true
	pushDiscard(&g, fours[0])

	// Three fours are worth 15, below the opening minimum of 50.
	setHand(&g, 0, fours[1], fours[2], CardsOfRank(RankNine)[0], CardsOfRank(RankTen)[0])
	if err := g.canTakePile(0); !errors.Is(err, ErrInitialMeldTooLow) {
		t.Fatalf("expected ErrInitialMeldTooLow, got %v", err)
	}

	// A joker lifts the best meld to 65.
	setHand(&g, 0, fours[1], fours[2], Card(104), CardsOfRank(RankTen)[0])
	if err := g.canTakePile(0); err != nil {
		t.Fatalf("expected pickup allowed, got %v", err)
	}

	// A negative cumulative score drops the minimum to 15.
	g.Teams[0].CumulativeScore = -200
	setHand(&g, 0, fours[1], fours[2], CardsOfRank(RankNine)[0], CardsOfRank(RankTen)[0])
	if err := g.canTakePile(0); err != nil {
		t.Fatalf("expected pickup allowed at minimum 15, got %v", err)
	}
}

func TestTakePileMovesEverything(t *testing.T) {
	kings := CardsOfRank(RankKing)
	nines := CardsOfRank(RankNine)
	g := pileTestGame(t)
	g.PileFrozen = true
	g.Teams[0].InitialMeldMade = true
	pushDiscard(&g, nines[0], Card(15), nines[1], kings[0]) // red three buried
	setHand(&g, 0, kings[1], kings[2], CardsOfRank(RankFour)[0])

	if err := g.ApplyAction(ActionTakePile); err != nil {
		t.Fatalf("take pile failed: %v", err)
	}
	if g.DiscardLen != 0 || g.PileFrozen {
		t.Fatalf("expected empty unfrozen pile, len %d frozen %v", g.DiscardLen, g.PileFrozen)
	}
	if rt := g.RedThreeCards(0); len(rt) != 1 || rt[0] != Card(15) {
		t.Fatalf("expected buried red three routed to team 0, got %v", rt)
	}
	// 3 hand cards + 3 non-red-three pile cards.
	if g.HandSize(0) != 6 {
		t.Fatalf("expected 6 cards in hand, got %d", g.HandSize(0))
	}
	if g.MustMeldRank != RankKing+1 {
		t.Fatalf("expected king meld obligation, got %d", g.MustMeldRank)
	}
	if g.Phase != PhaseMeld {
		t.Fatalf("expected meld phase, got %d", g.Phase)
	}
}

func TestPickupObligationGatesMeldPhase(t *testing.T) {
	kings := CardsOfRank(RankKing)
	nines := CardsOfRank(RankNine)
	g := pileTestGame(t)
	g.PileFrozen = true
	g.Teams[0].InitialMeldMade = true
	pushDiscard(&g, kings[0])
	setHand(&g, 0, kings[1], kings[2], nines[0], nines[1], nines[2])

	if err := g.ApplyAction(ActionTakePile); err != nil {
		t.Fatalf("take pile failed: %v", err)
	}

	// Cannot stop melding or meld an unrelated rank while the obligation holds.
	if err := g.ApplyAction(ActionSkipMeld); !errors.Is(err, ErrActionNotLegal) {
		t.Fatalf("expected skip blocked, got %v", err)
	}
	if err := g.ApplyAction(EncodeCreateMeld(RankNine, 3, 0)); !errors.Is(err, ErrActionNotLegal) {
		t.Fatalf("expected unrelated meld blocked, got %v", err)
	}

	if err := g.ApplyAction(EncodeCreateMeld(RankKing, 3, 0)); err != nil {
		t.Fatalf("obligation meld failed: %v", err)
	}
	if g.MustMeldRank != 0 {
		t.Fatalf("expected obligation cleared, got %d", g.MustMeldRank)
	}
	if err := g.ApplyAction(ActionSkipMeld); err != nil {
		t.Fatalf("skip after obligation failed: %v", err)
	}
	if g.Phase != PhaseDiscard {
		t.Fatalf("expected discard phase, got %d", g.Phase)
	}
}
