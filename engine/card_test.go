package engine

import "testing"

func TestCardIDLayout(t *testing.T) {
	// Ace of clubs opens each 52-card deck.
	for _, id := range []int{0, 52} {
		c, err := CardFromID(id)
		if err != nil {
			t.Fatalf("CardFromID(%d) failed: %v", id, err)
		}
		if c.Rank() != RankAce || c.Suit() != SuitClubs {
			t.Fatalf("id %d: expected ace of clubs, got rank %d suit %d", id, c.Rank(), c.Suit())
		}
	}

	// King of spades closes each deck.
	for _, id := range []int{51, 103} {
		c := Card(id)
		if c.Rank() != RankKing || c.Suit() != SuitSpades {
			t.Fatalf("id %d: expected king of spades, got rank %d suit %d", id, c.Rank(), c.Suit())
		}
	}

	for id := 104; id < NumCards; id++ {
		c := Card(id)
		if !c.IsJoker() || c.Rank() != RankJoker || c.Suit() != SuitNone {
			t.Fatalf("id %d: expected joker, got rank %d suit %d", id, c.Rank(), c.Suit())
		}
	}

	if _, err := CardFromID(NumCards); err == nil {
		t.Fatal("expected error for out-of-range id")
	}
	if _, err := CardFromID(-1); err == nil {
		t.Fatal("expected error for negative id")
	}
}

func TestCardValues(t *testing.T) {
	cases := []struct {
		card Card
		want int
	}{
		{Card(104), 50},             // joker
		{CardsOfRank(RankTwo)[0], 20},
		{CardsOfRank(RankAce)[0], 20},
		{CardsOfRank(RankKing)[0], 10},
		{CardsOfRank(RankEight)[0], 10},
		{CardsOfRank(RankSeven)[0], 5},
		{CardsOfRank(RankFour)[0], 5},
		{CardsOfRank(RankThree)[0], 5},
	}
	for _, tc := range cases {
		if got := tc.card.Value(); got != tc.want {
			t.Errorf("%v: expected value %d, got %d", tc.card, tc.want, got)
		}
	}
}

func TestThreeClassification(t *testing.T) {
	red, black := 0, 0
	for _, c := range CardsOfRank(RankThree) {
		switch {
		case c.IsRedThree() && !c.IsBlackThree():
			red++
		case c.IsBlackThree() && !c.IsRedThree():
			black++
		default:
			t.Fatalf("%v: three is neither red nor black", c)
		}
	}
	if red != 4 || black != 4 {
		t.Fatalf("expected 4 red and 4 black threes, got %d red %d black", red, black)
	}
	if !Card(15).IsRedThree() { // three of diamonds, first deck
		t.Error("expected card 15 to be a red three")
	}
}

func TestWildClassification(t *testing.T) {
	wilds := 0
	for _, c := range FullDeck() {
		if c.IsWild() {
			wilds++
			if c.IsNatural() {
				t.Fatalf("%v: wild card reported natural", c)
			}
		}
	}
	// 8 twos + 4 jokers.
	if wilds != 12 {
		t.Fatalf("expected 12 wild cards, got %d", wilds)
	}
}

func TestCardsOfRank(t *testing.T) {
	for rank := uint8(0); rank < NumRanks; rank++ {
		cards := CardsOfRank(rank)
		if len(cards) != 8 {
			t.Fatalf("rank %d: expected 8 cards, got %d", rank, len(cards))
		}
		for _, c := range cards {
			if c.Rank() != rank {
				t.Fatalf("rank %d: card %v has rank %d", rank, c, c.Rank())
			}
		}
	}
	if CardsOfRank(RankJoker) != nil {
		t.Error("expected nil for the joker pseudo-rank")
	}
}

func TestCardString(t *testing.T) {
	if s := Card(0).String(); s != "Ac" {
		t.Errorf("expected Ac, got %s", s)
	}
	if s := Card(104).String(); s != "JK" {
		t.Errorf("expected JK, got %s", s)
	}
	if s := EmptyCard.String(); s != "--" {
		t.Errorf("expected --, got %s", s)
	}
}
