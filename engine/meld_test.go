package engine

import (
	"errors"
	"testing"
)

func TestCanFormMeldComposition(t *testing.T) {
	fives := CardsOfRank(RankFive)
	sixes := CardsOfRank(RankSix)
	joker := Card(104)
	two := CardsOfRank(RankTwo)[0]

	cases := []struct {
		name  string
		cards []Card
		err   error
	}{
		{"three naturals", []Card{fives[0], fives[1], fives[2]}, nil},
		{"two naturals one wild", []Card{fives[0], fives[1], joker}, nil},
		{"two naturals", []Card{fives[0], fives[1]}, ErrMeldTooSmall},
		{"one natural two wilds", []Card{fives[0], joker, two}, ErrInsufficientNaturals},
		{"four wilds", []Card{fives[0], fives[1], joker, Card(105), two, CardsOfRank(RankTwo)[1]}, ErrTooManyWilds},
		{"mixed ranks", []Card{fives[0], fives[1], sixes[0]}, ErrMixedRanks},
		{"all wilds", []Card{joker, two, Card(105)}, ErrInsufficientNaturals},
		{"black threes", []Card{Card(2), Card(41), Card(54)}, ErrBlackThreeRestricted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CanFormMeld(tc.cards)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestMeldRankDerivation(t *testing.T) {
	fives := CardsOfRank(RankFive)
	m, err := CanFormMeld([]Card{fives[0], fives[1], Card(104)})
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}
	if m.Rank != RankFive {
		t.Fatalf("expected rank %d, got %d", RankFive, m.Rank)
	}
	if m.NaturalCount != 2 || m.WildCount != 1 || m.Len != 3 {
		t.Fatalf("unexpected counts: naturals %d wilds %d len %d", m.NaturalCount, m.WildCount, m.Len)
	}
}

func TestMeldValue(t *testing.T) {
	kings := CardsOfRank(RankKing)
	m, err := CanFormMeld([]Card{kings[0], kings[1], Card(104)})
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}
	if v := m.Value(); v != 70 { // 10 + 10 + 50
		t.Fatalf("expected value 70, got %d", v)
	}
}

func TestCanastaStatus(t *testing.T) {
	sevens := CardsOfRank(RankSeven)

	natural, err := CanFormMeld(sevens[:7])
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}
	if natural.CanastaStatus() != CanastaNatural {
		t.Fatalf("expected natural canasta, got %d", natural.CanastaStatus())
	}

	mixed, err := CanFormMeld(append(append([]Card{}, sevens[:6]...), Card(104)))
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}
	if mixed.CanastaStatus() != CanastaMixed {
		t.Fatalf("expected mixed canasta, got %d", mixed.CanastaStatus())
	}

	short, err := CanFormMeld(sevens[:3])
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}
	if short.CanastaStatus() != CanastaNone {
		t.Fatalf("expected no canasta, got %d", short.CanastaStatus())
	}
}

func TestCanExtendMeld(t *testing.T) {
	nines := CardsOfRank(RankNine)
	m, err := CanFormMeld(nines[:3])
	if err != nil {
		t.Fatalf("CanFormMeld failed: %v", err)
	}

	grown, err := CanExtendMeld(&m, []Card{nines[3], Card(104)})
	if err != nil {
		t.Fatalf("CanExtendMeld failed: %v", err)
	}
	if grown.Len != 5 || grown.NaturalCount != 4 || grown.WildCount != 1 {
		t.Fatalf("unexpected counts after extend: len %d naturals %d wilds %d",
			grown.Len, grown.NaturalCount, grown.WildCount)
	}
	// Original is untouched.
	if m.Len != 3 {
		t.Fatalf("extend mutated the source meld: len %d", m.Len)
	}

	if _, err := CanExtendMeld(&m, []Card{CardsOfRank(RankTen)[0]}); !errors.Is(err, ErrMixedRanks) {
		t.Fatalf("expected ErrMixedRanks, got %v", err)
	}

	// A fourth wild is rejected no matter how it arrives.
	withWilds, err := CanExtendMeld(&m, []Card{Card(104), Card(105), Card(106)})
	if err != nil {
		t.Fatalf("CanExtendMeld failed: %v", err)
	}
	if _, err := CanExtendMeld(&withWilds, []Card{Card(107)}); !errors.Is(err, ErrTooManyWilds) {
		t.Fatalf("expected ErrTooManyWilds, got %v", err)
	}
}

func TestGoingOutBlackThreeMeld(t *testing.T) {
	blacks := []Card{Card(2), Card(41), Card(54)} // 3c, 3s, 3c second deck
	m, err := buildMeld(blacks, true)
	if err != nil {
		t.Fatalf("expected black-three meld while going out, got %v", err)
	}
	if m.Rank != RankThree || m.Len != 3 {
		t.Fatalf("unexpected meld: rank %d len %d", m.Rank, m.Len)
	}

	// Wilds never join black threes, even going out.
	if _, err := buildMeld(append(blacks, Card(104)), true); !errors.Is(err, ErrBlackThreeRestricted) {
		t.Fatalf("expected ErrBlackThreeRestricted, got %v", err)
	}
}
