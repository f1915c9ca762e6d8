package engine

import "fmt"

// Rank constants — index into the 13-rank deck order. The card id layout
// places Ace first, so rank indices line up with id arithmetic.
const (
	RankAce   uint8 = 0
	RankTwo   uint8 = 1
	RankThree uint8 = 2
	RankFour  uint8 = 3
	RankFive  uint8 = 4
	RankSix   uint8 = 5
	RankSeven uint8 = 6
	RankEight uint8 = 7
	RankNine  uint8 = 8
	RankTen   uint8 = 9
	RankJack  uint8 = 10
	RankQueen uint8 = 11
	RankKing  uint8 = 12
	RankJoker uint8 = 13 // sentinel rank shared by the four jokers
)

// Suit constants, in card-id order.
const (
	SuitClubs    uint8 = 0
	SuitDiamonds uint8 = 1
	SuitHearts   uint8 = 2
	SuitSpades   uint8 = 3
	SuitNone     uint8 = 4 // jokers carry no suit
)

// Card is a stable deck id in [0, NumCards).
//
// Ids 0-51 are the first 52-card deck (13 ranks × clubs, diamonds, hearts,
// spades), 52-103 the second deck with the same layout, and 104-107 the
// jokers. Ids are total-ordered and never change, so collections of cards
// serialize as plain integer lists.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// CardFromID validates an untrusted integer id.
func CardFromID(id int) (Card, error) {
	if id < 0 || id >= NumCards {
		return EmptyCard, fmt.Errorf("card id %d: %w", id, ErrInvalidCardID)
	}
	return Card(id), nil
}

// Rank returns the card's rank index, or RankJoker for jokers.
func (c Card) Rank() uint8 {
	if c >= 104 {
		return RankJoker
	}
	return uint8(c) % 52 % 13
}

// Suit returns the card's suit, or SuitNone for jokers.
func (c Card) Suit() uint8 {
	if c >= 104 {
		return SuitNone
	}
	return uint8(c) % 52 / 13
}

// Value returns the card's point weight:
//   - Joker → 50
//   - Two, Ace → 20
//   - Eight through King → 10
//   - Three through Seven → 5
func (c Card) Value() int {
	switch r := c.Rank(); {
	case r == RankJoker:
		return 50
	case r == RankTwo, r == RankAce:
		return 20
	case r >= RankEight:
		return 10
	default:
		return 5
	}
}

// IsJoker reports whether the card is one of the four jokers.
func (c Card) IsJoker() bool { return c >= 104 && uint8(c) < NumCards }

// IsWild reports whether the card is wild (joker or two).
func (c Card) IsWild() bool { return c.IsJoker() || c.Rank() == RankTwo }

// IsNatural reports whether the card is not wild.
func (c Card) IsNatural() bool { return !c.IsWild() }

// IsRedThree reports whether the card is a three of diamonds or hearts.
func (c Card) IsRedThree() bool {
	return c.Rank() == RankThree && (c.Suit() == SuitDiamonds || c.Suit() == SuitHearts)
}

// IsBlackThree reports whether the card is a three of clubs or spades.
func (c Card) IsBlackThree() bool {
	return c.Rank() == RankThree && (c.Suit() == SuitClubs || c.Suit() == SuitSpades)
}

var rankNames = [14]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "JK"}
var suitNames = [5]string{"c", "d", "h", "s", ""}

func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	if uint8(c) >= NumCards {
		return fmt.Sprintf("Card(%d)", uint8(c))
	}
	return rankNames[c.Rank()] + suitNames[c.Suit()]
}

// FullDeck returns the canonical 108-card set in id order.
func FullDeck() [NumCards]Card {
	var deck [NumCards]Card
	for i := range deck {
		deck[i] = Card(i)
	}
	return deck
}

// CardsOfRank returns the 8 ids (4 suits × 2 decks) carrying the given rank.
func CardsOfRank(rank uint8) []Card {
	if rank >= NumRanks {
		return nil
	}
	cards := make([]Card, 0, 8)
	for deck := 0; deck < 2; deck++ {
		for suit := 0; suit < 4; suit++ {
			cards = append(cards, Card(deck*52+suit*13+int(rank)))
		}
	}
	return cards
}
