package engine

// Flat integer action space. Every legal move maps to a single index in
// [0, NumActions); ranges are contiguous per action family so both encoding
// and classification are constant-time arithmetic.
//
// Meld actions are addressed by shape, not by explicit card lists: a create
// names (rank, naturalCount, wildCount) and an extend names (meldIndex,
// naturalsAdded, wildsAdded). The concrete cards are chosen deterministically
// from the hand (lowest ids first, jokers before twos for wilds), which keeps
// the space small and replay exact.
const (
	ActionDrawStock uint16 = 0
	ActionTakePile  uint16 = 1
	ActionSkipMeld  uint16 = 2

	// Create meld: base + rank*32 + (naturalCount-2)*4 + wildCount.
	// 13 ranks × 8 natural slots × 4 wild slots.
	ActionBaseCreateMeld uint16 = 3

	// Extend meld: base + meldIndex*32 + naturalsAdded*4 + wildsAdded.
	ActionBaseExtendMeld uint16 = ActionBaseCreateMeld + NumRanks*32 // 419

	// Discard: base + card id.
	ActionBaseDiscard uint16 = ActionBaseExtendMeld + MaxMelds*32 // 803

	ActionAskPartner uint16 = ActionBaseDiscard + NumCards // 911
	ActionAnswerYes  uint16 = ActionAskPartner + 1
	ActionAnswerNo   uint16 = ActionAskPartner + 2
	ActionGoOut      uint16 = ActionAskPartner + 3

	// NumActions is the size of the flat action space.
	NumActions uint16 = ActionGoOut + 1 // 915
)

// MaskWords is the number of uint64 words needed to cover NumActions bits.
const MaskWords = (int(NumActions) + 63) / 64

// EncodeCreateMeld returns the action index laying a fresh meld of the given
// shape. Counts outside the addressable range fold into an index LegalActions
// never sets, so ApplyAction rejects them.
func EncodeCreateMeld(rank uint8, naturalCount, wildCount uint8) uint16 {
	if naturalCount < 2 || naturalCount > 9 || wildCount > 3 || rank >= NumRanks {
		return NumActions // never legal
	}
	return ActionBaseCreateMeld + uint16(rank)*32 + uint16(naturalCount-2)*4 + uint16(wildCount)
}

// EncodeExtendMeld returns the action index appending cards to the team's
// meld at meldIndex.
func EncodeExtendMeld(meldIndex uint8, naturalsAdded, wildsAdded uint8) uint16 {
	if meldIndex >= MaxMelds || naturalsAdded > 7 || wildsAdded > 3 {
		return NumActions
	}
	return ActionBaseExtendMeld + uint16(meldIndex)*32 + uint16(naturalsAdded)*4 + uint16(wildsAdded)
}

// EncodeDiscard returns the action index discarding the given card.
func EncodeDiscard(c Card) uint16 {
	if uint8(c) >= NumCards {
		return NumActions
	}
	return ActionBaseDiscard + uint16(c)
}

// ActionIsCreateMeld reports whether idx is a create-meld action and, if so,
// decodes its shape.
func ActionIsCreateMeld(idx uint16) (rank, naturalCount, wildCount uint8, ok bool) {
	if idx < ActionBaseCreateMeld || idx >= ActionBaseExtendMeld {
		return 0, 0, 0, false
	}
	off := idx - ActionBaseCreateMeld
	return uint8(off / 32), uint8(off%32/4) + 2, uint8(off % 4), true
}

// ActionIsExtendMeld reports whether idx is an extend-meld action and, if so,
// decodes its shape.
func ActionIsExtendMeld(idx uint16) (meldIndex, naturalsAdded, wildsAdded uint8, ok bool) {
	if idx < ActionBaseExtendMeld || idx >= ActionBaseDiscard {
		return 0, 0, 0, false
	}
	off := idx - ActionBaseExtendMeld
	return uint8(off / 32), uint8(off % 32 / 4), uint8(off % 4), true
}

// ActionIsDiscard reports whether idx is a discard action and, if so, decodes
// the card.
func ActionIsDiscard(idx uint16) (Card, bool) {
	if idx < ActionBaseDiscard || idx >= ActionAskPartner {
		return EmptyCard, false
	}
	return Card(idx - ActionBaseDiscard), true
}

// ActionString renders an action index for logs and test failures.
func ActionString(idx uint16) string {
	switch idx {
	case ActionDrawStock:
		return "draw_stock"
	case ActionTakePile:
		return "take_pile"
	case ActionSkipMeld:
		return "skip_meld"
	case ActionAskPartner:
		return "ask_partner"
	case ActionAnswerYes:
		return "answer_yes"
	case ActionAnswerNo:
		return "answer_no"
	case ActionGoOut:
		return "go_out"
	}
	if rank, n, w, ok := ActionIsCreateMeld(idx); ok {
		return "create_meld[" + rankNames[rank] + " n=" + itoa(n) + " w=" + itoa(w) + "]"
	}
	if mi, n, w, ok := ActionIsExtendMeld(idx); ok {
		return "extend_meld[" + itoa(mi) + " n=" + itoa(n) + " w=" + itoa(w) + "]"
	}
	if c, ok := ActionIsDiscard(idx); ok {
		return "discard[" + c.String() + "]"
	}
	return "invalid[" + itoa16(idx) + "]"
}

func itoa(v uint8) string { return itoa16(uint16(v)) }

func itoa16(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// naturalsOfRank returns the player's natural cards of the given rank, lowest
// ids first.
func (g *GameState) naturalsOfRank(player uint8, rank uint8) []Card {
	hand := &g.Players[player]
	out := make([]Card, 0, 8)
	for id := 0; id < 104; id++ {
		c := Card(id)
		if c.Rank() != rank || !c.IsNatural() {
			continue
		}
		if hand.contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// wildCards returns the player's wild cards, jokers first then twos, lowest
// ids first within each group. Jokers lead so shape-addressed melds score as
// high as possible, which matters for the initial meld minimum.
func (g *GameState) wildCards(player uint8) []Card {
	hand := &g.Players[player]
	out := make([]Card, 0, 8)
	for id := 104; id < NumCards; id++ {
		if hand.contains(Card(id)) {
			out = append(out, Card(id))
		}
	}
	for deck := 0; deck < 2; deck++ {
		for suit := 0; suit < 4; suit++ {
			c := Card(deck*52 + suit*13 + int(RankTwo))
			if hand.contains(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// selectMeldCards resolves a shape-addressed meld action to concrete cards.
// Returns nil when the hand cannot supply the requested counts.
func (g *GameState) selectMeldCards(player uint8, rank uint8, naturalCount, wildCount uint8) []Card {
	naturals := g.naturalsOfRank(player, rank)
	if uint8(len(naturals)) < naturalCount {
		return nil
	}
	wilds := g.wildCards(player)
	if uint8(len(wilds)) < wildCount {
		return nil
	}
	cards := make([]Card, 0, int(naturalCount)+int(wildCount))
	cards = append(cards, naturals[:naturalCount]...)
	cards = append(cards, wilds[:wildCount]...)
	return cards
}
