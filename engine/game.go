// Package engine implements the Canasta rules engine and turn state machine.
//
// The engine models a 4-player partnership match (Pagat Classic rules) as a
// flat value-type GameState suitable for both interactive play and
// high-throughput self-play: snapshots are plain struct copies, legal actions
// are a bitmask over a fixed integer action space, and all chance (shuffling,
// dealing) is driven by a caller-visible seed or an explicitly supplied deck
// so any action sequence replays deterministically.
package engine

const (
	NumCards   = 108 // 2 × 52-card decks + 4 jokers
	NumPlayers = 4
	NumTeams   = 2
	NumRanks   = 13

	// MaxMelds bounds a team's meld slots: the 11 meldable ranks (aces and
	// fours through kings) plus the going-out black-three meld.
	MaxMelds = 12

	// MaxHandCards bounds a hand: picking up a large discard pile can push a
	// hand well past the dealt 11 cards.
	MaxHandCards = NumCards
)

// Phase enumerates the turn state machine's states.
type Phase uint8

const (
	PhaseDealing    Phase = iota // chance node: waiting for Deal/DealFrom
	PhaseDraw                    // exactly one draw or pile pickup
	PhaseMeld                    // zero or more meld actions, then skip
	PhaseGoOutQuery              // partner must answer a go-out request
	PhaseDiscard                 // exactly one discard (or go out)
	PhaseTerminal
)

// NumPhases is the number of Phase values, for one-hot encodings.
const NumPhases = 6

// PlayerState holds one player's hand: an unordered multiset of card ids.
type PlayerState struct {
	Hand    [MaxHandCards]Card
	HandLen uint8
}

func (p *PlayerState) cards() []Card { return p.Hand[:p.HandLen] }

func (p *PlayerState) add(c Card) {
	p.Hand[p.HandLen] = c
	p.HandLen++
}

// remove deletes one copy of c from the hand, reporting whether it was held.
// Hands are unordered, so the last card backfills the vacated slot.
func (p *PlayerState) remove(c Card) bool {
	for i := uint8(0); i < p.HandLen; i++ {
		if p.Hand[i] == c {
			p.HandLen--
			p.Hand[i] = p.Hand[p.HandLen]
			return true
		}
	}
	return false
}

func (p *PlayerState) contains(c Card) bool {
	for i := uint8(0); i < p.HandLen; i++ {
		if p.Hand[i] == c {
			return true
		}
	}
	return false
}

// TeamState holds a team's melds, red threes, and scores.
type TeamState struct {
	Melds           [MaxMelds]Meld
	MeldCount       uint8
	RedThrees       [4]Card
	RedThreeCount   uint8
	CumulativeScore int32 // persists across hands
	HandScore       int32 // reset at each deal
	InitialMeldMade bool  // reset at each deal
}

// meldOfRank returns the index of the team's meld of the given rank, or -1.
func (t *TeamState) meldOfRank(rank uint8) int8 {
	for i := uint8(0); i < t.MeldCount; i++ {
		if t.Melds[i].Rank == rank {
			return int8(i)
		}
	}
	return -1
}

// CanastaCounts returns the team's natural and mixed canasta counts.
func (t *TeamState) CanastaCounts() (natural, mixed uint8) {
	for i := uint8(0); i < t.MeldCount; i++ {
		switch t.Melds[i].CanastaStatus() {
		case CanastaNatural:
			natural++
		case CanastaMixed:
			mixed++
		}
	}
	return natural, mixed
}

// HasCanasta reports whether the team holds at least one canasta.
func (t *TeamState) HasCanasta() bool {
	n, m := t.CanastaCounts()
	return n+m > 0
}

func (t *TeamState) addRedThree(c Card) {
	if t.RedThreeCount < 4 {
		t.RedThrees[t.RedThreeCount] = c
		t.RedThreeCount++
	}
}

// GameState is the single mutable root aggregating the whole match. It is a
// flat value type: Save/Restore and hypothetical-rollout copies are plain
// struct assignments.
type GameState struct {
	Players [NumPlayers]PlayerState
	Teams   [NumTeams]TeamState

	Stock      [NumCards]Card // Stock[StockLen-1] is the top (next draw)
	StockLen   uint8
	Discard    [NumCards]Card // Discard[DiscardLen-1] is the top
	DiscardLen uint8
	PileFrozen bool

	CurrentPlayer uint8
	Phase         Phase
	HandNumber    uint16
	TurnNumber    uint16

	// MustMeldRank is rank+1 of the discard-pile top the pile-taker still owes
	// a meld for this turn; 0 = no obligation.
	MustMeldRank uint8

	MeldedThisTurn bool
	// PlayerMelded marks players who melded in a *prior* turn of this hand;
	// it is what distinguishes a concealed go-out.
	PlayerMelded [NumPlayers]bool

	// Going-out negotiation (ask-partner rule variant).
	GoOutApproved   bool
	PartnerAsked    bool
	GoOutQueryAsker int8

	// WinningTeam is set at PhaseTerminal: 0 or 1, or -1 for a draw.
	WinningTeam int8

	RNG   uint64
	Rules RuleConfig
}

func teamOf(player uint8) uint8    { return player % NumTeams }
func partnerOf(player uint8) uint8 { return (player + 2) % NumPlayers }

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// Match and hand lifecycle
// ---------------------------------------------------------------------------

// NewMatch initializes a match at hand 1, waiting on the first deal.
func NewMatch(seed uint64, rules RuleConfig) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	if rules.HandSize == 0 || int(rules.HandSize)*NumPlayers >= NumCards {
		rules.HandSize = DefaultRuleConfig().HandSize
	}
	g.Rules = rules
	g.Phase = PhaseDealing
	g.HandNumber = 1
	g.WinningTeam = -1
	g.GoOutQueryAsker = -1
	return g
}

// Deal shuffles with the internal RNG and deals the current hand. It is the
// engine-driven resolution of the PhaseDealing chance node; callers that need
// explicit chance outcomes use DealFrom instead.
func (g *GameState) Deal() error {
	if g.Phase != PhaseDealing {
		return ErrActionNotLegal
	}
	deck := FullDeck()
	for i := NumCards - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}
	g.dealFrom(deck)
	return nil
}

// DealFrom deals the current hand from an explicitly supplied permutation of
// the 108-card deck, the externally supplied chance outcome required for
// deterministic replay.
func (g *GameState) DealFrom(deck [NumCards]Card) error {
	if g.Phase != PhaseDealing {
		return ErrActionNotLegal
	}
	var seen [NumCards]bool
	for _, c := range deck {
		if uint8(c) >= NumCards || seen[c] {
			return ErrInvalidCardID
		}
		seen[c] = true
	}
	g.dealFrom(deck)
	return nil
}

// dealFrom distributes deck[0], deck[1], ... in order: HandSize cards each in
// round-robin, red-three replacements, one upcard, remainder to stock.
func (g *GameState) dealFrom(deck [NumCards]Card) {
	next := 0
	for c := uint8(0); c < g.Rules.HandSize; c++ {
		for p := uint8(0); p < NumPlayers; p++ {
			g.Players[p].add(deck[next])
			next++
		}
	}

	// Red threes never stay in a hand: route them to the team pile and draw a
	// replacement. Replacements are re-checked in place.
	for p := uint8(0); p < NumPlayers; p++ {
		hand := &g.Players[p]
		i := uint8(0)
		for i < hand.HandLen {
			c := hand.Hand[i]
			if !c.IsRedThree() {
				i++
				continue
			}
			g.Teams[teamOf(p)].addRedThree(c)
			hand.HandLen--
			hand.Hand[i] = hand.Hand[hand.HandLen]
			if next < NumCards {
				hand.add(deck[next])
				next++
			}
		}
	}

	// One upcard seeds the discard pile; the fresh pile starts frozen. A red
	// three or wild upcard is covered by turning the next card on top of it.
	g.Discard[0] = deck[next]
	g.DiscardLen = 1
	next++
	for {
		top := g.Discard[g.DiscardLen-1]
		if !top.IsRedThree() && !top.IsWild() {
			break
		}
		g.Discard[g.DiscardLen] = deck[next]
		g.DiscardLen++
		next++
	}
	g.PileFrozen = true

	// Remaining cards form the stock; deck[next] is the next draw, so it lands
	// on top (the high end of the array).
	n := NumCards - next
	for k := 0; k < n; k++ {
		g.Stock[n-1-k] = deck[next+k]
	}
	g.StockLen = uint8(n)

	g.CurrentPlayer = uint8((g.HandNumber - 1) % NumPlayers)
	g.Phase = PhaseDraw
}

// startNextHand resets per-hand state, carrying cumulative scores forward.
func (g *GameState) startNextHand() {
	g.HandNumber++
	for p := range g.Players {
		g.Players[p] = PlayerState{}
	}
	for t := range g.Teams {
		cum := g.Teams[t].CumulativeScore
		g.Teams[t] = TeamState{CumulativeScore: cum}
	}
	g.StockLen = 0
	g.DiscardLen = 0
	g.PileFrozen = false
	g.TurnNumber = 0
	g.MustMeldRank = 0
	g.MeldedThisTurn = false
	g.PlayerMelded = [NumPlayers]bool{}
	g.GoOutApproved = false
	g.PartnerAsked = false
	g.GoOutQueryAsker = -1
	g.Phase = PhaseDealing
}

// ---------------------------------------------------------------------------
// Query methods — the read-only contract for renderers and agents
// ---------------------------------------------------------------------------

// IsTerminal returns true when the match is over.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseTerminal }

// IsChanceNode returns true while the state awaits a deal outcome.
func (g *GameState) IsChanceNode() bool { return g.Phase == PhaseDealing }

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if g.DiscardLen == 0 {
		return EmptyCard
	}
	return g.Discard[g.DiscardLen-1]
}

// StockSize returns the number of cards left in the stock.
func (g *GameState) StockSize() int { return int(g.StockLen) }

// DiscardSize returns the number of cards in the discard pile.
func (g *GameState) DiscardSize() int { return int(g.DiscardLen) }

// StockCards returns a copy of the stock, bottom first (the next draw is the
// last element). For debugging and replay tooling only.
func (g *GameState) StockCards() []Card {
	out := make([]Card, g.StockLen)
	copy(out, g.Stock[:g.StockLen])
	return out
}

// DiscardCards returns a copy of the discard pile, bottom first.
func (g *GameState) DiscardCards() []Card {
	out := make([]Card, g.DiscardLen)
	copy(out, g.Discard[:g.DiscardLen])
	return out
}

// IsFrozen reports whether the discard pile is frozen.
func (g *GameState) IsFrozen() bool { return g.PileFrozen }

// PlayerHand returns a copy of a player's hand card ids.
func (g *GameState) PlayerHand(player uint8) []Card {
	if player >= NumPlayers {
		return nil
	}
	out := make([]Card, g.Players[player].HandLen)
	copy(out, g.Players[player].cards())
	return out
}

// HandSize returns the number of cards a player holds.
func (g *GameState) HandSize(player uint8) int {
	if player >= NumPlayers {
		return 0
	}
	return int(g.Players[player].HandLen)
}

// TeamMelds returns a copy of a team's melds.
func (g *GameState) TeamMelds(team uint8) []Meld {
	if team >= NumTeams {
		return nil
	}
	t := &g.Teams[team]
	out := make([]Meld, t.MeldCount)
	copy(out, t.Melds[:t.MeldCount])
	return out
}

// RedThreeCards returns a copy of a team's collected red threes.
func (g *GameState) RedThreeCards(team uint8) []Card {
	if team >= NumTeams {
		return nil
	}
	t := &g.Teams[team]
	out := make([]Card, t.RedThreeCount)
	copy(out, t.RedThrees[:t.RedThreeCount])
	return out
}

// TeamOf returns the team a player seat belongs to (seats 0/2 vs 1/3).
func (g *GameState) TeamOf(player uint8) uint8 { return teamOf(player) }

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState.
// No heap allocation; saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
