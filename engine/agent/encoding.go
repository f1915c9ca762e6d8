// Package agent provides fixed-size tensor encodings of the game state for
// learning agents: a flat float32 observation from one seat's perspective and
// a mask over the flat action space.
package agent

import "github.com/jason-s-yu/canasta/engine"

// ObservationDim is the length of the flat observation vector.
const ObservationDim = 387

// Encode writes the observation for the given viewer seat into out. The
// layout is fixed and versioned by ObservationDim; every slot is in [0, 1].
// Hidden information (other hands, the stock order) is never encoded, only
// what the viewer could track from public play. A negative viewer selects
// the omniscient view for debugging and replay: the hand block carries every
// player's cards and the perspective is the seat to move.
func Encode(g *engine.GameState, viewer int8, out *[ObservationDim]float32) {
	for i := range out {
		out[i] = 0
	}
	omniscient := viewer < 0
	seat := uint8(viewer) % engine.NumPlayers
	if omniscient {
		seat = g.CurrentPlayer
	}
	viewTeam := g.TeamOf(seat)
	oppTeam := 1 - viewTeam

	offset := 0

	// Viewer hand, multi-hot over card ids. [0, 108)
	if omniscient {
		for p := uint8(0); p < engine.NumPlayers; p++ {
			for _, c := range g.PlayerHand(p) {
				out[offset+int(c)] = 1
			}
		}
	} else {
		for _, c := range g.PlayerHand(seat) {
			out[offset+int(c)] = 1
		}
	}
	offset += engine.NumCards

	// Discard pile contents, multi-hot. [108, 216)
	for i := 0; i < g.DiscardSize(); i++ {
		out[offset+int(g.Discard[i])] = 1
	}
	offset += engine.NumCards

	// Discard top card, one-hot; all zero on an empty pile. The multi-hot
	// above loses ordering, and pickup legality hinges on the top card. [216, 324)
	if top := g.DiscardTop(); top != engine.EmptyCard {
		out[offset+int(top)] = 1
	}
	offset += engine.NumCards

	// Phase one-hot. [324, 330)
	out[offset+int(g.Phase)] = 1
	offset += engine.NumPhases

	// Current player, one-hot relative to the viewer. [330, 334)
	out[offset+int((g.CurrentPlayer+engine.NumPlayers-seat)%engine.NumPlayers)] = 1
	offset += engine.NumPlayers

	// Other players' hand sizes, clockwise from the viewer. [334, 337)
	for i := uint8(1); i < engine.NumPlayers; i++ {
		p := (seat + i) % engine.NumPlayers
		out[offset] = float32(g.HandSize(p)) / float32(engine.NumCards)
		offset++
	}

	// Stock size. [337, 338)
	out[offset] = float32(g.StockSize()) / float32(engine.NumCards)
	offset++

	// Pile frozen flag. [338, 339)
	if g.IsFrozen() {
		out[offset] = 1
	}
	offset++

	// Meld sizes per rank, own team then opponents. [339, 365)
	for _, team := range [2]uint8{viewTeam, oppTeam} {
		for _, m := range g.TeamMelds(team) {
			out[offset+int(m.Rank)] = float32(m.Len) / float32(engine.MeldCap)
		}
		offset += engine.NumRanks
	}

	// Red three counts, own team then opponents. [365, 367)
	out[offset] = float32(len(g.RedThreeCards(viewTeam))) / 4
	out[offset+1] = float32(len(g.RedThreeCards(oppTeam))) / 4
	offset += 2

	// Initial meld flags. [367, 369)
	if g.Teams[viewTeam].InitialMeldMade {
		out[offset] = 1
	}
	if g.Teams[oppTeam].InitialMeldMade {
		out[offset+1] = 1
	}
	offset += 2

	// Cumulative scores, scaled by the target and clipped. [369, 371)
	out[offset] = clip01(float32(g.Teams[viewTeam].CumulativeScore) / float32(g.Rules.TargetScore))
	out[offset+1] = clip01(float32(g.Teams[oppTeam].CumulativeScore) / float32(g.Rules.TargetScore))
	offset += 2

	// Outstanding pile obligation, one-hot by rank. [371, 384)
	if g.MustMeldRank != 0 {
		out[offset+int(g.MustMeldRank-1)] = 1
	}
	offset += engine.NumRanks

	// Go-out negotiation and meld flags. [384, 387)
	if g.GoOutApproved {
		out[offset] = 1
	}
	if g.PartnerAsked {
		out[offset+1] = 1
	}
	if g.MeldedThisTurn {
		out[offset+2] = 1
	}
	offset += 3

	_ = offset // == ObservationDim
}

func clip01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ActionMask writes the legal-action mask as 0/1 floats over the flat action
// space.
func ActionMask(g *engine.GameState, out *[engine.NumActions]float32) {
	mask := g.LegalActions()
	for i := uint16(0); i < engine.NumActions; i++ {
		if engine.HasAction(mask, i) {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}
