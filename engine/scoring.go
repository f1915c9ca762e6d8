package engine

// Hand scoring and match termination.

// initialMeldMinimum returns the value a team's first meld must reach, tiered
// by cumulative score.
func initialMeldMinimum(cumulative int32) int {
	switch {
	case cumulative < 0:
		return 15
	case cumulative < 1500:
		return 50
	case cumulative < 3000:
		return 90
	default:
		return 120
	}
}

// InitialMeldMinimum exposes the current tier for a team.
func (g *GameState) InitialMeldMinimum(team uint8) int {
	if team >= NumTeams {
		return 0
	}
	return initialMeldMinimum(g.Teams[team].CumulativeScore)
}

const (
	bonusNaturalCanasta = 500
	bonusMixedCanasta   = 300
	bonusRedThree       = 100
	bonusAllRedThrees   = 800
	bonusGoingOut       = 100
	bonusConcealed      = 200
)

// redThreeBonus is positive when the team has melded, a penalty otherwise.
// All four red threes escalate the bonus to a flat 800; the penalty stays
// per-card.
func redThreeBonus(count uint8, hasMelded bool) int32 {
	if count == 0 {
		return 0
	}
	if !hasMelded {
		return -int32(count) * bonusRedThree
	}
	if count == 4 {
		return bonusAllRedThrees
	}
	return int32(count) * bonusRedThree
}

// handScore totals one team's result for the hand just ended: meld card
// points plus canasta and red-three bonuses, minus the cards both partners
// still hold.
func (g *GameState) handScore(team uint8) int32 {
	t := &g.Teams[team]
	score := int32(0)
	for i := uint8(0); i < t.MeldCount; i++ {
		m := &t.Melds[i]
		score += int32(m.Value())
		switch m.CanastaStatus() {
		case CanastaNatural:
			score += bonusNaturalCanasta
		case CanastaMixed:
			score += bonusMixedCanasta
		}
	}
	score += redThreeBonus(t.RedThreeCount, t.InitialMeldMade)
	for p := uint8(0); p < NumPlayers; p++ {
		if teamOf(p) != team {
			continue
		}
		hand := &g.Players[p]
		for i := uint8(0); i < hand.HandLen; i++ {
			score -= int32(hand.Hand[i].Value())
		}
	}
	return score
}

// endHand scores the completed hand and either advances to the next deal or
// terminates the match. outTeam is -1 when the hand ended by stock exhaustion
// rather than a go-out.
func (g *GameState) endHand(outTeam int8, concealed bool) {
	for team := uint8(0); team < NumTeams; team++ {
		hs := g.handScore(team)
		if int8(team) == outTeam {
			if concealed {
				hs += bonusConcealed
			} else {
				hs += bonusGoingOut
			}
		}
		g.Teams[team].HandScore = hs
		g.Teams[team].CumulativeScore += hs
	}

	reached := g.Teams[0].CumulativeScore >= g.Rules.TargetScore ||
		g.Teams[1].CumulativeScore >= g.Rules.TargetScore
	capped := g.Rules.MaxHands > 0 && g.HandNumber >= g.Rules.MaxHands
	if !reached && !capped {
		g.startNextHand()
		return
	}

	g.Phase = PhaseTerminal
	switch {
	case g.Teams[0].CumulativeScore > g.Teams[1].CumulativeScore:
		g.WinningTeam = 0
	case g.Teams[1].CumulativeScore > g.Teams[0].CumulativeScore:
		g.WinningTeam = 1
	default:
		g.WinningTeam = -1 // exact tie is a draw
	}
}

// Returns reports both teams' cumulative scores.
func (g *GameState) Returns() [NumTeams]int32 {
	return [NumTeams]int32{g.Teams[0].CumulativeScore, g.Teams[1].CumulativeScore}
}

// Utilities maps the terminal outcome onto per-player values in {-1, 0, +1}.
// Non-terminal states and draws yield zeros.
func (g *GameState) Utilities() [NumPlayers]float32 {
	var u [NumPlayers]float32
	if g.Phase != PhaseTerminal || g.WinningTeam < 0 {
		return u
	}
	for p := uint8(0); p < NumPlayers; p++ {
		if teamOf(p) == uint8(g.WinningTeam) {
			u[p] = 1
		} else {
			u[p] = -1
		}
	}
	return u
}
