// Package sim runs complete self-play matches and reports their outcomes.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/canasta/engine"
	"github.com/jason-s-yu/canasta/internal/player"
)

// ErrMatchStalled is returned when a match exceeds the action budget,
// which would indicate an engine progress bug rather than slow play.
var ErrMatchStalled = errors.New("match exceeded action budget")

// DefaultMaxActions bounds a single match. A hand rarely needs more than a
// few hundred actions, so this leaves generous room for long matches.
const DefaultMaxActions = 200_000

// Result summarizes one finished match.
type Result struct {
	MatchID  uuid.UUID
	Seed     uint64
	Winner   int8 // team 0 or 1, -1 for a draw
	Scores   [engine.NumTeams]int32
	Hands    uint16
	Actions  int
	Duration time.Duration
}

// Runner drives matches between four agents under one rule configuration.
type Runner struct {
	Log        *logrus.Logger
	Rules      engine.RuleConfig
	Agents     [engine.NumPlayers]player.Agent
	MaxActions int
}

// RunMatch plays a single match to completion from the given seed.
func (r *Runner) RunMatch(seed uint64) (Result, error) {
	for i, a := range r.Agents {
		if a == nil {
			return Result{}, fmt.Errorf("seat %d has no agent", i)
		}
	}
	maxActions := r.MaxActions
	if maxActions <= 0 {
		maxActions = DefaultMaxActions
	}

	res := Result{MatchID: uuid.New(), Seed: seed}
	log := r.Log.WithFields(logrus.Fields{
		"match_id": res.MatchID,
		"seed":     seed,
	})
	log.Debug("match started")

	start := time.Now()
	g := engine.NewMatch(seed, r.Rules)
	for !g.IsTerminal() {
		if res.Actions >= maxActions {
			return Result{}, fmt.Errorf("%w after %d actions (hand %d)", ErrMatchStalled, res.Actions, g.HandNumber)
		}
		if g.IsChanceNode() {
			if err := g.Deal(); err != nil {
				return Result{}, fmt.Errorf("deal hand %d: %w", g.HandNumber, err)
			}
			log.WithField("hand", g.HandNumber).Debug("hand dealt")
			continue
		}
		seat := g.CurrentPlayer
		legal := g.LegalActionsList()
		if len(legal) == 0 {
			return Result{}, fmt.Errorf("no legal actions for seat %d in phase %d", seat, g.Phase)
		}
		idx := r.Agents[seat].Act(&g, legal)
		if err := g.ApplyAction(idx); err != nil {
			return Result{}, fmt.Errorf("seat %d (%s) chose %s: %w",
				seat, r.Agents[seat].Name(), engine.ActionString(idx), err)
		}
		res.Actions++
	}

	res.Winner = g.WinningTeam
	res.Scores = g.Returns()
	res.Hands = g.HandNumber
	res.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"winner":  res.Winner,
		"score_a": res.Scores[0],
		"score_b": res.Scores[1],
		"hands":   res.Hands,
		"actions": res.Actions,
		"elapsed": res.Duration.Round(time.Millisecond),
	}).Info("match finished")
	return res, nil
}
