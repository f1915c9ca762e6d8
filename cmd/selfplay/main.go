// Command selfplay runs batches of self-play matches between baseline agents,
// logging each result and optionally persisting them to SQLite.
//
// Configuration is environment-driven (a .env file is honored):
//
//	CANASTA_MATCHES       number of matches to play (default 10)
//	CANASTA_SEED          base RNG seed; match i uses seed+i (default 1)
//	CANASTA_TARGET_SCORE  match target score (default 5000)
//	CANASTA_MAX_HANDS     hand cap per match, 0 = none (default 200)
//	CANASTA_AGENT         baseline agent: random or greedy (default random)
//	CANASTA_DB            SQLite path for results; empty disables persistence
//	CANASTA_LOG_LEVEL     logrus level (default info)
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/canasta/engine"
	"github.com/jason-s-yu/canasta/internal/player"
	"github.com/jason-s-yu/canasta/internal/sim"
	"github.com/jason-s-yu/canasta/internal/store"
)

func envInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		logrus.Warnf("ignoring malformed %s=%q", key, v)
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(os.Getenv("CANASTA_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	matches := envInt("CANASTA_MATCHES", 10)
	baseSeed := uint64(envInt("CANASTA_SEED", 1))

	rules := engine.DefaultRuleConfig()
	rules.TargetScore = int32(envInt("CANASTA_TARGET_SCORE", int64(rules.TargetScore)))
	rules.MaxHands = uint16(envInt("CANASTA_MAX_HANDS", 200))

	newAgent := func(seed int64) player.Agent {
		if os.Getenv("CANASTA_AGENT") == "greedy" {
			return player.NewGreedyAgent(seed)
		}
		return player.NewRandomAgent(seed)
	}

	var db *store.Store
	if path := os.Getenv("CANASTA_DB"); path != "" {
		var err error
		db, err = store.Open(path)
		if err != nil {
			log.WithError(err).Fatal("open result store")
		}
		defer db.Close()
	}

	ctx := context.Background()
	wins := [3]int64{} // team A, team B, draws
	for i := int64(0); i < matches; i++ {
		seed := baseSeed + uint64(i)
		runner := sim.Runner{
			Log:   log,
			Rules: rules,
			Agents: [engine.NumPlayers]player.Agent{
				newAgent(int64(seed) * 4),
				newAgent(int64(seed)*4 + 1),
				newAgent(int64(seed)*4 + 2),
				newAgent(int64(seed)*4 + 3),
			},
		}
		res, err := runner.RunMatch(seed)
		if err != nil {
			log.WithError(err).WithField("seed", seed).Fatal("match failed")
		}
		switch res.Winner {
		case 0:
			wins[0]++
		case 1:
			wins[1]++
		default:
			wins[2]++
		}
		if db != nil {
			if err := db.SaveResult(ctx, res); err != nil {
				log.WithError(err).Fatal("save result")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"matches":     matches,
		"team_a_wins": wins[0],
		"team_b_wins": wins[1],
		"draws":       wins[2],
	}).Info("batch complete")
}
