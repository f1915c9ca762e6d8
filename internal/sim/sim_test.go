package sim

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/canasta/engine"
	"github.com/jason-s-yu/canasta/internal/player"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testRunner(maxHands uint16) *Runner {
	rules := engine.DefaultRuleConfig()
	rules.MaxHands = maxHands
	return &Runner{
		Log:   quietLogger(),
		Rules: rules,
		Agents: [engine.NumPlayers]player.Agent{
			player.NewRandomAgent(1),
			player.NewRandomAgent(2),
			player.NewRandomAgent(3),
			player.NewRandomAgent(4),
		},
	}
}

func TestRunMatchCompletes(t *testing.T) {
	res, err := testRunner(3).RunMatch(7)
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(res.MatchID))
	assert.EqualValues(t, 7, res.Seed)
	assert.GreaterOrEqual(t, res.Winner, int8(-1))
	assert.LessOrEqual(t, res.Winner, int8(1))
	assert.Positive(t, res.Actions)
	assert.GreaterOrEqual(t, res.Hands, uint16(1))
	assert.LessOrEqual(t, res.Hands, uint16(3))
}

func TestRunMatchIsDeterministic(t *testing.T) {
	a, err := testRunner(2).RunMatch(11)
	require.NoError(t, err)
	b, err := testRunner(2).RunMatch(11)
	require.NoError(t, err)

	assert.Equal(t, a.Winner, b.Winner)
	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Hands, b.Hands)
	assert.Equal(t, a.Actions, b.Actions)
}

func TestRunMatchGreedyAgents(t *testing.T) {
	r := testRunner(3)
	for i := range r.Agents {
		r.Agents[i] = player.NewGreedyAgent(int64(i))
	}
	res, err := r.RunMatch(5)
	require.NoError(t, err)
	assert.Positive(t, res.Actions)
}

func TestRunMatchRequiresAllSeats(t *testing.T) {
	r := testRunner(1)
	r.Agents[2] = nil
	_, err := r.RunMatch(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seat 2")
}

func TestRunMatchActionBudget(t *testing.T) {
	r := testRunner(0) // unlimited hands
	r.MaxActions = 5
	_, err := r.RunMatch(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMatchStalled))
}
