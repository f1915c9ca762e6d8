package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/canasta/engine"
)

func dealtGame(t *testing.T) engine.GameState {
	t.Helper()
	g := engine.NewMatch(42, engine.DefaultRuleConfig())
	require.NoError(t, g.Deal())
	return g
}

func TestRandomAgentPicksLegalActions(t *testing.T) {
	g := dealtGame(t)
	a := NewRandomAgent(1)
	legal := g.LegalActionsList()
	require.NotEmpty(t, legal)

	for i := 0; i < 50; i++ {
		assert.Contains(t, legal, a.Act(&g, legal))
	}
}

func TestRandomAgentIsSeedDeterministic(t *testing.T) {
	g := dealtGame(t)
	legal := g.LegalActionsList()

	a := NewRandomAgent(9)
	b := NewRandomAgent(9)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Act(&g, legal), b.Act(&g, legal))
	}
}

func TestGreedyAgentPrefersGoOut(t *testing.T) {
	g := dealtGame(t)
	a := NewGreedyAgent(1)

	legal := []uint16{engine.ActionSkipMeld, engine.ActionGoOut}
	assert.Equal(t, engine.ActionGoOut, a.Act(&g, legal))

	legal = []uint16{engine.ActionDrawStock, engine.ActionTakePile}
	assert.Equal(t, engine.ActionTakePile, a.Act(&g, legal))

	legal = []uint16{engine.ActionDrawStock}
	assert.Equal(t, engine.ActionDrawStock, a.Act(&g, legal))
}
