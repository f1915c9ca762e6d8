package player

import (
	"math/rand"

	"github.com/jason-s-yu/canasta/engine"
)

// GreedyAgent is a shallow heuristic baseline: go out when possible, meld
// before skipping, prefer the pile over the stock, and break ties randomly.
type GreedyAgent struct {
	rng *rand.Rand
}

func NewGreedyAgent(seed int64) *GreedyAgent {
	return &GreedyAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *GreedyAgent) Name() string { return "greedy" }

func (a *GreedyAgent) Act(_ *engine.GameState, legal []uint16) uint16 {
	pick := func(want func(uint16) bool) (uint16, bool) {
		matches := legal[:0:0]
		for _, idx := range legal {
			if want(idx) {
				matches = append(matches, idx)
			}
		}
		if len(matches) == 0 {
			return 0, false
		}
		return matches[a.rng.Intn(len(matches))], true
	}

	if idx, ok := pick(func(i uint16) bool { return i == engine.ActionGoOut || i == engine.ActionAnswerYes }); ok {
		return idx
	}
	if idx, ok := pick(func(i uint16) bool { return i == engine.ActionTakePile }); ok {
		return idx
	}
	if idx, ok := pick(func(i uint16) bool {
		_, _, _, create := engine.ActionIsCreateMeld(i)
		_, _, _, extend := engine.ActionIsExtendMeld(i)
		return create || extend
	}); ok {
		return idx
	}
	if idx, ok := pick(func(i uint16) bool {
		_, isDiscard := engine.ActionIsDiscard(i)
		return isDiscard || i == engine.ActionDrawStock || i == engine.ActionSkipMeld
	}); ok {
		return idx
	}
	return legal[a.rng.Intn(len(legal))]
}
