package player

import (
	"math/rand"

	"github.com/jason-s-yu/canasta/engine"
)

// RandomAgent picks uniformly among legal actions. Its RNG is seeded per
// agent so match traces replay exactly.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Name() string { return "random" }

func (a *RandomAgent) Act(_ *engine.GameState, legal []uint16) uint16 {
	return legal[a.rng.Intn(len(legal))]
}
