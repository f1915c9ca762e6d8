// Package player defines the decision-making interface the self-play harness
// drives, plus baseline implementations.
package player

import "github.com/jason-s-yu/canasta/engine"

// Agent selects one action index from the legal set for the seat it controls.
type Agent interface {
	Name() string
	Act(g *engine.GameState, legal []uint16) uint16
}
