package engine

import "conquest/game"

// placeForAI spends the whole pool on random owned territories.
func (e *Engine) placeForAI() {
	p := e.current()
	owned := p.Territories()
	if len(owned) == 0 {
		return
	}
	for p.Armies() > 0 {
		t := owned[e.dice.Intn(len(owned))]
		if err := e.registry.PlaceArmy(p.ID, t); err != nil {
			e.invariant(err)
		}
		e.metrics.AddPlacement()
	}
	e.emit("place")
}

// attackForAI drops every territory held at the start of the turn onto each
// of its neighbours, stopping early if the game ends or restarts.
func (e *Engine) attackForAI() {
	p := e.current()
	for _, source := range p.Territories() {
		for _, target := range e.board.Neighbors(source) {
			if e.next != nil || e.stopped {
				return
			}
			if !p.Owns(source) {
				break
			}
			e.selected = source
			e.dragging = true
			e.dropOn(source, target)
		}
	}
	e.selected = game.NoTerritory
	e.dragging = false
}
