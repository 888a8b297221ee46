package engine

import (
	"errors"

	"conquest/game"
)

func (e *Engine) accepting() bool {
	return e.started && !e.stopped
}

// Select handles a click on a territory.
func (e *Engine) Select(t game.TerritoryID) {
	if !e.accepting() || e.board.Territory(t) == nil {
		return
	}
	e.selected = t
	switch e.phase {
	case AcquisitionPhase:
		e.claim(t)
	case ArmyPlacementPhase:
		e.place(t)
	case MoveAndAttackPhase, EndRoundPhase:
	default:
		panic("unknown phase")
	}
	e.run()
}

// DragStart marks t as the source of a drag.
func (e *Engine) DragStart(t game.TerritoryID) {
	if !e.accepting() || e.phase != MoveAndAttackPhase || e.board.Territory(t) == nil {
		return
	}
	e.selected = t
	e.dragging = true
}

// DragEnd handles a drop at (x, y) of a drag that started on source.
func (e *Engine) DragEnd(x, y float64, source game.TerritoryID) {
	if !e.accepting() || e.phase != MoveAndAttackPhase {
		return
	}
	target, ok := e.board.TerritoryAt(x, y)
	if !ok {
		return
	}
	e.Drop(source, target)
}

// Drop is DragEnd for hosts that already know the target territory.
func (e *Engine) Drop(source, target game.TerritoryID) {
	if !e.accepting() || e.phase != MoveAndAttackPhase {
		return
	}
	e.dropOn(source, target)
	e.run()
}

// Key handles a key press. 'e' ends the placement once the pool is empty,
// and ends the round while moving and attacking.
func (e *Engine) Key(r rune) {
	if !e.accepting() || (r != 'e' && r != 'E') {
		return
	}
	switch e.phase {
	case ArmyPlacementPhase:
		if e.current().Armies() == 0 {
			e.transition(MoveAndAttackPhase)
		}
	case MoveAndAttackPhase:
		e.transition(EndRoundPhase)
	case AcquisitionPhase, EndRoundPhase:
	default:
		panic("unknown phase")
	}
	e.run()
}

// EndTurn is Key('e').
func (e *Engine) EndTurn() {
	e.Key('e')
}

func (e *Engine) claim(t game.TerritoryID) {
	p := e.current()
	if err := e.registry.AssignTerritory(p.ID, t); err != nil {
		e.logger.Debug().Err(err).Msg("claim ignored")
		return
	}
	e.metrics.AddClaim()
	e.advance()
	e.emit("claim")
	e.acquireForAI()
}

func (e *Engine) place(t game.TerritoryID) {
	p := e.current()
	if err := e.registry.PlaceArmy(p.ID, t); err == nil {
		e.metrics.AddPlacement()
		e.emit("place")
	} else {
		e.logger.Debug().Err(err).Msg("placement ignored")
	}
	if p.Armies() == 0 {
		e.transition(MoveAndAttackPhase)
	}
}

// dropOn moves onto an own neighbour and attacks any other.
func (e *Engine) dropOn(source, target game.TerritoryID) {
	if !e.board.AreAdjacent(source, target) {
		return
	}
	p := e.current()
	if e.registry.Owner(target) == p.ID {
		e.move(p, source, target)
	} else {
		result, err := e.registry.Attack(p.ID, source, target, e.dice)
		switch {
		case err == nil:
			e.metrics.AddAttack(result.Conquered)
			e.logger.Debug().Msgf("%s attacked %s from %s: %v vs %v, conquered=%t",
				p.Name, e.board.Territories[target].Name, e.board.Territories[source].Name,
				result.AttackerRolls, result.DefenderRolls, result.Conquered)
			e.emit("attack")
		case errors.Is(err, game.ErrAttackOwnCountry):
			e.move(p, source, target)
		case errors.Is(err, game.ErrInvariantViolation):
			e.invariant(err)
		default:
			e.logger.Debug().Err(err).Msg("attack ignored")
		}
	}
	e.checkWin(p)
}

func (e *Engine) move(p *game.Player, source, target game.TerritoryID) {
	if moved := e.registry.MoveArmies(p.ID, source, target); moved > 0 {
		e.metrics.AddMove()
		e.emit("move")
	}
}

func (e *Engine) checkWin(p *game.Player) {
	if p.TerritoryCount() != e.board.Len() {
		return
	}
	e.winner = p.ID
	e.logger.Info().Msgf("%s conquered every territory after %d rounds", p.Name, e.round)
	e.emit("win")
	if e.onWin(p) {
		e.newGame()
		return
	}
	e.Stop()
}

// advance hands the turn on, skipping players left without territories once
// acquisition is over.
func (e *Engine) advance() {
	players := len(e.registry.Players())
	for i := 0; i < players; i++ {
		if err := e.registry.AdvanceTurn(); err != nil {
			e.invariant(err)
		}
		if e.phase == AcquisitionPhase || e.current().TerritoryCount() > 0 {
			return
		}
	}
}
