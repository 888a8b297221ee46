package engine

func (e *Engine) enterAcquisition() {
	e.acquireForAI()
}

// acquireForAI claims for AI players until a human is up or nothing is free,
// then moves on to placement once every territory is taken.
func (e *Engine) acquireForAI() {
	for e.current().IsAI {
		free := e.registry.FreeTerritories()
		if len(free) == 0 {
			break
		}
		t := free[e.dice.Intn(len(free))]
		if err := e.registry.AssignTerritory(e.current().ID, t); err != nil {
			e.invariant(err)
		}
		e.metrics.AddClaim()
		e.advance()
		e.emit("claim")
	}
	if e.registry.OwnedCount() == e.board.Len() {
		e.transition(ArmyPlacementPhase)
	}
}

func (e *Engine) enterArmyPlacement() {
	p := e.current()
	armies := e.registry.AddReinforcements(p.ID)
	e.logger.Debug().Msgf("%s receives %d armies, %d to place", p.Name, armies, p.Armies())
	if !p.IsAI {
		// A human with nothing to place still confirms with a click or 'e'.
		return
	}
	e.placeForAI()
	e.transition(MoveAndAttackPhase)
}

func (e *Engine) enterMoveAndAttack() {
	e.dragging = false
	if !e.current().IsAI {
		return
	}
	e.attackForAI()
	if e.next == nil && !e.stopped {
		e.transition(EndRoundPhase)
	}
}

func (e *Engine) enterEndRound() {
	e.advance()
	e.round++
	e.metrics.AddRound()
	if e.maxRounds > 0 && e.round >= e.maxRounds {
		e.logger.Info().Msgf("stopping after %d rounds without a winner", e.round)
		e.Stop()
		return
	}
	e.transition(ArmyPlacementPhase)
}
