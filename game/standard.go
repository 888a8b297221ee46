package game

import (
	"fmt"

	"conquest/meta"
)

type StandardRules struct {
	MaxAttackDice int
	MaxDefendDice int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		MaxAttackDice: meta.MAX_ATTACK_ARMIES,
		MaxDefendDice: meta.MAX_DEFEND_ARMIES,
	}
}

// NewRules builds StandardRules with configured bounds.
func NewRules(maxAttack, maxDefend int) (*StandardRules, error) {
	if maxAttack < 1 || maxDefend < 1 {
		return nil, fmt.Errorf("%w: attack=%d defend=%d", ErrInvalidRules, maxAttack, maxDefend)
	}
	return &StandardRules{MaxAttackDice: maxAttack, MaxDefendDice: maxDefend}, nil
}

func (sr *StandardRules) MaxAttackArmies() int {
	return sr.MaxAttackDice
}

func (sr *StandardRules) MaxDefendArmies() int {
	return sr.MaxDefendDice
}

// DetermineAttackOutcome compares descending rolls pairwise. The defender wins
// ties, and comparisons stop once either side has no dice left.
func (sr *StandardRules) DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	attacking, defending := len(attackerRolls), len(defenderRolls)
	battles := min(attacking, defending)
	for i := 0; i < battles; i++ {
		if attacking-attackerLosses == 0 || defending-defenderLosses == 0 {
			break
		}
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}
