package game

import (
	"sort"

	"conquest/meta"
)

// Battle is the outcome of one exchange of dice.
type Battle struct {
	AttackerRolls  []int
	DefenderRolls  []int
	AttackerLosses int
	DefenderLosses int
}

// ResolveAttack rolls one die per committed army on each side and returns the
// losses. It does not touch any game state.
func ResolveAttack(attacking, defending int, dice Dice) (attackerLosses, defenderLosses int) {
	b := ResolveAttackRolls(NewStandardRules(), attacking, defending, dice)
	return b.AttackerLosses, b.DefenderLosses
}

// ResolveAttackRolls is ResolveAttack under the given rules, keeping the rolls.
func ResolveAttackRolls(rules Rules, attacking, defending int, dice Dice) Battle {
	b := Battle{
		AttackerRolls: rollDice(attacking, dice),
		DefenderRolls: rollDice(defending, dice),
	}
	b.AttackerLosses, b.DefenderLosses = rules.DetermineAttackOutcome(b.AttackerRolls, b.DefenderRolls)
	return b
}

func rollDice(num int, dice Dice) []int {
	if num < 0 {
		num = 0
	}
	rolls := make([]int, num)
	for i := 0; i < num; i++ {
		rolls[i] = dice.Intn(meta.DIE_SIDES) + 1
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rolls)))
	return rolls
}
