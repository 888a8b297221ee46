package game

type Rules interface {
	MaxAttackArmies() int
	MaxDefendArmies() int
	DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int)
}
