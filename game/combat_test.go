package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scriptedDice returns its values in order, wrapping around.
type scriptedDice struct {
	values []int
	next   int
}

func (d *scriptedDice) Intn(n int) int {
	v := d.values[d.next%len(d.values)]
	d.next++
	return v % n
}

func TestResolveAttack(t *testing.T) {
	t.Run("attacker wins with a higher die", func(t *testing.T) {
		// Attacker rolls 6,1,1 and defender rolls 1
		dice := &scriptedDice{values: []int{5, 0, 0, 0}}

		attackerLosses, defenderLosses := ResolveAttack(3, 1, dice)

		require.Equal(t, 0, attackerLosses, "Attacker should lose nothing")
		require.Equal(t, 1, defenderLosses, "Defender should lose its only army")
	})

	t.Run("defender wins ties", func(t *testing.T) {
		// Attacker rolls 4,4 and defender rolls 4,4
		dice := &scriptedDice{values: []int{3}}

		attackerLosses, defenderLosses := ResolveAttack(2, 2, dice)

		require.Equal(t, 2, attackerLosses, "Every tie should cost the attacker")
		require.Equal(t, 0, defenderLosses)
	})

	t.Run("highest dice are compared first", func(t *testing.T) {
		// Attacker rolls 2,6,3 -> 6,3,2; defender rolls 5,4 -> 5,4
		dice := &scriptedDice{values: []int{1, 5, 2, 4, 3}}

		b := ResolveAttackRolls(NewStandardRules(), 3, 2, dice)

		require.Equal(t, []int{6, 3, 2}, b.AttackerRolls)
		require.Equal(t, []int{5, 4}, b.DefenderRolls)
		require.Equal(t, 1, b.AttackerLosses, "3 against 4 should cost the attacker")
		require.Equal(t, 1, b.DefenderLosses, "6 against 5 should cost the defender")
	})

	t.Run("losses stay within committed armies", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 1000; i++ {
			attackerLosses, defenderLosses := ResolveAttack(3, 2, rng)

			require.GreaterOrEqual(t, attackerLosses, 0)
			require.GreaterOrEqual(t, defenderLosses, 0)
			require.LessOrEqual(t, attackerLosses, 3)
			require.LessOrEqual(t, defenderLosses, 2)
			require.LessOrEqual(t, attackerLosses+defenderLosses, 2, "At most min(3,2) comparisons")
		}
	})

	t.Run("single defender limits comparisons", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			attackerLosses, defenderLosses := ResolveAttack(3, 1, rng)

			require.Equal(t, 1, attackerLosses+defenderLosses)
		}
	})

	t.Run("rolls are within die faces", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		b := ResolveAttackRolls(NewStandardRules(), 3, 2, rng)
		for _, r := range append(b.AttackerRolls, b.DefenderRolls...) {
			require.GreaterOrEqual(t, r, 1)
			require.LessOrEqual(t, r, 6)
		}
	})
}

func TestNewRules(t *testing.T) {
	t.Run("configured bounds", func(t *testing.T) {
		rules, err := NewRules(4, 3)

		require.NoError(t, err)
		require.Equal(t, 4, rules.MaxAttackArmies())
		require.Equal(t, 3, rules.MaxDefendArmies())
	})

	t.Run("bounds below one are rejected", func(t *testing.T) {
		_, err := NewRules(0, 2)

		require.ErrorIs(t, err, ErrInvalidRules)
	})
}
