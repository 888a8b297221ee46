package engine

import (
	"testing"

	"conquest/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type scriptedDice struct {
	values []int
	next   int
}

func (d *scriptedDice) Intn(n int) int {
	v := d.values[d.next%len(d.values)]
	d.next++
	return v % n
}

// lineMap lays territories out left to right as 10x10 squares, each bordering the next.
func lineMap(t *testing.T, count int) *game.Map {
	t.Helper()
	m := game.NewMap()
	for i := 0; i < count; i++ {
		x := float64(i * 10)
		_, err := m.AddTerritory(string(rune('A'+i)), game.Point{X: x + 5, Y: 5}, game.Rect(x, 0, x+10, 10))
		require.NoError(t, err)
	}
	for i := 1; i < count; i++ {
		require.NoError(t, m.AddBorder(game.TerritoryID(i-1), game.TerritoryID(i)))
	}
	return m
}

func newEngine(m *game.Map, options ...Option) *Engine {
	options = append([]Option{WithLogger(zerolog.Nop()), WithInvariantChecks()}, options...)
	return New(m, game.NewStandardRules(), options...)
}

// center returns a point inside territory t of a lineMap.
func center(t game.TerritoryID) (float64, float64) {
	return float64(t)*10 + 5, 5
}

func TestAcquisition(t *testing.T) {
	t.Run("two humans take turns until every territory is owned", func(t *testing.T) {
		e := newEngine(lineMap(t, 4))
		first := e.AddPlayer("Player", false)
		second := e.AddPlayer("Player2", false)
		require.NoError(t, e.Start())
		require.Equal(t, AcquisitionPhase, e.Phase())

		for i := 0; i < 4; i++ {
			require.Equal(t, AcquisitionPhase, e.Phase())
			e.Select(game.TerritoryID(i))
		}

		require.Equal(t, 2, e.Player(first).TerritoryCount())
		require.Equal(t, 2, e.Player(second).TerritoryCount())
		require.Equal(t, ArmyPlacementPhase, e.Phase())
		require.Equal(t, first, e.CurrentPlayer().ID)
		require.Equal(t, 0, e.Armies(first), "Two territories earn no reinforcements")
	})

	t.Run("owned territory cannot be claimed again", func(t *testing.T) {
		e := newEngine(lineMap(t, 4))
		e.AddPlayer("Player", false)
		second := e.AddPlayer("Player2", false)
		require.NoError(t, e.Start())

		e.Select(0)
		e.Select(0)

		require.Equal(t, second, e.CurrentPlayer().ID, "Turn should not pass on a rejected claim")
		require.Equal(t, 0, e.Player(second).TerritoryCount())
	})

	t.Run("AI claims right after the human", func(t *testing.T) {
		e := newEngine(lineMap(t, 4), WithSeed(11))
		human := e.AddPlayer("Player", false)
		ai := e.AddPlayer("Ai1", true)
		require.NoError(t, e.Start())

		e.Select(0)

		require.Equal(t, human, e.CurrentPlayer().ID)
		require.Equal(t, 1, e.Player(ai).TerritoryCount())
		require.Len(t, e.Registry().FreeTerritories(), 2)

		e.Select(e.Registry().FreeTerritories()[0])

		require.Equal(t, ArmyPlacementPhase, e.Phase())
		require.Equal(t, 2, e.Player(ai).TerritoryCount())
		require.Equal(t, human, e.CurrentPlayer().ID)
	})

	t.Run("AI moving first claims before Start returns", func(t *testing.T) {
		e := newEngine(lineMap(t, 4), WithSeed(5))
		ai := e.AddPlayer("Ai1", true)
		human := e.AddPlayer("Player", false)

		require.NoError(t, e.Start())

		require.Equal(t, 1, e.Player(ai).TerritoryCount())
		require.Equal(t, human, e.CurrentPlayer().ID)
	})
}

func TestStart(t *testing.T) {
	t.Run("one player is not a game", func(t *testing.T) {
		e := newEngine(lineMap(t, 2))
		e.AddPlayer("Player", false)

		require.ErrorIs(t, e.Start(), ErrNotEnoughPlayers)
	})

	t.Run("invalid map is rejected", func(t *testing.T) {
		e := newEngine(game.NewMap())
		e.AddPlayer("Player", false)
		e.AddPlayer("Ai1", true)

		require.ErrorIs(t, e.Start(), game.ErrInvalidMap)
	})

	t.Run("events before start are ignored", func(t *testing.T) {
		e := newEngine(lineMap(t, 2))
		p := e.AddPlayer("Player", false)
		e.AddPlayer("Ai1", true)

		e.Select(0)
		e.EndTurn()

		require.Nil(t, e.CurrentPlayer())
		require.Equal(t, 0, e.Player(p).TerritoryCount())
	})
}

func TestArmyPlacement(t *testing.T) {
	setup := func(t *testing.T) (*Engine, game.PlayerID) {
		e := newEngine(lineMap(t, 6))
		first := e.AddPlayer("Player", false)
		e.AddPlayer("Player2", false)
		require.NoError(t, e.Start())
		for i := 0; i < 6; i++ {
			e.Select(game.TerritoryID(i))
		}
		return e, first
	}

	t.Run("entry grants reinforcements", func(t *testing.T) {
		e, first := setup(t)

		require.Equal(t, ArmyPlacementPhase, e.Phase())
		require.Equal(t, 1, e.Armies(first))
	})

	t.Run("enemy territory is ignored", func(t *testing.T) {
		e, first := setup(t)

		e.Select(1)

		require.Equal(t, ArmyPlacementPhase, e.Phase())
		require.Equal(t, 1, e.Armies(first))
		require.Equal(t, 1, e.Garrison(1))
	})

	t.Run("last army moves on to attacking", func(t *testing.T) {
		e, first := setup(t)

		e.Select(2)

		require.Equal(t, 2, e.Garrison(2))
		require.Equal(t, 0, e.Armies(first))
		require.Equal(t, MoveAndAttackPhase, e.Phase())
	})

	t.Run("e with armies left does nothing", func(t *testing.T) {
		e, _ := setup(t)

		e.Key('e')

		require.Equal(t, ArmyPlacementPhase, e.Phase())
	})

	t.Run("e with an empty pool moves on", func(t *testing.T) {
		e := newEngine(lineMap(t, 4))
		e.AddPlayer("Player", false)
		e.AddPlayer("Player2", false)
		require.NoError(t, e.Start())
		for i := 0; i < 4; i++ {
			e.Select(game.TerritoryID(i))
		}

		e.Key('e')

		require.Equal(t, MoveAndAttackPhase, e.Phase())
	})
}

// bonusGame gives the first human territories 0 and 1 and a region bonus of 3
// for territory 0, so placement can stack armies on territory 1.
func bonusGame(t *testing.T, territories int, dice game.Dice, options ...Option) (*Engine, game.PlayerID, game.PlayerID) {
	t.Helper()
	m := lineMap(t, territories)
	require.NoError(t, m.AddRegion("West", 3, 0))
	e := newEngine(m, append(options, WithRand(dice))...)
	first := e.AddPlayer("Player", false)
	second := e.AddPlayer("Player2", false)
	require.NoError(t, e.Start())
	return e, first, second
}

func TestMoveAndAttack(t *testing.T) {
	dice := &scriptedDice{values: []int{5, 0, 0, 0}}
	e, first, second := bonusGame(t, 4, dice)
	e.Select(0)
	e.Select(2)
	e.Select(1)
	e.Select(3)
	require.Equal(t, 3, e.Armies(first))
	e.Select(1)
	e.Select(1)
	e.Select(1)
	require.Equal(t, MoveAndAttackPhase, e.Phase())
	require.Equal(t, 4, e.Garrison(1))

	t.Run("drop on a far territory does nothing", func(t *testing.T) {
		e.DragStart(1)
		x, y := center(3)
		e.DragEnd(x, y, 1)

		require.Equal(t, 4, e.Garrison(1))
		require.Equal(t, second, e.Owner(3))
		require.Equal(t, 0, dice.next)
	})

	t.Run("drop outside the board does nothing", func(t *testing.T) {
		e.DragStart(1)
		e.DragEnd(-50, -50, 1)

		require.Equal(t, 4, e.Garrison(1))
	})

	t.Run("drop on an enemy neighbour attacks", func(t *testing.T) {
		e.DragStart(1)
		require.True(t, e.Dragging())
		require.Equal(t, game.TerritoryID(1), e.Selected())
		x, y := center(2)
		e.DragEnd(x, y, 1)

		require.Equal(t, first, e.Owner(2))
		require.Equal(t, 3, e.Garrison(2))
		require.Equal(t, 1, e.Garrison(1))
		require.Equal(t, MoveAndAttackPhase, e.Phase())
		require.Nil(t, e.Winner())
	})

	t.Run("drop on an own neighbour moves", func(t *testing.T) {
		e.DragStart(2)
		x, y := center(1)
		e.DragEnd(x, y, 2)

		require.Equal(t, 1, e.Garrison(2))
		require.Equal(t, 3, e.Garrison(1))
	})

	t.Run("attack from a single army is ignored", func(t *testing.T) {
		before := e.Hash()

		e.Drop(2, 3)

		require.Equal(t, before, e.Hash())
		require.Equal(t, MoveAndAttackPhase, e.Phase())
	})

	t.Run("e ends the round and hands over the turn", func(t *testing.T) {
		e.Key('e')

		require.Equal(t, 1, e.Round())
		require.Equal(t, second, e.CurrentPlayer().ID)
		require.Equal(t, ArmyPlacementPhase, e.Phase())
		require.Equal(t, 0, e.Armies(second))
	})
}

func TestWin(t *testing.T) {
	conquer := func(e *Engine) {
		e.Select(0)
		e.Select(1)
		e.Select(0)
		e.Select(0)
		e.Select(0)
		e.Drop(0, 1)
	}

	t.Run("default handler stops the engine", func(t *testing.T) {
		e, first, _ := bonusGame(t, 2, &scriptedDice{values: []int{5, 0, 0, 0}})

		conquer(e)

		require.True(t, e.Stopped())
		require.Equal(t, first, e.Winner().ID)
		require.Equal(t, 2, e.Player(first).TerritoryCount())

		e.Key('e')
		require.Equal(t, MoveAndAttackPhase, e.Phase(), "A stopped engine ignores events")
	})

	t.Run("handler may start a new game", func(t *testing.T) {
		var won *game.Player
		e, first, second := bonusGame(t, 2, &scriptedDice{values: []int{5, 0, 0, 0}},
			WithWinHandler(func(p *game.Player) bool {
				won = p
				return true
			}))

		conquer(e)

		require.False(t, e.Stopped())
		require.Equal(t, first, won.ID)
		require.Equal(t, AcquisitionPhase, e.Phase())
		require.Equal(t, 2, e.Games())
		require.Equal(t, 0, e.Round())
		require.Equal(t, first, e.CurrentPlayer().ID)
		require.Equal(t, 0, e.Player(first).TerritoryCount())
		require.Equal(t, 0, e.Player(second).TerritoryCount())
		require.Len(t, e.Registry().FreeTerritories(), 2)
	})
}

func TestEliminatedPlayerIsSkipped(t *testing.T) {
	m := lineMap(t, 3)
	require.NoError(t, m.AddRegion("West", 3, 0))
	e := newEngine(m, WithRand(&scriptedDice{values: []int{5, 0, 0, 0}}))
	first := e.AddPlayer("Player", false)
	second := e.AddPlayer("Player2", false)
	third := e.AddPlayer("Player3", false)
	require.NoError(t, e.Start())
	e.Select(0)
	e.Select(1)
	e.Select(2)
	e.Select(0)
	e.Select(0)
	e.Select(0)
	e.Drop(0, 1)
	require.Equal(t, 0, e.Player(second).TerritoryCount())
	require.Equal(t, first, e.Owner(1))

	e.EndTurn()

	require.Equal(t, third, e.CurrentPlayer().ID, "A player without territories loses their turn")
	require.Equal(t, 1, e.Round())
}
