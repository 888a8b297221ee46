package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts events", func(t *testing.T) {
		c := NewCollector()
		c.Start("game-1", 3)
		c.AddClaim()
		c.AddClaim()
		c.AddPlacement()
		c.AddMove()
		c.AddAttack(false)
		c.AddAttack(true)
		c.AddRound()

		m := c.Complete("Ai1")

		require.Equal(t, "game-1", m.GameID)
		require.Equal(t, 3, m.Players)
		require.Equal(t, "Ai1", m.Winner)
		require.Equal(t, 2, m.Claims)
		require.Equal(t, 1, m.Placements)
		require.Equal(t, 1, m.Moves)
		require.Equal(t, 2, m.Attacks)
		require.Equal(t, 1, m.Conquests)
		require.Equal(t, 1, m.Rounds)
		require.False(t, m.EndTime.Before(m.StartTime))
	})

	t.Run("start clears counters", func(t *testing.T) {
		c := NewCollector()
		c.Start("a", 2)
		c.AddAttack(true)
		c.Start("b", 2)

		m := c.Complete("")

		require.Equal(t, "b", m.GameID)
		require.Zero(t, m.Attacks)
		require.Zero(t, m.Conquests)
	})

	t.Run("dummy records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start("a", 2)
		c.AddRound()

		require.Equal(t, GameMetric{}, c.Complete("x"))
	})
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "run")
	require.NoError(t, err)

	records := []GameRecord{
		{ID: 1, Seed: 7, GameMetric: GameMetric{GameID: "g1", Players: 2, Winner: "Ai1", Rounds: 12}},
		{ID: 2, Seed: 8, GameMetric: GameMetric{GameID: "g2", Players: 2, Rounds: 300}},
	}
	require.NoError(t, w.WriteGameRecords(records))

	f, err := os.Open(filepath.Join(w.Dir(), "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	require.Equal(t, []string{"1", "g1", "7", "2", "Ai1", "12"}, rows[1][:6])
	require.Equal(t, "", rows[2][4], "Unfinished game has no winner")
}
