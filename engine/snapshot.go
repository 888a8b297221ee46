package engine

import (
	"encoding/binary"
	"hash/fnv"

	"conquest/game"
)

type PlayerView struct {
	ID          game.PlayerID `json:"id"`
	Name        string        `json:"name"`
	Color       game.Color    `json:"color"`
	AI          bool          `json:"ai"`
	Active      bool          `json:"active"`
	Armies      int           `json:"armies"`
	Territories int           `json:"territories"`
}

type TerritoryView struct {
	ID       game.TerritoryID `json:"id"`
	Name     string           `json:"name"`
	Owner    game.PlayerID    `json:"owner"`
	Garrison int              `json:"garrison"`
}

// Snapshot is a read-only copy of everything a UI needs to redraw.
type Snapshot struct {
	Game        string          `json:"game"`
	Phase       Phase           `json:"phase"`
	Round       int             `json:"round"`
	Current     game.PlayerID   `json:"current"`
	Winner      game.PlayerID   `json:"winner"`
	Stopped     bool            `json:"stopped"`
	Players     []PlayerView    `json:"players"`
	Territories []TerritoryView `json:"territories"`
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Game:    e.id,
		Phase:   e.phase,
		Round:   e.round,
		Current: game.NoPlayer,
		Winner:  e.winner,
		Stopped: e.stopped,
	}
	if p := e.CurrentPlayer(); p != nil {
		s.Current = p.ID
	}
	for _, p := range e.registry.Players() {
		s.Players = append(s.Players, PlayerView{
			ID:          p.ID,
			Name:        p.Name,
			Color:       p.Color,
			AI:          p.IsAI,
			Active:      p.Active(),
			Armies:      p.Armies(),
			Territories: p.TerritoryCount(),
		})
	}
	for _, t := range e.board.Territories {
		s.Territories = append(s.Territories, TerritoryView{
			ID:       t.ID,
			Name:     t.Name,
			Owner:    e.registry.Owner(t.ID),
			Garrison: e.registry.Garrison(t.ID),
		})
	}
	return s
}

// Hash fingerprints the phase, the round and the occupation state.
func (e *Engine) Hash() game.StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(e.phase))
	binary.Write(hasher, binary.LittleEndian, int64(e.round))
	binary.Write(hasher, binary.LittleEndian, uint64(e.registry.Hash()))

	return game.StateHash(hasher.Sum64())
}
