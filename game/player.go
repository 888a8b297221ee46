package game

import "conquest/utils"

type Color string

// Palette hands out colours in creation order; the first player is usually the human.
var Palette = []Color{"blue", "grey", "red", "green", "yellow", "purple"}

type Player struct {
	ID     PlayerID
	Name   string
	Color  Color
	IsAI   bool
	active bool
	armies int                 // Reinforcements not yet placed
	owned  map[TerritoryID]int // Garrison per owned territory, mirrors the Registry
}

func newPlayer(id PlayerID, name string, isAI bool) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Color: Palette[int(id)%len(Palette)],
		IsAI:  isAI,
		owned: make(map[TerritoryID]int),
	}
}

func (p *Player) Active() bool {
	return p.active
}

// Armies returns the reinforcement pool.
func (p *Player) Armies() int {
	return p.armies
}

func (p *Player) Owns(t TerritoryID) bool {
	_, ok := p.owned[t]
	return ok
}

// Garrison returns the armies on t, or 0 when p does not own it.
func (p *Player) Garrison(t TerritoryID) int {
	return p.owned[t]
}

func (p *Player) TerritoryCount() int {
	return len(p.owned)
}

// Territories returns the owned territory IDs in ascending order.
func (p *Player) Territories() []TerritoryID {
	return utils.SortedKeys(p.owned)
}

func (p *Player) String() string {
	return p.Name
}
