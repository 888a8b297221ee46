package game

import (
	"fmt"

	"conquest/utils"
)

type Territory struct {
	ID        TerritoryID   // Index of the territory in Map.Territories
	Name      string        // Unique name
	Neighbors []TerritoryID // IDs of adjacent territories
	Capital   Point         // Where the garrison is drawn
	Patches   []Polygon     // Outline, possibly in several pieces
}

// Region awards its Bonus to a player holding all of its territories.
type Region struct {
	Name        string
	Territories []TerritoryID
	Bonus       int
}

// Map is the static topology of a game. Occupation lives in the Registry.
type Map struct {
	Territories []*Territory
	Regions     []*Region
	byName      map[string]TerritoryID
}

// NewMap creates and returns an empty Map.
func NewMap() *Map {
	return &Map{
		byName: make(map[string]TerritoryID),
	}
}

// AddTerritory appends a territory and returns its ID.
func (m *Map) AddTerritory(name string, capital Point, patches ...Polygon) (TerritoryID, error) {
	if _, ok := m.byName[name]; ok {
		return NoTerritory, fmt.Errorf("%w: %q", ErrDuplicateTerritory, name)
	}
	id := TerritoryID(len(m.Territories))
	m.Territories = append(m.Territories, &Territory{
		ID:        id,
		Name:      name,
		Neighbors: []TerritoryID{},
		Capital:   capital,
		Patches:   patches,
	})
	m.byName[name] = id
	return id, nil
}

// AddPatch adds an outline piece to an existing territory.
func (m *Map) AddPatch(t TerritoryID, patch Polygon) {
	m.Territories[t].Patches = append(m.Territories[t].Patches, patch)
}

// AddBorder adds a bidirectional border between two territories.
func (m *Map) AddBorder(a, b TerritoryID) error {
	if !m.valid(a) || !m.valid(b) {
		return fmt.Errorf("cannot add border %d-%d: %w", a, b, ErrUnknownTerritory)
	}
	if a == b {
		return fmt.Errorf("cannot add border %d-%d: %w", a, b, ErrInvalidMap)
	}
	m.addEdge(a, b)
	m.addEdge(b, a)
	return nil
}

// AddNeighbor adds a one-way edge, as raw map files do. RepairAdjacency mirrors it later.
func (m *Map) AddNeighbor(from, to TerritoryID) error {
	if !m.valid(from) || !m.valid(to) {
		return fmt.Errorf("cannot add neighbor %d->%d: %w", from, to, ErrUnknownTerritory)
	}
	if from == to {
		return fmt.Errorf("cannot add neighbor %d->%d: %w", from, to, ErrInvalidMap)
	}
	m.addEdge(from, to)
	return nil
}

func (m *Map) addEdge(from, to TerritoryID) bool {
	if utils.FindIndex(m.Territories[from].Neighbors, to) >= 0 {
		return false
	}
	m.Territories[from].Neighbors = append(m.Territories[from].Neighbors, to)
	return true
}

// RepairAdjacency mirrors every missing back-edge and returns how many were added.
func (m *Map) RepairAdjacency() int {
	added := 0
	for _, t := range m.Territories {
		for _, n := range t.Neighbors {
			if m.addEdge(n, t.ID) {
				added++
			}
		}
	}
	return added
}

// AddRegion groups territories into a region worth bonus armies.
func (m *Map) AddRegion(name string, bonus int, territories ...TerritoryID) error {
	if bonus <= 0 {
		return fmt.Errorf("region %q: %w", name, ErrInvalidBonus)
	}
	for _, t := range territories {
		if !m.valid(t) {
			return fmt.Errorf("region %q: %w: %d", name, ErrUnknownTerritory, t)
		}
	}
	ids := make([]TerritoryID, len(territories))
	copy(ids, territories)
	m.Regions = append(m.Regions, &Region{Name: name, Territories: ids, Bonus: bonus})
	return nil
}

func (m *Map) valid(t TerritoryID) bool {
	return t >= 0 && int(t) < len(m.Territories)
}

// Len returns the number of territories.
func (m *Map) Len() int {
	return len(m.Territories)
}

func (m *Map) Territory(t TerritoryID) *Territory {
	if !m.valid(t) {
		return nil
	}
	return m.Territories[t]
}

// Lookup finds a territory by name.
func (m *Map) Lookup(name string) (TerritoryID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

func (m *Map) Neighbors(t TerritoryID) []TerritoryID {
	if !m.valid(t) {
		return nil
	}
	return m.Territories[t].Neighbors
}

// AreAdjacent checks if two territories share a border.
func (m *Map) AreAdjacent(a, b TerritoryID) bool {
	if !m.valid(a) || !m.valid(b) {
		return false
	}
	return utils.FindIndex(m.Territories[a].Neighbors, b) >= 0
}

// TerritoryAt resolves a point to the territory drawn there. Patches of later
// territories are drawn on top. A point exactly on a capital also counts.
func (m *Map) TerritoryAt(x, y float64) (TerritoryID, bool) {
	for i := len(m.Territories) - 1; i >= 0; i-- {
		for _, patch := range m.Territories[i].Patches {
			if patch.Contains(x, y) {
				return TerritoryID(i), true
			}
		}
	}
	for _, t := range m.Territories {
		if t.Capital.X == x && t.Capital.Y == y {
			return t.ID, true
		}
	}
	return NoTerritory, false
}

// Validate checks the topology before a game starts.
func (m *Map) Validate() error {
	if len(m.Territories) == 0 {
		return fmt.Errorf("%w: no territories", ErrInvalidMap)
	}
	for _, t := range m.Territories {
		for _, n := range t.Neighbors {
			if n == t.ID {
				return fmt.Errorf("%w: %q borders itself", ErrInvalidMap, t.Name)
			}
			if !m.AreAdjacent(n, t.ID) {
				return fmt.Errorf("%w: border %q-%q is one-way", ErrInvalidMap, t.Name, m.Territories[n].Name)
			}
		}
	}
	for _, r := range m.Regions {
		if r.Bonus <= 0 {
			return fmt.Errorf("region %q: %w", r.Name, ErrInvalidBonus)
		}
		if len(r.Territories) == 0 {
			return fmt.Errorf("%w: region %q is empty", ErrInvalidMap, r.Name)
		}
	}
	return nil
}
