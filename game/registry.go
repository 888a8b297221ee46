package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"conquest/meta"
)

// Registry is the only place that changes ownership, garrisons and turn order.
type Registry struct {
	board     *Map
	rules     Rules
	players   []*Player  // Turn order
	owners    []PlayerID // Owner per territory, indexed by territory ID (NoPlayer if free)
	garrisons []int      // Armies per territory, indexed by territory ID
}

// AttackResult describes one attack, whether or not it conquered.
type AttackResult struct {
	Battle
	Attacking int
	Defending int
	Defender  PlayerID
	Conquered bool
}

// NewRegistry initializes and returns a Registry with every territory free.
func NewRegistry(m *Map, rules Rules) *Registry {
	if rules == nil {
		rules = NewStandardRules()
	}
	r := &Registry{
		board:     m,
		rules:     rules,
		owners:    make([]PlayerID, m.Len()),
		garrisons: make([]int, m.Len()),
	}
	for i := range r.owners {
		r.owners[i] = NoPlayer
	}
	return r
}

func (r *Registry) Map() *Map {
	return r.board
}

func (r *Registry) Rules() Rules {
	return r.rules
}

// CreatePlayer appends an inactive player with nothing to its name.
func (r *Registry) CreatePlayer(name string, isAI bool) PlayerID {
	id := PlayerID(len(r.players))
	r.players = append(r.players, newPlayer(id, name, isAI))
	return id
}

// Player returns nil for an unknown ID.
func (r *Registry) Player(id PlayerID) *Player {
	if id < 0 || int(id) >= len(r.players) {
		return nil
	}
	return r.players[id]
}

func (r *Registry) Players() []*Player {
	players := make([]*Player, len(r.players))
	copy(players, r.players)
	return players
}

// Begin makes p the only active player.
func (r *Registry) Begin(p PlayerID) error {
	if r.Player(p) == nil {
		return fmt.Errorf("cannot begin with player %d: %w", p, ErrUnknownPlayer)
	}
	for _, pl := range r.players {
		pl.active = pl.ID == p
	}
	return nil
}

func (r *Registry) IsFree(t TerritoryID) bool {
	return r.Owner(t) == NoPlayer
}

// Owner returns NoPlayer for a free or unknown territory.
func (r *Registry) Owner(t TerritoryID) PlayerID {
	if !r.board.valid(t) {
		return NoPlayer
	}
	return r.owners[t]
}

func (r *Registry) Garrison(t TerritoryID) int {
	if !r.board.valid(t) {
		return 0
	}
	return r.garrisons[t]
}

// FreeTerritories lists unowned territories in ID order.
func (r *Registry) FreeTerritories() []TerritoryID {
	free := []TerritoryID{}
	for t, owner := range r.owners {
		if owner == NoPlayer {
			free = append(free, TerritoryID(t))
		}
	}
	return free
}

// OwnedCount sums the territory counts of all players.
func (r *Registry) OwnedCount() int {
	count := 0
	for _, p := range r.players {
		count += p.TerritoryCount()
	}
	return count
}

// AssignTerritory gives a free territory to p with a garrison of one.
func (r *Registry) AssignTerritory(p PlayerID, t TerritoryID) error {
	player := r.Player(p)
	if player == nil {
		return fmt.Errorf("cannot assign territory %d: %w", t, ErrUnknownPlayer)
	}
	if !r.board.valid(t) {
		return fmt.Errorf("cannot assign territory %d: %w", t, ErrUnknownTerritory)
	}
	if r.owners[t] != NoPlayer {
		return fmt.Errorf("cannot assign territory %q to %s: %w", r.board.Territories[t].Name, player.Name, ErrTerritoryUnavailable)
	}
	r.owners[t] = p
	r.setGarrison(t, 1)
	return nil
}

// RemoveTerritory frees t if p owns it and does nothing otherwise.
func (r *Registry) RemoveTerritory(p PlayerID, t TerritoryID) {
	player := r.Player(p)
	if player == nil || !player.Owns(t) {
		return
	}
	delete(player.owned, t)
	r.owners[t] = NoPlayer
	r.garrisons[t] = 0
}

// setGarrison keeps the territory slice and the owner's map in step.
func (r *Registry) setGarrison(t TerritoryID, n int) {
	r.garrisons[t] = n
	if owner := r.owners[t]; owner != NoPlayer {
		r.players[owner].owned[t] = n
	}
}

// RegionControlledBy reports whether p owns every territory of the region.
func (r *Registry) RegionControlledBy(region *Region, p PlayerID) bool {
	if len(region.Territories) == 0 {
		return false
	}
	for _, t := range region.Territories {
		if r.Owner(t) != p {
			return false
		}
	}
	return true
}

// RegionOwner returns NoPlayer while the region is split or unclaimed.
func (r *Registry) RegionOwner(region *Region) PlayerID {
	if len(region.Territories) == 0 {
		return NoPlayer
	}
	owner := r.Owner(region.Territories[0])
	if owner == NoPlayer || !r.RegionControlledBy(region, owner) {
		return NoPlayer
	}
	return owner
}

// ComputeReinforcements is one army per three territories plus the bonus of
// every region p controls. There is no minimum.
func (r *Registry) ComputeReinforcements(p PlayerID, regions []*Region) int {
	player := r.Player(p)
	if player == nil {
		return 0
	}
	armies := player.TerritoryCount() / meta.TERRITORIES_PER_ARMY
	for _, region := range regions {
		if r.RegionControlledBy(region, p) {
			armies += region.Bonus
		}
	}
	return armies
}

// AddReinforcements grows the pool of p and returns the amount added.
func (r *Registry) AddReinforcements(p PlayerID) int {
	player := r.Player(p)
	if player == nil {
		return 0
	}
	armies := r.ComputeReinforcements(p, r.board.Regions)
	player.armies += armies
	return armies
}

// PlaceArmy moves one army from the pool of p onto t.
func (r *Registry) PlaceArmy(p PlayerID, t TerritoryID) error {
	player := r.Player(p)
	if player == nil {
		return fmt.Errorf("cannot place army: %w", ErrUnknownPlayer)
	}
	if !player.Owns(t) {
		return fmt.Errorf("cannot place army on %d: %w", t, ErrNotOwned)
	}
	if player.armies <= 0 {
		return fmt.Errorf("cannot place army: %w", ErrNoReinforcementsLeft)
	}
	r.setGarrison(t, r.garrisons[t]+1)
	player.armies--
	return nil
}

// MoveArmies moves everything but one army from one owned territory to
// another and returns how many moved.
func (r *Registry) MoveArmies(p PlayerID, from, to TerritoryID) int {
	player := r.Player(p)
	if player == nil || from == to || !player.Owns(from) || !player.Owns(to) {
		return 0
	}
	moving := r.garrisons[from] - 1
	if moving <= 0 {
		return 0
	}
	r.setGarrison(from, 1)
	r.setGarrison(to, r.garrisons[to]+moving)
	return moving
}

// AttackingArmiesAvailable is what t can commit to an attack; one army always stays.
func (r *Registry) AttackingArmiesAvailable(p PlayerID, t TerritoryID) int {
	player := r.Player(p)
	if player == nil || !player.Owns(t) {
		return 0
	}
	g := r.garrisons[t]
	if g <= 1 {
		return 0
	}
	return min(g-1, r.rules.MaxAttackArmies())
}

func (r *Registry) DefendingArmiesAvailable(p PlayerID, t TerritoryID) int {
	player := r.Player(p)
	if player == nil || !player.Owns(t) {
		return 0
	}
	return min(r.garrisons[t], r.rules.MaxDefendArmies())
}

// Attack runs one exchange of dice from one territory of p into an enemy
// neighbour. When the defender is wiped out, the surviving attackers occupy it.
func (r *Registry) Attack(p PlayerID, from, to TerritoryID, dice Dice) (AttackResult, error) {
	player := r.Player(p)
	if player == nil {
		return AttackResult{}, fmt.Errorf("cannot attack: %w", ErrUnknownPlayer)
	}
	if !r.board.valid(from) || !r.board.valid(to) {
		return AttackResult{}, fmt.Errorf("cannot attack: %w", ErrUnknownTerritory)
	}
	if !player.Owns(from) {
		return AttackResult{}, fmt.Errorf("cannot attack from %d: %w", from, ErrNotOwned)
	}
	if player.Owns(to) {
		return AttackResult{}, fmt.Errorf("cannot attack %d: %w", to, ErrAttackOwnCountry)
	}
	defender := r.owners[to]
	if defender == NoPlayer {
		return AttackResult{}, fmt.Errorf("cannot attack %d: %w", to, ErrTerritoryFree)
	}
	if !r.board.AreAdjacent(from, to) {
		return AttackResult{}, fmt.Errorf("cannot attack %d from %d: %w", to, from, ErrNotAdjacent)
	}
	attacking := r.AttackingArmiesAvailable(p, from)
	if attacking == 0 {
		return AttackResult{}, fmt.Errorf("cannot attack from %d: %w", from, ErrNotEnoughArmies)
	}
	defending := r.DefendingArmiesAvailable(defender, to)

	battle := ResolveAttackRolls(r.rules, attacking, defending, dice)
	surviving := attacking - battle.AttackerLosses
	remaining := r.garrisons[to] - battle.DefenderLosses
	if surviving < 0 || remaining < 0 || (remaining == 0 && surviving == 0) {
		return AttackResult{}, fmt.Errorf("%w: battle %+v from %d armies against %d", ErrInvariantViolation, battle, attacking, defending)
	}

	result := AttackResult{
		Battle:    battle,
		Attacking: attacking,
		Defending: defending,
		Defender:  defender,
	}
	left := r.garrisons[from] - attacking
	if remaining > 0 {
		r.setGarrison(to, remaining)
		r.setGarrison(from, left+surviving)
		return result, nil
	}

	// Conquest
	r.RemoveTerritory(defender, to)
	r.owners[to] = p
	r.setGarrison(to, surviving)
	r.setGarrison(from, left)
	result.Conquered = true
	return result, nil
}

func (r *Registry) activeIndex() (int, error) {
	index, count := -1, 0
	for i, p := range r.players {
		if p.active {
			index = i
			count++
		}
	}
	if count != 1 {
		return -1, fmt.Errorf("%w: %d active players", ErrInvariantViolation, count)
	}
	return index, nil
}

// CurrentPlayer returns the single active player.
func (r *Registry) CurrentPlayer() (*Player, error) {
	i, err := r.activeIndex()
	if err != nil {
		return nil, err
	}
	return r.players[i], nil
}

// AdvanceTurn hands the turn to the next player in creation order.
func (r *Registry) AdvanceTurn() error {
	i, err := r.activeIndex()
	if err != nil {
		return fmt.Errorf("cannot advance turn: %w", err)
	}
	r.players[i].active = false
	r.players[(i+1)%len(r.players)].active = true
	return nil
}

// Reset frees every territory and empties every pool, keeping the players.
func (r *Registry) Reset() {
	for _, p := range r.players {
		p.owned = make(map[TerritoryID]int)
		p.armies = 0
		p.active = false
	}
	for i := range r.owners {
		r.owners[i] = NoPlayer
		r.garrisons[i] = 0
	}
}

// Validate checks that the players' maps and the territory slices agree.
func (r *Registry) Validate() error {
	for t, owner := range r.owners {
		id := TerritoryID(t)
		if owner == NoPlayer {
			if r.garrisons[t] != 0 {
				return fmt.Errorf("%w: free territory %d has %d armies", ErrInvariantViolation, t, r.garrisons[t])
			}
			for _, p := range r.players {
				if p.Owns(id) {
					return fmt.Errorf("%w: free territory %d held by %s", ErrInvariantViolation, t, p.Name)
				}
			}
			continue
		}
		for _, p := range r.players {
			if p.ID != owner && p.Owns(id) {
				return fmt.Errorf("%w: territory %d held by %s and %s", ErrInvariantViolation, t, r.players[owner].Name, p.Name)
			}
		}
		g, ok := r.players[owner].owned[id]
		if !ok || g != r.garrisons[t] {
			return fmt.Errorf("%w: territory %d garrison %d, %s records %d", ErrInvariantViolation, t, r.garrisons[t], r.players[owner].Name, g)
		}
		if g < 1 {
			return fmt.Errorf("%w: territory %d held with %d armies", ErrInvariantViolation, t, g)
		}
	}
	active := 0
	for _, p := range r.players {
		if p.active {
			active++
		}
		for t := range p.owned {
			if !r.board.valid(t) || r.owners[t] != p.ID {
				return fmt.Errorf("%w: %s records territory %d it does not own", ErrInvariantViolation, p.Name, t)
			}
		}
	}
	if active > 1 {
		return fmt.Errorf("%w: %d active players", ErrInvariantViolation, active)
	}
	return nil
}

// Hash fingerprints the occupation state.
func (r *Registry) Hash() StateHash {
	hasher := fnv.New64a()

	for t := range r.owners {
		binary.Write(hasher, binary.LittleEndian, int64(r.owners[t]))
		binary.Write(hasher, binary.LittleEndian, int64(r.garrisons[t]))
	}

	for _, p := range r.players {
		binary.Write(hasher, binary.LittleEndian, int64(p.armies))
		binary.Write(hasher, binary.LittleEndian, p.active)
	}

	return StateHash(hasher.Sum64())
}
