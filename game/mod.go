package game

// TerritoryID indexes a territory in its Map.
type TerritoryID int

// PlayerID indexes a player in its Registry, in turn order.
type PlayerID int

const (
	NoTerritory TerritoryID = -1
	NoPlayer    PlayerID    = -1
)

// Dice is the only source of randomness in the game. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Dice interface {
	Intn(n int) int
}

type StateHash uint64
