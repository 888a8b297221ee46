package metrics

import (
	"sync/atomic"
	"time"
)

type GameMetric struct {
	GameID     string
	Players    int
	Winner     string // Player name, "" if nobody won
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Rounds     int
	Attacks    int
	Conquests  int
	Moves      int
	Placements int
	Claims     int // Territories taken during acquisition
}

type Collector interface {
	Start(gameID string, players int)
	AddClaim()
	AddPlacement()
	AddMove()
	AddAttack(conquered bool)
	AddRound()
	Complete(winner string) GameMetric
}

type collector struct {
	gameID     string
	players    int
	startTime  time.Time
	claims     atomic.Int32
	placements atomic.Int32
	moves      atomic.Int32
	attacks    atomic.Int32
	conquests  atomic.Int32
	rounds     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start clears the counters for a new game.
func (m *collector) Start(gameID string, players int) {
	m.gameID = gameID
	m.players = players
	m.startTime = time.Now()
	m.claims.Store(0)
	m.placements.Store(0)
	m.moves.Store(0)
	m.attacks.Store(0)
	m.conquests.Store(0)
	m.rounds.Store(0)
}

func (m *collector) AddClaim() {
	m.claims.Add(1)
}

func (m *collector) AddPlacement() {
	m.placements.Add(1)
}

func (m *collector) AddMove() {
	m.moves.Add(1)
}

func (m *collector) AddAttack(conquered bool) {
	m.attacks.Add(1)
	if conquered {
		m.conquests.Add(1)
	}
}

func (m *collector) AddRound() {
	m.rounds.Add(1)
}

func (m *collector) Complete(winner string) GameMetric {
	end := time.Now()
	return GameMetric{
		GameID:     m.gameID,
		Players:    m.players,
		Winner:     winner,
		StartTime:  m.startTime,
		EndTime:    end,
		Duration:   end.Sub(m.startTime),
		Rounds:     int(m.rounds.Load()),
		Attacks:    int(m.attacks.Load()),
		Conquests:  int(m.conquests.Load()),
		Moves:      int(m.moves.Load()),
		Placements: int(m.placements.Load()),
		Claims:     int(m.claims.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(gameID string, players int)  {}
func (m *dummyCollector) AddClaim()                         {}
func (m *dummyCollector) AddPlacement()                     {}
func (m *dummyCollector) AddMove()                          {}
func (m *dummyCollector) AddAttack(conquered bool)          {}
func (m *dummyCollector) AddRound()                         {}
func (m *dummyCollector) Complete(winner string) GameMetric { return GameMetric{} }
