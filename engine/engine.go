package engine

import (
	"errors"
	"fmt"
	"time"

	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/meta"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNotEnoughPlayers = errors.New("need at least two players")

// WinHandler is told who won. Returning true starts a new game with the same
// players, false stops the engine.
type WinHandler func(winner *game.Player) bool

// Update is sent to the listener after every change the UI should redraw.
type Update struct {
	Event  string
	Phase  Phase
	Player game.PlayerID
	Hash   game.StateHash
}

type Option func(e *Engine)

// Engine runs one game at a time. It is not safe for concurrent use; see
// gamemaster.Host for that.
type Engine struct {
	id        string
	board     *game.Map
	registry  *game.Registry
	dice      game.Dice
	logger    zerolog.Logger
	metrics   metrics.Collector
	onWin     WinHandler
	listener  func(Update)
	maxRounds int
	checks    bool

	phase    Phase
	next     *Phase // Pending transition, drained by run
	selected game.TerritoryID
	dragging bool
	round    int
	games    int
	winner   game.PlayerID
	stopped  bool
	started  bool
}

func WithRand(dice game.Dice) Option {
	return func(e *Engine) {
		if dice != nil {
			e.dice = dice
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.dice = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithWinHandler(onWin WinHandler) Option {
	return func(e *Engine) {
		if onWin != nil {
			e.onWin = onWin
		}
	}
}

// WithMaxRounds stops the engine after the given number of rounds. 0 never stops.
func WithMaxRounds(rounds int) Option {
	return func(e *Engine) {
		if rounds >= 0 {
			e.maxRounds = rounds
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

func WithListener(listener func(Update)) Option {
	return func(e *Engine) {
		e.listener = listener
	}
}

// WithInvariantChecks validates the registry after every event.
func WithInvariantChecks() Option {
	return func(e *Engine) {
		e.checks = true
	}
}

func New(board *game.Map, rules game.Rules, options ...Option) *Engine {
	id := uuid.NewString()
	e := &Engine{ // Default values
		id:        id,
		board:     board,
		registry:  game.NewRegistry(board, rules),
		dice:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:    log.Logger,
		metrics:   metrics.NewDummyCollector(),
		onWin:     func(*game.Player) bool { return false },
		maxRounds: meta.MAX_ROUNDS,
		phase:     AcquisitionPhase,
		selected:  game.NoTerritory,
		winner:    game.NoPlayer,
	}
	for _, option := range options {
		option(e)
	}
	e.logger = e.logger.With().Str("game", id).Logger()
	return e
}

// AddPlayer registers a player before Start. Turn order is the order of calls.
func (e *Engine) AddPlayer(name string, isAI bool) game.PlayerID {
	return e.registry.CreatePlayer(name, isAI)
}

// Start activates the first player and enters acquisition. AI players act
// before Start returns.
func (e *Engine) Start() error {
	if len(e.registry.Players()) < 2 {
		return fmt.Errorf("cannot start game: %w", ErrNotEnoughPlayers)
	}
	if err := e.board.Validate(); err != nil {
		return fmt.Errorf("cannot start game: %w", err)
	}
	e.started = true
	e.newGame()
	e.run()
	return nil
}

// Stop makes every later event a no-op.
func (e *Engine) Stop() {
	e.stopped = true
}

func (e *Engine) newGame() {
	e.registry.Reset()
	if err := e.registry.Begin(0); err != nil {
		e.invariant(err)
	}
	e.round = 0
	e.selected = game.NoTerritory
	e.dragging = false
	e.games++
	e.metrics.Start(e.id, len(e.registry.Players()))
	e.logger.Info().Msgf("game %d started with %d players on %d territories", e.games, len(e.registry.Players()), e.board.Len())
	e.transition(AcquisitionPhase)
}

func (e *Engine) transition(p Phase) {
	e.next = &p
}

// run drains pending transitions. Entry actions may queue the next one, so
// chains of AI turns run in this loop instead of recursing.
func (e *Engine) run() {
	for e.next != nil && !e.stopped {
		p := *e.next
		e.next = nil
		e.phase = p
		e.logger.Debug().Str("phase", p.String()).Msgf("entering phase, round %d", e.round)
		e.emit("phase")
		switch p {
		case AcquisitionPhase:
			e.enterAcquisition()
		case ArmyPlacementPhase:
			e.enterArmyPlacement()
		case MoveAndAttackPhase:
			e.enterMoveAndAttack()
		case EndRoundPhase:
			e.enterEndRound()
		default:
			panic(fmt.Sprintf("unknown phase %d", p))
		}
	}
	e.verify()
}

func (e *Engine) current() *game.Player {
	p, err := e.registry.CurrentPlayer()
	if err != nil {
		e.invariant(err)
	}
	return p
}

func (e *Engine) invariant(err error) {
	panic(fmt.Sprintf("game %s in phase %s round %d: %v", e.id, e.phase, e.round, err))
}

func (e *Engine) verify() {
	if !e.checks {
		return
	}
	if err := e.registry.Validate(); err != nil {
		e.invariant(err)
	}
}

func (e *Engine) emit(event string) {
	if e.listener == nil {
		return
	}
	player := game.NoPlayer
	if p, err := e.registry.CurrentPlayer(); err == nil {
		player = p.ID
	}
	e.listener(Update{Event: event, Phase: e.phase, Player: player, Hash: e.Hash()})
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Map() *game.Map {
	return e.board
}

func (e *Engine) Phase() Phase {
	return e.phase
}

// CurrentPlayer returns nil before Start.
func (e *Engine) CurrentPlayer() *game.Player {
	p, err := e.registry.CurrentPlayer()
	if err != nil {
		return nil
	}
	return p
}

func (e *Engine) Players() []*game.Player {
	return e.registry.Players()
}

func (e *Engine) Player(id game.PlayerID) *game.Player {
	return e.registry.Player(id)
}

func (e *Engine) Owner(t game.TerritoryID) game.PlayerID {
	return e.registry.Owner(t)
}

func (e *Engine) Garrison(t game.TerritoryID) int {
	return e.registry.Garrison(t)
}

// Armies returns the reinforcement pool of p.
func (e *Engine) Armies(p game.PlayerID) int {
	if pl := e.registry.Player(p); pl != nil {
		return pl.Armies()
	}
	return 0
}

func (e *Engine) Selected() game.TerritoryID {
	return e.selected
}

func (e *Engine) Dragging() bool {
	return e.dragging
}

// Round counts completed rounds of the current game.
func (e *Engine) Round() int {
	return e.round
}

// Games counts games started, including the current one.
func (e *Engine) Games() int {
	return e.games
}

// Winner returns the last winner, or nil if nobody has won yet.
func (e *Engine) Winner() *game.Player {
	return e.registry.Player(e.winner)
}

func (e *Engine) Stopped() bool {
	return e.stopped
}

func (e *Engine) Registry() *game.Registry {
	return e.registry
}

// Metrics completes the collector with the current winner.
func (e *Engine) Metrics() metrics.GameMetric {
	winner := ""
	if w := e.Winner(); w != nil {
		winner = w.Name
	}
	return e.metrics.Complete(winner)
}
