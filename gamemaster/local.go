package gamemaster

import (
	"sync"

	"conquest/engine"
	"conquest/game"
)

type UpdateGetter func() (engine.Update, bool)

// Host serializes access to one engine so several goroutines (UI, network
// handlers) can drive the same game.
type Host struct {
	mu       sync.Mutex
	engine   *engine.Engine
	updateCh chan engine.Update
}

// NewHost wraps an engine built with New. bufferSize bounds the updates kept
// for slow readers; older updates are dropped once it is full.
func NewHost(build func(listener func(engine.Update)) *engine.Engine, bufferSize int) *Host {
	if bufferSize < 1 {
		bufferSize = 1
	}
	h := &Host{updateCh: make(chan engine.Update, bufferSize)}
	h.engine = build(h.publish)
	return h
}

func (h *Host) publish(u engine.Update) {
	select {
	case h.updateCh <- u:
	default:
		// Drop the oldest update to make room.
		select {
		case <-h.updateCh:
		default:
		}
		select {
		case h.updateCh <- u:
		default:
		}
	}
}

// Updates returns a non-blocking getter; ok is false when nothing is pending.
func (h *Host) Updates() UpdateGetter {
	return func() (engine.Update, bool) {
		select {
		case u := <-h.updateCh:
			return u, true
		default:
			return engine.Update{}, false
		}
	}
}

// Do runs fn with exclusive access to the engine.
func (h *Host) Do(fn func(e *engine.Engine)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.engine)
}

func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Start()
}

func (h *Host) Select(t game.TerritoryID) {
	h.Do(func(e *engine.Engine) { e.Select(t) })
}

func (h *Host) DragStart(t game.TerritoryID) {
	h.Do(func(e *engine.Engine) { e.DragStart(t) })
}

func (h *Host) DragEnd(x, y float64, source game.TerritoryID) {
	h.Do(func(e *engine.Engine) { e.DragEnd(x, y, source) })
}

func (h *Host) Key(r rune) {
	h.Do(func(e *engine.Engine) { e.Key(r) })
}

func (h *Host) Snapshot() engine.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Snapshot()
}
