package cubeengine

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeengine/internal/bootstrap"
	"github.com/SeamusWaldron/cubeengine/internal/cubie"
	"github.com/SeamusWaldron/cubeengine/internal/lattice"
	"github.com/SeamusWaldron/cubeengine/internal/logging"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
	"github.com/SeamusWaldron/cubeengine/internal/render"
	"github.com/SeamusWaldron/cubeengine/internal/scheduler"
)

// Phase is the engine lifecycle phase.
type Phase = bootstrap.Phase

const (
	Loading = bootstrap.Loading
	Active  = bootstrap.Active
)

// State reports whether a move is in flight.
type State = scheduler.State

const (
	Idle      = scheduler.Idle
	Animating = scheduler.Animating
)

// DropReason explains why a symbol produced no move.
type DropReason = scheduler.DropReason

// MoveEvent describes one layer rotation.
type MoveEvent struct {
	Seq     uint64
	Symbol  Symbol
	Move    movetable.Move
	Members int
	// Start is the engine clock when the move began.
	Start time.Duration
	// Elapsed is the animated time so far; on completion it is at least
	// the configured duration.
	Elapsed time.Duration
}

// Stats are the engine's running counters.
type Stats struct {
	Submitted uint64
	scheduler.Stats
}

// Engine is the puzzle move engine. All methods are safe for concurrent
// use; callbacks run on the goroutine that called Tick or Submit, after
// the engine lock is released.
type Engine struct {
	mu     sync.Mutex
	cfg    *config
	table  *movetable.Table
	log    logrus.FieldLogger
	boot   *bootstrap.Bootstrap
	sched  *scheduler.Scheduler
	clock  time.Duration
	starts map[uint64]time.Duration

	// Symbols submitted while Loading.
	buffered  []Symbol
	submitted uint64

	// Callbacks queued under the lock and fired after it is released.
	fire []func()

	onMoveStart    []func(MoveEvent)
	onMoveComplete []func(MoveEvent)
	onPhaseChange  []func(Phase)
	onDrop         []func(Symbol, DropReason)
}

// New creates an engine in the Loading phase that will read its cubies
// from source.
func New(source bootstrap.Source, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	table := cfg.table
	if len(cfg.bindings) > 0 {
		t, err := movetable.FromBindings(cfg.bindings)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBinding, err)
		}
		table = t
	}
	if table == nil {
		table = movetable.Default()
	}

	log := cfg.logger
	if log == nil {
		log = logging.Discard()
	}

	e := &Engine{
		cfg:    cfg,
		table:  table,
		log:    log,
		boot:   bootstrap.New(source),
		starts: make(map[uint64]time.Duration),
	}
	if cfg.metrics != nil {
		cfg.metrics.SetActive(false)
	}
	return e, nil
}

// Callbacks accumulate: each On* call adds a listener, and listeners run
// in registration order.

// OnMoveStart adds a callback that fires when a move begins animating.
func (e *Engine) OnMoveStart(cb func(MoveEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onMoveStart = append(e.onMoveStart, cb)
}

// OnMoveComplete adds a callback that fires when a move settles.
func (e *Engine) OnMoveComplete(cb func(MoveEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onMoveComplete = append(e.onMoveComplete, cb)
}

// OnPhaseChange adds a callback that fires once, on activation.
func (e *Engine) OnPhaseChange(cb func(Phase)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onPhaseChange = append(e.onPhaseChange, cb)
}

// OnDrop adds a callback for symbols that produce no move.
func (e *Engine) OnDrop(cb func(Symbol, DropReason)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDrop = append(e.onDrop, cb)
}

// Submit queues symbols in arrival order. Nothing is resolved until the
// scheduler is idle and the engine is active.
func (e *Engine) Submit(syms ...Symbol) {
	e.mu.Lock()
	for _, sym := range syms {
		e.submitted++
		if e.cfg.metrics != nil {
			e.cfg.metrics.SymbolReceived()
		}
		if e.sched == nil {
			e.buffered = append(e.buffered, sym)
			continue
		}
		e.sched.Enqueue(sym)
	}
	e.updatePending()
	e.mu.Unlock()
}

// Tick advances the engine clock by dt. While loading it polls the scene
// source; once active it steps the scheduler. Scene errors are returned
// wrapped in ErrAssetLoad and leave the engine loading.
func (e *Engine) Tick(dt time.Duration) error {
	e.mu.Lock()
	err := e.tick(dt)
	fire := e.fire
	e.fire = nil
	e.mu.Unlock()

	for _, f := range fire {
		f()
	}
	return err
}

func (e *Engine) tick(dt time.Duration) error {
	if dt < 0 {
		dt = 0
	}
	if e.sched == nil {
		activated, err := e.boot.Step()
		if err != nil {
			e.log.WithError(err).Error("scene load failed")
			return fmt.Errorf("%w: %v", ErrAssetLoad, err)
		}
		if !activated {
			return nil
		}
		e.activate()
		// The activating tick starts the first move but does not advance it.
		e.sched.Step(0)
		e.updatePending()
		return nil
	}

	// Work submitted since the last tick starts at the current clock, so
	// this tick's time counts toward it.
	if e.sched.State() == Idle {
		e.sched.Step(0)
	}
	e.clock += dt
	e.sched.Step(dt)
	e.updatePending()
	return nil
}

func (e *Engine) activate() {
	cubies := e.boot.Cubies()
	e.sched = scheduler.New(cubies, e.table, scheduler.Config{
		Duration: e.cfg.duration,
		Easing:   e.cfg.easing,
		Hooks: scheduler.Hooks{
			OnClassify: e.handleClassify,
			OnDrop:     e.handleDrop,
			OnStart:    e.handleStart,
			OnComplete: e.handleComplete,
		},
	})
	for _, sym := range e.buffered {
		e.sched.Enqueue(sym)
	}
	e.buffered = nil

	e.log.WithFields(logrus.Fields{
		"nodes":  e.boot.NodeCount(),
		"cubies": cubies.Len(),
	}).Info("puzzle active")
	if e.cfg.metrics != nil {
		e.cfg.metrics.SetActive(true)
	}
	for _, cb := range e.onPhaseChange {
		e.fire = append(e.fire, func() { cb(Active) })
	}
}

func (e *Engine) handleClassify(lattice.Layers) {
	if e.cfg.metrics != nil {
		e.cfg.metrics.LayerMapBuilt()
	}
}

func (e *Engine) handleDrop(sym Symbol, reason DropReason) {
	entry := e.log.WithFields(logrus.Fields{"symbol": string(sym), "reason": string(reason)})
	if reason == scheduler.DropEmptyLayer {
		entry.Warn("layer has no cubies, move dropped")
	} else {
		entry.Debug("symbol dropped")
	}
	if e.cfg.metrics != nil {
		e.cfg.metrics.Dropped(string(reason))
	}
	for _, cb := range e.onDrop {
		e.fire = append(e.fire, func() { cb(sym, reason) })
	}
}

func (e *Engine) handleStart(ev scheduler.Event) {
	e.starts[ev.Seq] = e.clock
	out := e.moveEvent(ev)
	e.log.WithFields(logrus.Fields{
		"seq":    ev.Seq,
		"symbol": string(ev.Symbol),
		"move":   ev.Move.String(),
	}).Debug("move started")
	if e.cfg.metrics != nil {
		e.cfg.metrics.MoveStarted()
	}
	for _, cb := range e.onMoveStart {
		e.fire = append(e.fire, func() { cb(out) })
	}
}

func (e *Engine) handleComplete(ev scheduler.Event) {
	out := e.moveEvent(ev)
	delete(e.starts, ev.Seq)
	e.log.WithFields(logrus.Fields{
		"seq":     ev.Seq,
		"symbol":  string(ev.Symbol),
		"elapsed": ev.Elapsed,
	}).Debug("move completed")
	if e.cfg.metrics != nil {
		e.cfg.metrics.MoveCompleted(ev.Elapsed)
	}
	for _, cb := range e.onMoveComplete {
		e.fire = append(e.fire, func() { cb(out) })
	}
}

func (e *Engine) moveEvent(ev scheduler.Event) MoveEvent {
	return MoveEvent{
		Seq:     ev.Seq,
		Symbol:  ev.Symbol,
		Move:    ev.Move,
		Members: len(ev.Members),
		Start:   e.starts[ev.Seq],
		Elapsed: ev.Elapsed,
	}
}

func (e *Engine) updatePending() {
	if e.cfg.metrics != nil {
		e.cfg.metrics.SetPending(e.pending())
	}
}

// Phase returns Loading or Active.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boot.Phase()
}

// State returns Idle or Animating. A loading engine is Idle.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sched == nil {
		return Idle
	}
	return e.sched.State()
}

// Idle reports whether the engine is active with no move in flight and
// nothing queued.
func (e *Engine) Idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sched != nil && e.sched.State() == Idle && e.sched.Pending() == 0
}

// Pending returns the number of symbols waiting to be resolved.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending()
}

func (e *Engine) pending() int {
	if e.sched == nil {
		return len(e.buffered)
	}
	return e.sched.Pending()
}

// Progress returns the linear progress of the in-flight move, or 0.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sched == nil {
		return 0
	}
	return e.sched.Progress()
}

// Clock returns the total time ticked since activation.
func (e *Engine) Clock() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock
}

// Stats returns the running counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Stats{Submitted: e.submitted}
	if e.sched != nil {
		st.Stats = e.sched.Stats()
	}
	return st
}

// Table returns the move table in use.
func (e *Engine) Table() *movetable.Table {
	return e.table
}

// Cubies returns a snapshot of every cubie's current transform.
func (e *Engine) Cubies() ([]cubie.Cubie, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sched == nil {
		return nil, ErrNotActive
	}
	return e.boot.Cubies().Snapshot(), nil
}

// Net projects the current cubies onto a six-face sticker net.
func (e *Engine) Net() (render.Net, error) {
	cubies, err := e.Cubies()
	if err != nil {
		return render.Net{}, err
	}
	return render.Project(cubies), nil
}

// Drain ticks by dt until every queued symbol has played. It returns
// ErrNotActive if the scene has not loaded.
func (e *Engine) Drain(dt time.Duration) error {
	if dt <= 0 {
		dt = e.cfg.duration
	}
	if dt <= 0 {
		dt = time.Millisecond
	}
	if e.Phase() != Active {
		return ErrNotActive
	}
	for !e.Idle() {
		if err := e.Tick(dt); err != nil {
			return err
		}
	}
	return nil
}
