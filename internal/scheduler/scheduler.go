// Package scheduler drives layer rotations one at a time.
//
// The Scheduler is a two-state machine. In Idle it pops the next queued
// symbol, classifies the settled cube, and starts animating the resolved
// layer. In Animating every Step re-evaluates each affected cubie from its
// pre-move transform until the move completes. Symbols submitted while a
// move is in flight wait in the queue, so a layer is never resolved against
// geometry that is still moving.
package scheduler

import (
	"time"

	"github.com/SeamusWaldron/cubeengine/internal/cubie"
	"github.com/SeamusWaldron/cubeengine/internal/interp"
	"github.com/SeamusWaldron/cubeengine/internal/lattice"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
)

// DefaultDuration is how long one quarter turn takes to animate.
const DefaultDuration = 200 * time.Millisecond

// settleTolerance is how close to a lattice value a settled coordinate must
// be to be snapped onto it.
const settleTolerance = 1e-6

// State is the scheduler phase.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// DropReason explains why a symbol produced no move.
type DropReason string

const (
	// DropUnresolved means the symbol has no entry in the move table.
	DropUnresolved DropReason = "unresolved"
	// DropEmptyLayer means the resolved layer had no cubies.
	DropEmptyLayer DropReason = "empty_layer"
)

// Event describes one move for hooks.
type Event struct {
	Seq     uint64
	Symbol  movetable.Symbol
	Move    movetable.Move
	Members []cubie.ID
	Elapsed time.Duration
}

// Hooks are optional callbacks. They run synchronously inside Step and
// Enqueue and must not call back into the scheduler.
type Hooks struct {
	OnClassify func(lattice.Layers)
	OnDrop     func(movetable.Symbol, DropReason)
	OnStart    func(Event)
	OnComplete func(Event)
}

// Stats are running counters.
type Stats struct {
	Enqueued        uint64
	Classifications uint64
	Started         uint64
	Completed       uint64
	Unresolved      uint64
	EmptyLayers     uint64
}

// Config configures a Scheduler.
type Config struct {
	Duration time.Duration
	Easing   interp.Easing
	Hooks    Hooks
}

type member struct {
	slot int
	lens interp.RotatePlane
}

// batch is the single in-flight move.
type batch struct {
	event   Event
	members []member
	elapsed time.Duration
}

// Scheduler owns cubie transforms while the engine is active.
type Scheduler struct {
	cubies   *cubie.Set
	table    *movetable.Table
	duration time.Duration
	easing   interp.Easing
	hooks    Hooks

	pending queue
	current *batch
	seq     uint64
	stats   Stats
}

// New creates an idle scheduler over cubies.
func New(cubies *cubie.Set, table *movetable.Table, cfg Config) *Scheduler {
	if cfg.Easing == nil {
		cfg.Easing = interp.Linear
	}
	return &Scheduler{
		cubies:   cubies,
		table:    table,
		duration: cfg.Duration,
		easing:   cfg.Easing,
		hooks:    cfg.Hooks,
	}
}

// Enqueue appends a symbol to the input queue. It never resolves anything.
func (s *Scheduler) Enqueue(sym movetable.Symbol) {
	s.pending.push(sym)
	s.stats.Enqueued++
}

// State returns Idle or Animating.
func (s *Scheduler) State() State {
	if s.current != nil {
		return Animating
	}
	return Idle
}

// Pending returns the number of queued symbols not yet popped.
func (s *Scheduler) Pending() int {
	return s.pending.len()
}

// Stats returns a copy of the running counters.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Current returns the in-flight move, if any.
func (s *Scheduler) Current() (Event, bool) {
	if s.current == nil {
		return Event{}, false
	}
	ev := s.current.event
	ev.Elapsed = s.current.elapsed
	return ev, true
}

// Progress returns the linear progress of the in-flight move in [0,1], or
// 0 when idle.
func (s *Scheduler) Progress() float64 {
	if s.current == nil {
		return 0
	}
	return s.ratio(s.current.elapsed)
}

// Step advances the clock by dt. An in-flight move progresses first; if it
// completes, or nothing was in flight, the next resolvable symbol starts.
// Negative dt is treated as zero.
func (s *Scheduler) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if s.current != nil {
		s.advance(dt)
	}
	if s.current == nil {
		s.startNext()
	}
}

// Drain steps until the queue is empty and no move is in flight.
func (s *Scheduler) Drain(dt time.Duration) {
	if dt <= 0 {
		dt = s.duration
	}
	for s.current != nil || s.pending.len() > 0 {
		s.Step(dt)
	}
}

func (s *Scheduler) ratio(elapsed time.Duration) float64 {
	if s.duration <= 0 || elapsed >= s.duration {
		return 1
	}
	return float64(elapsed) / float64(s.duration)
}

func (s *Scheduler) advance(dt time.Duration) {
	b := s.current
	b.elapsed += dt
	r := s.ratio(b.elapsed)
	eased := s.easing(r)
	for _, m := range b.members {
		s.cubies.SetTransform(m.slot, m.lens.At(eased))
	}
	if r < 1 {
		return
	}
	s.settle(b)
	s.current = nil
	s.stats.Completed++
	ev := b.event
	ev.Elapsed = b.elapsed
	if s.hooks.OnComplete != nil {
		s.hooks.OnComplete(ev)
	}
}

// settle snaps completed cubies onto the lattice and renormalizes their
// orientation.
func (s *Scheduler) settle(b *batch) {
	for _, m := range b.members {
		t := s.cubies.At(m.slot).Transform
		t.Position = t.Position.Snap(settleTolerance)
		t.Rotation = t.Rotation.Normalize()
		s.cubies.SetTransform(m.slot, t)
	}
}

// startNext pops symbols until one starts a move or the queue is empty.
// This is the only caller of lattice.Classify.
func (s *Scheduler) startNext() {
	for {
		sym, ok := s.pending.pop()
		if !ok {
			return
		}
		mv, ok := s.table.Resolve(sym)
		if !ok {
			s.drop(sym, DropUnresolved)
			continue
		}

		layers := lattice.Classify(s.cubies.Snapshot())
		s.stats.Classifications++
		if s.hooks.OnClassify != nil {
			s.hooks.OnClassify(layers)
		}

		ids := layers.Axis(mv.LayerAxis())[mv.Layer]
		if len(ids) == 0 {
			s.drop(sym, DropEmptyLayer)
			continue
		}

		s.seq++
		b := &batch{
			event:   Event{Seq: s.seq, Symbol: sym, Move: mv, Members: ids},
			members: make([]member, 0, len(ids)),
		}
		for _, id := range ids {
			slot, _ := s.cubies.Index(id)
			b.members = append(b.members, member{
				slot: slot,
				lens: interp.QuarterTurnAbout(mv.Axis, s.cubies.At(slot).Transform),
			})
		}
		s.current = b
		s.stats.Started++
		if s.hooks.OnStart != nil {
			s.hooks.OnStart(b.event)
		}
		return
	}
}

func (s *Scheduler) drop(sym movetable.Symbol, reason DropReason) {
	switch reason {
	case DropUnresolved:
		s.stats.Unresolved++
	case DropEmptyLayer:
		s.stats.EmptyLayers++
	}
	if s.hooks.OnDrop != nil {
		s.hooks.OnDrop(sym, reason)
	}
}
