// Package input turns external devices into engine symbols.
package input

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
	"github.com/SeamusWaldron/cubeengine/internal/lattice"
	"github.com/SeamusWaldron/cubeengine/internal/logging"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
	"github.com/SeamusWaldron/cubeengine/internal/protocol"
)

// Submitter accepts symbols. *cubeengine.Engine satisfies it.
type Submitter interface {
	Submit(syms ...movetable.Symbol)
}

// faceNormals gives each centre colour's outward normal on a solved cube.
var faceNormals = map[protocol.Color]geom.Vec3{
	protocol.White:  geom.PosY,
	protocol.Yellow: geom.NegY,
	protocol.Green:  geom.PosZ,
	protocol.Blue:   geom.NegZ,
	protocol.Red:    geom.PosX,
	protocol.Orange: geom.NegX,
}

// outerLayer is the lattice key of a face layer on its normal's positive side.
var outerLayer = lattice.Values[len(lattice.Values)-1]

// MoveFor returns the layer rotation equivalent to a physical face turn.
// A clockwise turn, seen from outside the face, rotates the layer about the
// inward normal.
func MoveFor(t protocol.Turn) (movetable.Move, bool) {
	n, ok := faceNormals[t.Face]
	if !ok {
		return movetable.Move{}, false
	}
	_, sign := geom.Dominant(n)
	axis := n
	if t.Clockwise {
		axis = n.Scale(-1)
	}
	return movetable.Move{Axis: axis, Layer: sign * outerLayer}, true
}

// Translator maps face turns to symbols of a move table.
type Translator struct {
	table *movetable.Table
}

// NewTranslator creates a translator over table.
func NewTranslator(table *movetable.Table) *Translator {
	return &Translator{table: table}
}

// Symbol returns the table symbol for a turn. Turns whose layer has no
// binding (R and L in the default table) report false.
func (tr *Translator) Symbol(t protocol.Turn) (movetable.Symbol, bool) {
	mv, ok := MoveFor(t)
	if !ok {
		return "", false
	}
	return tr.table.Lookup(mv.Axis, mv.Layer)
}

// FeedStats counts what a Feed has seen.
type FeedStats struct {
	Frames    uint64
	Turns     uint64
	Submitted uint64
	Unbound   uint64
	Battery   int
}

// Feed routes GoCube frames into a Submitter.
type Feed struct {
	translator *Translator
	sink       Submitter
	log        logrus.FieldLogger

	mu    sync.Mutex
	stats FeedStats
}

// NewFeed creates a feed. log may be nil.
func NewFeed(table *movetable.Table, sink Submitter, log logrus.FieldLogger) *Feed {
	if log == nil {
		log = logging.Discard()
	}
	return &Feed{
		translator: NewTranslator(table),
		sink:       sink,
		log:        log,
		stats:      FeedStats{Battery: -1},
	}
}

// HandleMessage consumes one decoded frame.
func (f *Feed) HandleMessage(msg *protocol.Message) {
	f.mu.Lock()
	f.stats.Frames++
	f.mu.Unlock()

	switch msg.Type {
	case protocol.MsgRotation:
		turns, err := protocol.DecodeTurns(msg.Payload)
		if err != nil {
			f.log.WithError(err).Warn("bad rotation frame")
			return
		}
		f.handleTurns(turns)
	case protocol.MsgBattery:
		level, err := protocol.DecodeBattery(msg.Payload)
		if err != nil {
			return
		}
		f.mu.Lock()
		f.stats.Battery = level
		f.mu.Unlock()
		f.log.WithField("level", level).Info("battery")
	default:
		f.log.WithField("type", protocol.TypeName(msg.Type)).Debug("ignored frame")
	}
}

// HandleError logs a frame that failed to parse.
func (f *Feed) HandleError(err error) {
	f.log.WithError(err).Debug("unparseable frame")
}

func (f *Feed) handleTurns(turns []protocol.Turn) {
	syms := make([]movetable.Symbol, 0, len(turns))
	var unbound uint64
	for _, t := range turns {
		sym, ok := f.translator.Symbol(t)
		if !ok {
			unbound++
			f.log.WithField("turn", t.String()).Debug("turn has no binding")
			continue
		}
		syms = append(syms, sym)
	}

	f.mu.Lock()
	f.stats.Turns += uint64(len(turns))
	f.stats.Unbound += unbound
	f.stats.Submitted += uint64(len(syms))
	f.mu.Unlock()

	if len(syms) > 0 {
		f.sink.Submit(syms...)
	}
}

// Stats returns a copy of the feed counters.
func (f *Feed) Stats() FeedStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}
