package cubeengine

import (
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
	"github.com/SeamusWaldron/cubeengine/internal/metrics"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
)

// delayedSource becomes ready after a number of polls.
type delayedSource struct {
	polls int
	after int
	nodes []scene.Node
	err   error
}

func (s *delayedSource) Poll() ([]scene.Node, bool, error) {
	s.polls++
	if s.err != nil {
		return nil, false, s.err
	}
	if s.polls <= s.after {
		return nil, false, nil
	}
	return s.nodes, true, nil
}

func newActive(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	eng, err := New(scene.NewStaticSource(scene.Rubik()), opts...)
	require.NoError(t, err)
	require.NoError(t, eng.Tick(0))
	require.Equal(t, Active, eng.Phase())
	return eng
}

func TestEngine_BuffersWhileLoading(t *testing.T) {
	src := &delayedSource{after: 2, nodes: scene.Rubik()}
	eng, err := New(src)
	require.NoError(t, err)

	var phases []Phase
	eng.OnPhaseChange(func(p Phase) { phases = append(phases, p) })

	eng.Submit(SymW)
	assert.Equal(t, 1, eng.Pending())
	assert.Equal(t, Loading, eng.Phase())

	_, err = eng.Cubies()
	assert.True(t, errors.Is(err, ErrNotActive))
	assert.True(t, errors.Is(eng.Drain(0), ErrNotActive))

	require.NoError(t, eng.Tick(16*time.Millisecond))
	require.NoError(t, eng.Tick(16*time.Millisecond))
	assert.Equal(t, Loading, eng.Phase())
	assert.Equal(t, Idle, eng.State())

	require.NoError(t, eng.Tick(16*time.Millisecond))
	assert.Equal(t, Active, eng.Phase())
	assert.Equal(t, []Phase{Active}, phases)
	assert.Equal(t, Animating, eng.State(), "buffered symbol starts on activation")
	assert.Equal(t, 0, eng.Pending())

	cubies, err := eng.Cubies()
	require.NoError(t, err)
	assert.Len(t, cubies, 27)

	// Further ticks never re-bootstrap.
	require.NoError(t, eng.Drain(50*time.Millisecond))
	assert.Equal(t, []Phase{Active}, phases)
	assert.Equal(t, 3, src.polls)
}

func TestEngine_AssetError(t *testing.T) {
	boom := errors.New("disk on fire")
	eng, err := New(&delayedSource{err: boom})
	require.NoError(t, err)

	err = eng.Tick(time.Millisecond)
	assert.True(t, errors.Is(err, ErrAssetLoad))
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Equal(t, Loading, eng.Phase())
}

func TestEngine_MoveTiming(t *testing.T) {
	eng := newActive(t)

	var started, completed []MoveEvent
	eng.OnMoveStart(func(ev MoveEvent) { started = append(started, ev) })
	eng.OnMoveComplete(func(ev MoveEvent) { completed = append(completed, ev) })

	eng.Submit(SymW, SymR)
	for i := 0; i < 4; i++ {
		require.NoError(t, eng.Tick(100*time.Millisecond))
	}

	require.Len(t, completed, 2)
	assert.Equal(t, SymW, completed[0].Symbol)
	assert.Equal(t, time.Duration(0), completed[0].Start)
	assert.Equal(t, 200*time.Millisecond, completed[0].Elapsed)
	assert.Equal(t, 9, completed[0].Members)
	assert.Equal(t, SymR, completed[1].Symbol)
	assert.Equal(t, 200*time.Millisecond, completed[1].Start)

	require.Len(t, started, 2)
	assert.Equal(t, uint64(2), started[1].Seq)
	assert.True(t, eng.Idle())

	net, err := eng.Net()
	require.NoError(t, err)
	assert.True(t, net.IsSolved(), "w then r restores the cube")
}

func TestEngine_FirstTickCountsTowardMove(t *testing.T) {
	eng := newActive(t)

	var started []MoveEvent
	eng.OnMoveStart(func(ev MoveEvent) { started = append(started, ev) })

	eng.Submit(SymW)
	require.NoError(t, eng.Tick(100*time.Millisecond))

	require.Len(t, started, 1)
	assert.Equal(t, time.Duration(0), started[0].Start)
	assert.Equal(t, Animating, eng.State())
	assert.InDelta(t, 0.5, eng.Progress(), 1e-9)

	require.NoError(t, eng.Tick(100*time.Millisecond))
	assert.True(t, eng.Idle())
	assert.Equal(t, 200*time.Millisecond, eng.Clock())
}

func TestEngine_ScenarioCubie(t *testing.T) {
	eng := newActive(t, WithDuration(0))
	before, err := eng.Cubies()
	require.NoError(t, err)

	var id string
	for _, c := range before {
		if c.Position.ApproxEqual(geom.Vec3{X: 2}, 1e-9) {
			id = string(c.ID)
		}
	}
	require.NotEmpty(t, id)

	eng.Submit(SymI)
	require.NoError(t, eng.Drain(time.Millisecond))

	after, err := eng.Cubies()
	require.NoError(t, err)
	for _, c := range after {
		if string(c.ID) == id {
			assert.InDelta(t, 0, c.Position.X, 1e-9)
			assert.InDelta(t, 2, c.Position.Y, 1e-9)
			assert.InDelta(t, 0, c.Position.Z, 1e-9)
		}
	}
}

func TestEngine_UndoTour(t *testing.T) {
	eng := newActive(t)
	eng.Submit(Tour...)
	eng.Submit(Undo(Tour)...)
	require.NoError(t, eng.Drain(40*time.Millisecond))

	net, err := eng.Net()
	require.NoError(t, err)
	assert.True(t, net.IsSolved())

	st := eng.Stats()
	assert.Equal(t, uint64(24), st.Submitted)
	assert.Equal(t, uint64(24), st.Completed)
	assert.Equal(t, uint64(24), st.Classifications)
}

func TestEngine_UnresolvedDropped(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	eng := newActive(t, WithLogger(logger))

	var drops []DropReason
	eng.OnDrop(func(_ Symbol, r DropReason) { drops = append(drops, r) })

	eng.Submit("q", SymW)
	require.NoError(t, eng.Tick(0))

	assert.Equal(t, Animating, eng.State())
	assert.Equal(t, []DropReason{"unresolved"}, drops)
	assert.Equal(t, uint64(1), eng.Stats().Unresolved)

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel && e.Data["symbol"] == "q" {
			found = true
		}
	}
	assert.True(t, found, "unresolved symbols are logged at debug")
}

func TestEngine_EmptyLayerWarns(t *testing.T) {
	var nodes []scene.Node
	for _, n := range scene.Rubik() {
		if n.Transform.Position.Y > 1 {
			continue
		}
		nodes = append(nodes, n)
	}
	logger, hook := logtest.NewNullLogger()
	eng, err := New(scene.NewStaticSource(nodes), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, eng.Tick(0))

	eng.Submit(SymW, SymS)
	require.NoError(t, eng.Tick(0))

	assert.Equal(t, uint64(1), eng.Stats().EmptyLayers)
	assert.Equal(t, Animating, eng.State(), "next symbol starts after the drop")
	require.NotNil(t, hook.LastEntry())

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestEngine_Bindings(t *testing.T) {
	eng := newActive(t, WithDuration(0), WithBindings([]movetable.Binding{
		{Symbol: "a", Axis: "+x", Layer: 2},
	}))
	eng.Submit("a", SymW)
	require.NoError(t, eng.Drain(time.Millisecond))

	st := eng.Stats()
	assert.Equal(t, uint64(1), st.Completed)
	assert.Equal(t, uint64(1), st.Unresolved, "w is not bound")
}

func TestEngine_InvalidBindings(t *testing.T) {
	_, err := New(scene.NewStaticSource(nil), WithBindings([]movetable.Binding{
		{Symbol: "a", Axis: "+x", Layer: 2},
		{Symbol: "a", Axis: "-x", Layer: 2},
	}))
	assert.True(t, errors.Is(err, ErrInvalidBinding))
}

func TestEngine_CallbacksMayReenter(t *testing.T) {
	eng := newActive(t, WithDuration(0))
	var pending []int
	eng.OnMoveComplete(func(MoveEvent) { pending = append(pending, eng.Pending()) })

	eng.Submit(SymW, SymR)
	require.NoError(t, eng.Drain(time.Millisecond))
	assert.Len(t, pending, 2)
}

func TestEngine_ConcurrentSubmit(t *testing.T) {
	eng := newActive(t, WithDuration(10*time.Millisecond))

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				eng.Submit(SymW)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		require.NoError(t, eng.Tick(5*time.Millisecond))
	}
	wg.Wait()
	require.NoError(t, eng.Drain(10*time.Millisecond))

	st := eng.Stats()
	assert.Equal(t, uint64(100), st.Submitted)
	assert.Equal(t, uint64(100), st.Completed)

	net, err := eng.Net()
	require.NoError(t, err)
	assert.True(t, net.IsSolved(), "100 quarter turns of one layer is a multiple of four")
}

func TestEngine_Metrics(t *testing.T) {
	m := metrics.New()
	eng := newActive(t, WithDuration(0), WithMetrics(m))
	eng.Submit(SymW, "q")
	require.NoError(t, eng.Drain(time.Millisecond))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, "cubeengine_moves_completed_total 1")
	assert.Contains(t, body, `cubeengine_symbols_dropped_total{reason="unresolved"} 1`)
	assert.Contains(t, body, "cubeengine_symbols_received_total 2")
	assert.Contains(t, body, "cubeengine_active 1")
}

func TestUndo(t *testing.T) {
	assert.Equal(t, []Symbol{SymR, SymJ}, Undo([]Symbol{SymU, "?", SymW}))
	_, ok := Inverse("?")
	assert.False(t, ok)
}

func TestEngine_MultipleListeners(t *testing.T) {
	eng := newActive(t, WithDuration(0))
	var a, b int
	eng.OnMoveComplete(func(MoveEvent) { a++ })
	eng.OnMoveComplete(func(MoveEvent) { b++ })

	eng.Submit(SymW)
	require.NoError(t, eng.Drain(time.Millisecond))
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
