// Package cubeengine animates layer rotations of a 3x3x3 rotating-layer
// puzzle.
//
// # Overview
//
// The engine works on labeled cubies (a stable ID plus a position and an
// orientation) and a stream of single-key symbols. Each symbol names one
// layer and a turn direction. Moves are classified against the settled
// lattice, animated over a fixed duration, and applied strictly one at a
// time.
//
// # Quick Start
//
//	eng, err := cubeengine.New(scene.NewStaticSource(scene.Rubik()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng.OnMoveComplete(func(ev cubeengine.MoveEvent) {
//	    fmt.Println("done:", ev.Symbol, ev.Move)
//	})
//
//	eng.Submit(cubeengine.SymW, cubeengine.SymR)
//	for !eng.Idle() {
//	    eng.Tick(16 * time.Millisecond)
//	}
//
// # Lifecycle
//
// An Engine starts in Loading and polls its scene source on every Tick.
// Once the source is ready the cubies are tagged and the engine becomes
// Active. Symbols submitted while loading are kept and play after
// activation.
//
// # Default Bindings
//
// Twelve symbols are bound by default:
//
//	u i o   +Z turn of layer z=-2, 0, 2
//	j k l   -Z turn of layer z=-2, 0, 2
//	w s x   +Y turn of layer y=2, 0, -2
//	r f v   -Y turn of layer y=2, 0, -2
//
// Unknown symbols are dropped.
package cubeengine
