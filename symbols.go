package cubeengine

import "github.com/SeamusWaldron/cubeengine/internal/movetable"

// Symbol is one input command.
type Symbol = movetable.Symbol

// Predefined symbols of the default table.
//
// Example:
//
//	eng.Submit(cubeengine.SymW, cubeengine.SymI)
const (
	// Z axis, positive direction
	SymU Symbol = "u" // layer z=-2
	SymI Symbol = "i" // layer z=0
	SymO Symbol = "o" // layer z=2

	// Z axis, negative direction
	SymJ Symbol = "j"
	SymK Symbol = "k"
	SymL Symbol = "l"

	// Y axis, positive direction
	SymW Symbol = "w" // layer y=2
	SymS Symbol = "s" // layer y=0
	SymX Symbol = "x" // layer y=-2

	// Y axis, negative direction
	SymR Symbol = "r"
	SymF Symbol = "f"
	SymV Symbol = "v"
)

// Inverse returns the symbol that undoes sym in the default table.
func Inverse(sym Symbol) (Symbol, bool) {
	s, ok := inverses[sym]
	return s, ok
}

var inverses = map[Symbol]Symbol{
	SymU: SymJ, SymJ: SymU,
	SymI: SymK, SymK: SymI,
	SymO: SymL, SymL: SymO,
	SymW: SymR, SymR: SymW,
	SymS: SymF, SymF: SymS,
	SymX: SymV, SymV: SymX,
}

// Tour turns every layer of the default table once.
var Tour = []Symbol{SymU, SymI, SymO, SymW, SymS, SymX, SymJ, SymK, SymL, SymR, SymF, SymV}

// Undo returns the symbols that reverse seq in the default table.
func Undo(seq []Symbol) []Symbol {
	out := make([]Symbol, 0, len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		inv, ok := Inverse(seq[i])
		if !ok {
			continue
		}
		out = append(out, inv)
	}
	return out
}
