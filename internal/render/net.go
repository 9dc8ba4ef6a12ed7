// Package render projects cubie transforms onto the six-face sticker net a
// viewer would see.
//
// Each cubie carries up to six stickers coloured by the face they sat on in
// the solved cube. A sticker's current world direction is its home normal
// rotated by the cubie orientation, so the colour shown in direction n is
// the home face of inverse(rotation)·n.
package render

import (
	"strings"

	"github.com/SeamusWaldron/cubeengine/internal/cubie"
	"github.com/SeamusWaldron/cubeengine/internal/geom"
	"github.com/SeamusWaldron/cubeengine/internal/lattice"
)

// Color represents a sticker colour.
type Color byte

const (
	None   Color = 0 // No settled cubie at this cell
	White  Color = 1 // Up face when solved
	Yellow Color = 2 // Down face when solved
	Green  Color = 3 // Front face when solved
	Blue   Color = 4 // Back face when solved
	Red    Color = 5 // Right face when solved
	Orange Color = 6 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "·"
	}
}

// Face names one side of the cube.
type Face int

const (
	U Face = 0 // Up (+Y)
	D Face = 1 // Down (-Y)
	F Face = 2 // Front (+Z)
	B Face = 3 // Back (-Z)
	R Face = 4 // Right (+X)
	L Face = 5 // Left (-X)
)

// Faces lists all faces in net order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	return [...]string{"U", "D", "F", "B", "R", "L"}[f]
}

// view describes how a face is laid out for a viewer looking at it from
// outside: the outward normal, and the world directions of the grid's
// increasing column and increasing row.
type view struct {
	normal geom.Vec3
	right  geom.Vec3
	down   geom.Vec3
}

var views = [6]view{
	U: {normal: geom.PosY, right: geom.PosX, down: geom.PosZ},
	D: {normal: geom.NegY, right: geom.PosX, down: geom.NegZ},
	F: {normal: geom.PosZ, right: geom.PosX, down: geom.NegY},
	B: {normal: geom.NegZ, right: geom.NegX, down: geom.NegY},
	R: {normal: geom.PosX, right: geom.NegZ, down: geom.NegY},
	L: {normal: geom.NegX, right: geom.PosZ, down: geom.NegY},
}

// solvedColor is the colour of stickers whose home normal points along a
// face's normal.
var solvedColor = [6]Color{U: White, D: Yellow, F: Green, B: Blue, R: Red, L: Orange}

// Net holds the visible stickers. Each face is indexed
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// as seen from outside the cube.
type Net struct {
	Stickers [6][9]Color
}

// Project builds the net for cubies. Cells whose cubie is mid-rotation
// (off the lattice) are left as None.
func Project(cubies []cubie.Cubie) Net {
	var n Net
	for _, c := range cubies {
		for _, f := range Faces {
			v := views[f]
			a, sign := geom.Dominant(v.normal)
			if lattice.Key(c.Position.Component(a)) != 2*sign {
				continue
			}
			col, okc := cell(c.Position, v.right)
			row, okr := cell(c.Position, v.down)
			if !okc || !okr {
				continue
			}
			local := c.Rotation.Inverse().Rotate(v.normal)
			n.Stickers[f][row*3+col] = colorOf(local)
		}
	}
	return n
}

// cell maps a position to a grid index 0..2 along dir.
func cell(p geom.Vec3, dir geom.Vec3) (int, bool) {
	a, sign := geom.Dominant(dir)
	k := lattice.Key(p.Component(a)) * sign
	switch k {
	case -2:
		return 0, true
	case 0:
		return 1, true
	case 2:
		return 2, true
	}
	return 0, false
}

// colorOf returns the home colour of a sticker with local normal n. Normals
// more than ~45 degrees from every axis belong to a cubie caught mid-turn.
func colorOf(n geom.Vec3) Color {
	a, sign := geom.Dominant(n)
	if abs(n.Component(a)) < 0.75 {
		return None
	}
	for _, f := range Faces {
		fa, fs := geom.Dominant(views[f].normal)
		if fa == a && fs == sign {
			return solvedColor[f]
		}
	}
	return None
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// IsSolved reports whether every face shows a single colour.
func (n Net) IsSolved() bool {
	for _, f := range Faces {
		for i := 0; i < 9; i++ {
			if n.Stickers[f][i] != solvedColor[f] {
				return false
			}
		}
	}
	return true
}

// Face returns the nine stickers of f.
func (n Net) Face(f Face) [9]Color {
	return n.Stickers[f]
}

// String renders the net as text:
//
//	      U
//	L F R B
//	      D
func (n Net) String() string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(n.Stickers[U][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				b.WriteString(n.Stickers[face][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(n.Stickers[D][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
