package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// Color identifies a face by its centre colour, in GoCube code order.
type Color byte

const (
	Blue Color = iota
	Green
	White
	Yellow
	Red
	Orange
)

var colorNames = [...]string{"blue", "green", "white", "yellow", "red", "orange"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", byte(c))
}

// Turn is one physical face quarter turn.
type Turn struct {
	Face      Color
	Clockwise bool
}

func (t Turn) String() string {
	if t.Clockwise {
		return t.Face.String()
	}
	return t.Face.String() + "'"
}

// DecodeTurns decodes a rotation payload. Each turn is two bytes: a code
// (colour*2, +1 for counter-clockwise) and the centre orientation, which
// is ignored.
func DecodeTurns(payload []byte) ([]Turn, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	turns := make([]Turn, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		face := Color(code / 2)
		if face > Orange {
			return nil, fmt.Errorf("unknown face code 0x%02X", code)
		}
		turns = append(turns, Turn{Face: face, Clockwise: code%2 == 0})
	}
	return turns, nil
}

// DecodeBattery returns the battery percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("battery payload too short")
	}
	return int(payload[0]), nil
}

// Orientation is the cube's physical attitude.
type Orientation struct {
	Rotation geom.Quat
	// Up is the cube axis currently pointing up.
	Up geom.Vec3
}

// DecodeOrientation parses "x#y#z#w" (raw integers, unnormalized) with an
// optional trailing checksum byte.
func DecodeOrientation(payload []byte) (Orientation, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return Orientation{}, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Orientation{}, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		v[i] = f
	}

	q := geom.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
	if q == (geom.Quat{}) {
		return Orientation{}, fmt.Errorf("orientation quaternion is zero")
	}
	q = q.Normalize()

	// The axis that maps closest to world up.
	up := q.Inverse().Rotate(geom.PosY)
	axis, sign := geom.Dominant(up)
	return Orientation{Rotation: q, Up: axis.Unit().Scale(float64(sign))}, nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || r == '.' || (r >= '0' && r <= '9') {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}
