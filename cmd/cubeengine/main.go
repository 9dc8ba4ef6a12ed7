// cubeengine - terminal front end for the layer-rotation engine.
package main

import (
	"github.com/SeamusWaldron/cubeengine/internal/cli"
)

func main() {
	cli.Execute()
}
