package cubeengine

import "errors"

// Sentinel errors for the cubeengine package.
var (
	// Lifecycle errors
	ErrNotActive = errors.New("cubeengine: puzzle not loaded yet")
	ErrAssetLoad = errors.New("cubeengine: scene failed to load")

	// Configuration errors
	ErrInvalidBinding = errors.New("cubeengine: invalid key binding")
	ErrInvalidConfig  = errors.New("cubeengine: invalid configuration")
)
