package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit is the orthographic zoom: the view spans BaseWidth/32 world units.
	PixelsPerUnit = 32.0

	Gravity = -25.0

	MaxFrameDelta   = 1.0 / 30.0
	FixedStep       = 1.0 / 60.0
	MaxSubSteps     = 5
	SpawnInterval   = 1.5
	SpawnHeight     = 9.0
	GroundAmplitude = 2.5
	GroundSpeed     = 90.0
)
