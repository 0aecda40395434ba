package component

import (
	"github.com/milk9111/shapefall/common"
)

// GroundOscillator drives a kinematic body vertically along a sine wave.
type GroundOscillator struct {
	Amplitude float64
	// Speed is in degrees per second.
	Speed float64
	// Angle is in degrees, kept in [0, 360).
	Angle float64
	BaseX float64
	BaseY float64
}

// Advance moves the phase by dt and returns the new vertical offset.
func (g *GroundOscillator) Advance(dt float64) float64 {
	g.Angle = common.WrapDegrees(g.Angle + dt*g.Speed)
	return g.Offset()
}

func (g *GroundOscillator) Offset() float64 {
	return g.Amplitude * common.SinDeg(g.Angle)
}

var GroundOscillatorComponent = NewComponent[GroundOscillator]()
