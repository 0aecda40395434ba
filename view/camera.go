package view

import "github.com/jakecoffman/cp"

// Camera is an orthographic view: world units are y-up, screen pixels are
// y-down, and (X, Y) lands on the centre of the screen.
type Camera struct {
	X             float64
	Y             float64
	PixelsPerUnit float64

	screenW int
	screenH int
}

// NewCamera creates a camera for the given logical screen size.
func NewCamera(screenW, screenH int, x, y, pixelsPerUnit float64) *Camera {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = 1
	}
	return &Camera{X: x, Y: y, PixelsPerUnit: pixelsPerUnit, screenW: screenW, screenH: screenH}
}

func (c *Camera) WorldToScreen(p cp.Vector) (float64, float64) {
	sx := (p.X-c.X)*c.PixelsPerUnit + float64(c.screenW)/2
	sy := float64(c.screenH)/2 - (p.Y-c.Y)*c.PixelsPerUnit
	return sx, sy
}

func (c *Camera) ScreenToWorld(sx, sy float64) cp.Vector {
	return cp.Vector{
		X: (sx-float64(c.screenW)/2)/c.PixelsPerUnit + c.X,
		Y: (float64(c.screenH)/2-sy)/c.PixelsPerUnit + c.Y,
	}
}

// ViewBounds returns the visible world rectangle.
func (c *Camera) ViewBounds() cp.BB {
	hw := float64(c.screenW) / 2 / c.PixelsPerUnit
	hh := float64(c.screenH) / 2 / c.PixelsPerUnit
	return cp.BB{L: c.X - hw, B: c.Y - hh, R: c.X + hw, T: c.Y + hh}
}

// Visible reports whether bb overlaps the view.
func (c *Camera) Visible(bb cp.BB) bool {
	v := c.ViewBounds()
	return bb.L <= v.R && bb.R >= v.L && bb.B <= v.T && bb.T >= v.B
}
