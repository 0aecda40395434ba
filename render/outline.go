package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shapefall/view"
)

// DrawOutline strokes every rectangle and circle of o through the camera.
func DrawOutline(screen *ebiten.Image, cam *view.Camera, o view.Outline, clr color.Color, width float32) {
	if screen == nil || cam == nil || o.Empty() {
		return
	}
	if width <= 0 {
		width = 1
	}
	for _, r := range o.Rects {
		corners := r.Corners()
		strokeLoop(screen, cam, corners[:], clr, width)
	}
	for _, c := range o.Circles {
		strokeLoop(screen, cam, c.Points(), clr, width)
	}
}

func strokeLoop(screen *ebiten.Image, cam *view.Camera, pts []cp.Vector, clr color.Color, width float32) {
	n := len(pts)
	for i := 0; i < n; i++ {
		ax, ay := cam.WorldToScreen(pts[i])
		bx, by := cam.WorldToScreen(pts[(i+1)%n])
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
	}
}
