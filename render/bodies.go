package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shapefall/ecs"
	"github.com/milk9111/shapefall/ecs/component"
	"github.com/milk9111/shapefall/view"
)

var defaultOutline = color.NRGBA{G: 0xff, A: 0xff}

// BodyRenderer draws every entity with a physics body as a wireframe keyed
// off its shape kind. Bodies outside the view are skipped.
type BodyRenderer struct {
	cam *view.Camera

	// Drawn is the number of outlines stroked on the last Draw.
	Drawn int
}

func NewBodyRenderer(cam *view.Camera) *BodyRenderer {
	return &BodyRenderer{cam: cam}
}

func (r *BodyRenderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.Drawn = 0
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		o := view.BodyOutline(pb.Body)
		if o.Empty() || !r.cam.Visible(o.Bounds()) {
			return
		}
		var clr color.Color = defaultOutline
		var width float32 = 1
		if st, ok := ecs.Get(w, e, component.OutlineStyleComponent.Kind()); ok {
			if st.Color != nil {
				clr = st.Color
			}
			width = st.Width
		}
		DrawOutline(screen, r.cam, o, clr, width)
		r.Drawn++
	})
}
