package physics

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
)

const debugCircleSegments = 24

// DebugView maps the arena's XZ plane onto a screen rectangle, world Z up.
type DebugView struct {
	CenterX, CenterZ float64
	ScreenX, ScreenY float64
	Zoom             float64
}

// DebugDraw renders the chipmunk shapes as a top-down map.
func (a *Arena) DebugDraw(screen *ebiten.Image, view DebugView) {
	if a == nil || screen == nil {
		return
	}
	if view.Zoom <= 0 {
		view.Zoom = 1
	}
	cp.DrawSpace(a.space, &arenaDrawer{screen: screen, view: view})
}

type arenaDrawer struct {
	screen *ebiten.Image
	view   DebugView
}

func (d *arenaDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawCircle(pos, radius, outline)
}

func (d *arenaDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *arenaDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
}

func (d *arenaDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		d.drawLine(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *arenaDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	half := size / 2 / d.view.Zoom
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *arenaDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *arenaDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *arenaDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	s, ok := shape.UserData.(*surface)
	switch {
	case !ok:
		return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1}
	case s.ramp:
		return cp.FColor{R: 1, G: 0.85, B: 0.2, A: 1}
	case s.layer == LayerWall:
		return cp.FColor{R: 0.4, G: 0.7, B: 1, A: 1}
	default:
		return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 1}
	}
}

func (d *arenaDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1}
}

func (d *arenaDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.1, B: 0.1, A: 1}
}

func (d *arenaDrawer) Data() interface{} {
	return nil
}

func (d *arenaDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *arenaDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	prev := cp.Vector{X: center.X + radius, Y: center.Y}
	for i := 1; i <= debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		cur := cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius}
		d.drawLine(prev, cur, c)
		prev = cur
	}
}

func (d *arenaDrawer) toScreen(v cp.Vector) (float64, float64) {
	x := d.view.ScreenX + (v.X-d.view.CenterX)*d.view.Zoom
	y := d.view.ScreenY - (v.Y-d.view.CenterZ)*d.view.Zoom
	return x, y
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
