package obj

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MapCamera follows a world point on the top-down map view. Positions are in
// world X/Z; Zoom is screen pixels per metre.
type MapCamera struct {
	PosX float64
	PosZ float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// half extents of the world in metres (0 means unbounded)
	halfW float64
	halfD float64
}

// NewMapCamera creates a camera for the given logical screen size and zoom.
func NewMapCamera(screenW, screenH int, zoom float64) *MapCamera {
	return &MapCamera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
}

// SetZoom updates the camera zoom.
func (c *MapCamera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *MapCamera) Zoom() float64 {
	return c.zoom
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *MapCamera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetWorldSize sets the world extent used to clamp the view.
func (c *MapCamera) SetWorldSize(width, depth float64) {
	c.halfW = width / 2
	c.halfD = depth / 2
}

func (c *MapCamera) SetSmooth(f float64) {
	if f < 0 {
		f = 0
	}
	c.smooth = f
}

// Update moves the camera toward the target. Call once per tick for consistent
// smoothing.
func (c *MapCamera) Update(target mgl64.Vec3) {
	if c.smooth <= 0 {
		c.PosX = target.X()
		c.PosZ = target.Z()
	} else {
		c.PosX += (target.X() - c.PosX) * c.smooth
		c.PosZ += (target.Z() - c.PosZ) * c.smooth
	}
	c.clampToWorld()
}

// SnapTo places the camera on the target immediately, e.g. after a level load.
func (c *MapCamera) SnapTo(target mgl64.Vec3) {
	c.PosX = target.X()
	c.PosZ = target.Z()
	c.clampToWorld()
}

func (c *MapCamera) clampToWorld() {
	if c.zoom <= 0 {
		return
	}
	viewHalfW := float64(c.screenW) / c.zoom / 2
	viewHalfD := float64(c.screenH) / c.zoom / 2
	if c.halfW > 0 {
		if viewHalfW >= c.halfW {
			c.PosX = 0
		} else {
			c.PosX = clamp(c.PosX, -c.halfW+viewHalfW, c.halfW-viewHalfW)
		}
	}
	if c.halfD > 0 {
		if viewHalfD >= c.halfD {
			c.PosZ = 0
		} else {
			c.PosZ = clamp(c.PosZ, -c.halfD+viewHalfD, c.halfD-viewHalfD)
		}
	}
}

// ToScreen maps a world point onto the screen; world Z points up.
func (c *MapCamera) ToScreen(p mgl64.Vec3) (float64, float64) {
	x := float64(c.screenW)/2 + (p.X()-c.PosX)*c.zoom
	y := float64(c.screenH)/2 - (p.Z()-c.PosZ)*c.zoom
	return math.Round(x), math.Round(y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
