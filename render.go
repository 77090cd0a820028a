package main

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/wallrunner/levels"
	"github.com/milk9111/wallrunner/physics"
	"golang.org/x/image/colornames"
)

// fovRayLength is the on-map length of the view cone edges, in metres.
const fovRayLength = 4

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	lvl := g.arena.Level()
	for _, b := range lvl.Blocks {
		c := colornames.Olivedrab
		if b.Kind == levels.KindWall {
			c = colornames.Steelblue
		}
		g.fillBox(screen, b.Min.X(), b.Min.Z(), b.Max.X(), b.Max.Z(), c)
	}
	for _, r := range lvl.Ramps {
		g.fillBox(screen, r.Min.X(), r.Min.Z(), r.Max.X(), r.Max.Z(), colornames.Sandybrown)
	}

	if g.debug {
		g.arena.DebugDraw(screen, physics.DebugView{
			CenterX: g.camera.PosX,
			CenterZ: g.camera.PosZ,
			ScreenX: baseWidth / 2,
			ScreenY: baseHeight / 2,
			Zoom:    g.camera.Zoom(),
		})
	}

	g.drawPlayer(screen)
}

func (g *Game) fillBox(screen *ebiten.Image, minX, minZ, maxX, maxZ float64, c color.Color) {
	x0, y0 := g.camera.ToScreen(mgl64.Vec3{minX, 0, maxZ})
	x1, y1 := g.camera.ToScreen(mgl64.Vec3{maxX, 0, minZ})
	vector.FillRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), c, false)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.player
	cx64, cy64 := g.camera.ToScreen(p.Position())
	cx, cy := float32(cx64), float32(cy64)
	zoom := float32(g.camera.Zoom())
	r := float32(p.Body.Scale().X()) * 0.5 * zoom

	body := colornames.Orange
	if p.Controller.IsWallRunning() {
		body = colornames.Gold
	} else if p.Controller.Movement().Posture().Crouched() {
		body = colornames.Coral
	}

	var path vector.Path
	path.Arc(cx, cy, r, 0, 2*math32.Pi, vector.Clockwise)
	path.Close()
	var cs ebiten.ColorScale
	cs.ScaleWithColor(body)
	vector.FillPath(screen, &path, nil, &vector.DrawPathOptions{AntiAlias: true, ColorScale: cs})

	// View cone. World Z is screen up, so a heading of yaw maps to
	// (sin yaw, -cos yaw) on screen.
	yaw := float32(p.Look.Yaw())
	half := float32(p.Look.FieldOfView()) * 0.5 * math32.Pi / 180
	length := fovRayLength * zoom
	for _, a := range []float32{yaw - half, yaw + half} {
		vector.StrokeLine(screen, cx, cy, cx+math32.Sin(a)*length, cy-math32.Cos(a)*length, 1, colornames.Lightgray, true)
	}
	vector.StrokeLine(screen, cx, cy, cx+math32.Sin(yaw)*r*1.6, cy-math32.Cos(yaw)*r*1.6, 2, colornames.White, true)

	// Push-off direction of the wall being run on.
	if n, ok := p.Controller.WallRun().WallNormal(); ok && p.Controller.IsWallRunning() {
		nx, nz := float32(n.X()), float32(n.Z())
		vector.StrokeLine(screen, cx, cy, cx+nx*length*0.5, cy-nz*length*0.5, 2, colornames.Gold, true)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.player.Controller.State()
	view := g.player.Look.ViewDir()
	slope := g.player.Controller.Movement().SlopeNormal()
	lines := []string{
		fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		fmt.Sprintf("mode: %s  posture: %s  wall: %s", s.Mode, s.Posture, s.Wall),
		fmt.Sprintf("speed: %.2f  fov: %.1f  tilt: %.1f", s.Speed, s.FOV, s.Tilt),
		fmt.Sprintf("pos: (%.2f, %.2f, %.2f)", s.Position.X(), s.Position.Y(), s.Position.Z()),
		fmt.Sprintf("vel: (%.2f, %.2f, %.2f)", s.Velocity.X(), s.Velocity.Y(), s.Velocity.Z()),
		fmt.Sprintf("pitch: %.1f  roll: %.1f  view: (%.2f, %.2f, %.2f)", g.player.Look.PitchDegrees(), g.player.Look.RollDegrees(), view.X(), view.Y(), view.Z()),
		fmt.Sprintf("slope: (%.2f, %.2f, %.2f)  queued: %d", slope.X(), slope.Y(), slope.Z(), g.player.Controller.PendingEvents()),
		fmt.Sprintf("mass: %.1f  gravity: %.2f", g.player.Body.Mass(), g.arena.Gravity()),
	}
	if g.driver != nil {
		lines = append(lines, fmt.Sprintf("script tick: %d", g.driver.Tick()))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8, 8+i*16)
	}
}

func drawPaused(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, baseWidth, baseHeight, color.RGBA{A: 160}, false)
	ebitenutil.DebugPrintAt(screen, "paused: esc to resume, F12 to quit", baseWidth/2-100, baseHeight/2)
}
