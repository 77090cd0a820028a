package main

import (
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/wallrunner/levels"
	"github.com/milk9111/wallrunner/locomotion"
	"github.com/milk9111/wallrunner/obj"
	"github.com/milk9111/wallrunner/physics"
	"github.com/milk9111/wallrunner/prefabs"
	"github.com/milk9111/wallrunner/script"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	frameDt    = 1.0 / 60.0
	mapZoom    = 12
	// killPlaneDepth is how far below the floor the player may fall before a
	// respawn.
	killPlaneDepth = 20
)

type GameOptions struct {
	Level  string
	Tuning string
	Script string
	Debug  bool
	Watch  bool
	Log    *logrus.Entry
}

type Game struct {
	frames int

	input  *Input
	arena  *physics.Arena
	player *obj.Player
	camera *obj.MapCamera
	driver *script.Driver

	debug  bool
	paused bool

	watcher  *prefabs.Watcher
	reloader *prefabs.Reloader
	tuning   string

	log *logrus.Entry
}

func NewGame(opts GameOptions) (*Game, error) {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	cfg, err := prefabs.LoadTuning(opts.Tuning)
	if err != nil {
		return nil, err
	}

	g := &Game{
		input:  NewInput(),
		arena:  physics.NewArena(lvl),
		camera: obj.NewMapCamera(baseWidth, baseHeight, mapZoom),
		debug:  opts.Debug,
		tuning: opts.Tuning,
		log:    log,
	}
	if g.tuning == "" {
		g.tuning = prefabs.DefaultTuning
	}

	g.player, err = obj.NewPlayer(g.arena, cfg, log.WithField("player", lvl.Name),
		locomotion.WithModeObserver(func(from, to locomotion.Mode) {
			log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("mode")
		}))
	if err != nil {
		return nil, err
	}

	if opts.Script != "" {
		src, err := prefabs.LoadScript(opts.Script)
		if err != nil {
			return nil, err
		}
		g.driver, err = script.New(opts.Script, src, log)
		if err != nil {
			return nil, err
		}
	}

	g.camera.SetWorldSize(lvl.Size[0], lvl.Size[1])
	g.camera.SnapTo(g.player.Position())

	if opts.Watch {
		if err := g.startWatch(opts.Script); err != nil {
			// hot reload is optional; keep playing without it
			log.WithError(err).Warn("watch disabled")
		}
	}
	return g, nil
}

func (g *Game) startWatch(scriptName string) error {
	w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
	if err != nil {
		return err
	}
	g.watcher = w
	g.reloader = prefabs.NewReloader(os.ReadFile, g.log)

	tuningPath := prefabs.TuningPath(g.tuning)
	g.reloader.Handle(".yaml", func(path string, data []byte) error {
		if filepath.Clean(path) != tuningPath {
			return nil
		}
		cfg, err := prefabs.DecodeTuning(data)
		if err != nil {
			return err
		}
		return g.player.Controller.SetConfig(cfg)
	})

	watched := []string{tuningPath}
	if scriptName != "" {
		scriptPath := prefabs.ScriptPath(scriptName)
		watched = append(watched, scriptPath)
		g.reloader.Handle(".tengo", func(path string, data []byte) error {
			if g.driver == nil || filepath.Clean(path) != scriptPath {
				return nil
			}
			return g.driver.Reload(data)
		})
	}

	// A save that leaves the loaded content unchanged is not a reload.
	for _, path := range watched {
		if err := g.reloader.PrimeFile(path); err != nil {
			g.log.WithError(err).Debug("no disk copy to prime")
		}
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollReloads()

	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}
	if g.input.Pause {
		g.paused = !g.paused
		if g.paused {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		}
	}
	if g.input.ToggleDebug {
		g.debug = !g.debug
	}
	if g.paused {
		return nil
	}
	if g.input.Respawn {
		g.player.Respawn()
	}

	in, events := g.input.State, g.input.Events
	if g.driver != nil {
		var err error
		in, events, err = g.driver.Next(g.player.Controller.State())
		if err != nil {
			g.log.WithError(err).Error("script stopped")
			g.driver = nil
			in, events = g.input.State, g.input.Events
		}
	}
	for _, e := range events {
		g.player.Controller.Enqueue(e)
	}
	g.player.Update(frameDt, in)

	if g.player.Position().Y() < g.arena.Level().Floor-killPlaneDepth {
		g.log.Info("fell out of the level, respawning")
		g.player.Respawn()
	}
	g.camera.Update(g.player.Position())
	return nil
}

func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if _, err := g.reloader.Reload(path); err != nil {
				g.log.WithError(err).Warn("reload rejected")
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watch error")
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWorld(screen)
	g.drawHUD(screen)
	if g.paused {
		drawPaused(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

