package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code so deferred flushes happen before exit.
func run(args []string, logOut io.Writer) (code int) {
	fs := flag.NewFlagSet("wallrunner", flag.ContinueOnError)
	fs.SetOutput(logOut)
	levelName := fs.String("level", "", "level name in levels/ (basename, .json optional)")
	tuning := fs.String("tuning", "", "tuning file in prefabs/ (default tuning.yaml)")
	scriptName := fs.String("script", "", "drive the player from a scenario script in prefabs/scripts instead of the keyboard")
	debug := fs.Bool("debug", false, "draw physics shapes")
	watch := fs.Bool("watch", false, "hot reload tuning and scripts from prefabs/")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	baseMonitor := fs.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(logOut)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.WithError(err).Warn("unknown log level, using info")
	}
	log := logrus.NewEntry(logger)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.WithError(err).Warn("sentry disabled")
		}
	}
	defer sentry.Flush(2 * time.Second)
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic: %v", err)
			sentry.CurrentHub().Recover(err)
			code = 1
		}
	}()

	if os.Getenv("PPROF_ENABLED") != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	game, err := NewGame(GameOptions{
		Level:  *levelName,
		Tuning: *tuning,
		Script: *scriptName,
		Debug:  *debug,
		Watch:  *watch,
		Log:    log,
	})
	if err != nil {
		log.WithError(err).Error("start game")
		sentry.CaptureException(err)
		return 1
	}
	defer game.Close()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("wallrunner")
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
		return 1
	}
	return 0
}
