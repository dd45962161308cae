// Package main is the entry point for the micoverlayd renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/micoverlay/micoverlay/internal/assets"
	"github.com/micoverlay/micoverlay/internal/config"
	daemoncmd "github.com/micoverlay/micoverlay/internal/daemon/cmd"
	"github.com/micoverlay/micoverlay/internal/daemon/keyhook"
	"github.com/micoverlay/micoverlay/internal/daemon/overlay"
	"github.com/micoverlay/micoverlay/internal/daemon/tray"
	"github.com/micoverlay/micoverlay/internal/daemon/watcher"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/supervisor"
)

func main() {
	// Parse flags
	dataDir := flag.String("data", "", "Data directory (default ~/.micoverlay)")
	foreground := flag.Bool("foreground", false, "Run in foreground (for development)")
	screenFlag := flag.String("screen", overlay.DefaultScreen.String(), "Screen size as WIDTHxHEIGHT")
	version := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *version {
		daemoncmd.PrintVersion(os.Stdout, "micoverlayd")
		return
	}

	dir := *dataDir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDataDir(); err != nil {
			log.Fatalf("Failed to resolve data directory: %v", err)
		}
	}

	screen, err := overlay.ParseScreen(*screenFlag)
	if err != nil {
		log.Fatal(err)
	}

	if err := config.EnsureDataDir(dir); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logFile, err := config.OpenLog(dir, config.OverlayLogFileName, "[micoverlayd] ")
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logFile.Close()
	if *foreground {
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	}

	store := config.NewStore(dir)

	// Check if another renderer is already running
	if pid, running := otherInstance(store); running {
		log.Fatalf("Overlay already running (PID %d)", pid)
	}

	if err := assets.CleanStaging(store.IconsDir(), assets.StaleStagingAge); err != nil {
		log.Printf("Failed to clean staged icons: %v", err)
	}

	if *foreground {
		log.Println("Running in foreground mode (no system tray)")
		runForeground(store, screen)
	} else {
		log.Println("Running with system tray")
		runWithTray(store, screen)
	}
}

// otherInstance reports a live renderer recorded in settings that is not
// this process.
func otherInstance(store *config.Store) (int, bool) {
	settings, err := store.LoadSettings()
	if err != nil {
		log.Printf("Failed to read settings: %v", err)
		return 0, false
	}
	pid := settings.PID()
	if pid == 0 || pid == os.Getpid() {
		return 0, false
	}
	return pid, supervisor.ProcessProber{}.Alive(pid)
}

// recordPID claims the PID slot when the renderer was started by hand.
func recordPID(store *config.Store) {
	self := os.Getpid()
	_, err := store.UpdateSettings(func(s *models.Settings) error {
		if s.PID() != self {
			s.OverlayPID = &self
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to record PID: %v", err)
	}
}

// clearPID releases the PID slot if it still names this process.
func clearPID(store *config.Store) {
	self := os.Getpid()
	_, err := store.UpdateSettings(func(s *models.Settings) error {
		if s.PID() == self {
			s.OverlayPID = nil
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to clear PID: %v", err)
	}
}

// services are the background loops that feed the overlay.
type services struct {
	cancel  context.CancelFunc
	watcher *watcher.Watcher
}

func startServices(app *overlay.App, store *config.Store) (*services, error) {
	if err := app.Load(); err != nil {
		return nil, err
	}
	recordPID(store)

	ctx, cancel := context.WithCancel(context.Background())
	svc := &services{cancel: cancel}

	go app.Matcher().Run(ctx, keyhook.Listen(ctx))

	w, err := watcher.New(store.Dir())
	if err != nil {
		log.Printf("Failed to create watcher: %v", err)
		return svc, nil
	}
	if err := w.Start(); err != nil {
		log.Printf("Failed to start watcher: %v", err)
		w.Stop()
		return svc, nil
	}
	svc.watcher = w
	go app.Watch(ctx, w.Events())

	log.Printf("Overlay started (PID %d)", os.Getpid())
	return svc, nil
}

func (s *services) stop() {
	if s == nil {
		return
	}
	s.cancel()
	if s.watcher != nil {
		s.watcher.Stop()
	}
}

// runForeground renders frames to the log, blocking on signals.
func runForeground(store *config.Store, screen overlay.Screen) {
	app := overlay.NewApp(store, &overlay.LogRenderer{}, screen)

	svc, err := startServices(app, store)
	if err != nil {
		log.Fatalf("Failed to start overlay: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	svc.stop()
	clearPID(store)
	fmt.Println("Overlay stopped")
}

// runWithTray runs the overlay with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(store *config.Store, screen overlay.Screen) {
	app := overlay.NewApp(store, tray.Renderer{}, screen)
	var svc *services

	onStart := func() {
		var err error
		svc, err = startServices(app, store)
		if err != nil {
			log.Printf("Failed to start overlay: %v", err)
			tray.Quit()
			return
		}

		// Handle OS signals: quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		svc.stop()
		clearPID(store)
		fmt.Println("Overlay stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(&trayState{app: app}, onStart, onExit)
}

// trayState exposes the overlay to the tray menu.
type trayState struct {
	app *overlay.App
}

func (s *trayState) Settings() models.Settings {
	return s.app.Settings()
}

func (s *trayState) Toggle(name string) error {
	return s.app.Toggle(name)
}

func (s *trayState) RequestShutdown() {
	log.Println("Shutdown requested from tray")
	tray.Quit()
}
