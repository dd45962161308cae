// Package supervisor manages the renderer process lifecycle from the
// configuration process: spawn, liveness probe, stop and restart. The only
// shared state is the renderer PID recorded in the settings document.
package supervisor

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/micoverlay/micoverlay/internal/models"
)

// State is the supervisor's view of the renderer.
type State int

// Renderer states.
const (
	Stopped State = iota
	Starting
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrAlreadyRunning is returned by Start when a live renderer is recorded.
	ErrAlreadyRunning = errors.New("overlay is already running")

	// ErrNotRunning is returned by Stop when no renderer PID is recorded.
	ErrNotRunning = errors.New("overlay is not running")

	// ErrExitedEarly is returned by Start when the renderer exits during the
	// startup grace period.
	ErrExitedEarly = errors.New("overlay exited during startup")

	// ErrStopTimeout is returned by Stop when the renderer does not exit in
	// time. The PID stays recorded.
	ErrStopTimeout = errors.New("overlay did not exit in time")
)

// Launcher starts a detached renderer. exited is closed once the process
// has exited and been reaped; it may be nil when the caller cannot observe
// the exit.
type Launcher interface {
	Launch() (pid int, exited <-chan struct{}, err error)
}

// Prober inspects and signals OS processes.
type Prober interface {
	// Alive reports whether pid is a live, non-zombie process.
	Alive(pid int) bool
	// Terminate sends the OS stop request to pid.
	Terminate(pid int) error
}

// PIDStore persists the renderer PID inside the settings document.
type PIDStore interface {
	LoadSettings() (*models.Settings, error)
	UpdateSettings(fn func(*models.Settings) error) (*models.Settings, error)
}

// Options bound the blocking parts of Start and Stop.
type Options struct {
	StopTimeout  time.Duration // how long Stop waits for a confirmed exit
	StartGrace   time.Duration // how long Start watches for an immediate exit
	PollInterval time.Duration // liveness polling interval while stopping
}

// DefaultOptions returns the production timings.
func DefaultOptions() Options {
	return Options{
		StopTimeout:  5 * time.Second,
		StartGrace:   300 * time.Millisecond,
		PollInterval: 100 * time.Millisecond,
	}
}

// Supervisor starts, stops and probes the renderer. Start, Stop and the
// restart variants are serialized: an overlapping call waits for the one in
// progress, so a start never races a stop that is still draining.
type Supervisor struct {
	store    PIDStore
	launcher Launcher
	prober   Prober
	opts     Options

	opMu sync.Mutex

	mu    sync.Mutex
	state State // only Starting/Stopping are tracked; the rest is probed
}

// New creates a supervisor.
func New(store PIDStore, launcher Launcher, prober Prober, opts Options) *Supervisor {
	def := DefaultOptions()
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = def.StopTimeout
	}
	if opts.StartGrace < 0 {
		opts.StartGrace = 0
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = def.PollInterval
	}
	return &Supervisor{
		store:    store,
		launcher: launcher,
		prober:   prober,
		opts:     opts,
	}
}

func (s *Supervisor) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// State returns the current state. Outside of an operation in progress it
// is derived from the liveness probe.
func (s *Supervisor) State() State {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	if st == Starting || st == Stopping {
		return st
	}
	if running, err := s.IsRunning(); err == nil && running {
		return Running
	}
	return Stopped
}

// PID returns the recorded renderer PID, or 0.
func (s *Supervisor) PID() (int, error) {
	settings, err := s.store.LoadSettings()
	if err != nil {
		return 0, err
	}
	return settings.PID(), nil
}

// IsRunning reports whether the recorded renderer is alive. A recorded PID
// that is absent, exited or a zombie is cleared.
func (s *Supervisor) IsRunning() (bool, error) {
	pid, err := s.PID()
	if err != nil {
		return false, err
	}
	if pid == 0 {
		return false, nil
	}
	if s.prober.Alive(pid) {
		return true, nil
	}
	log.Printf("[supervisor] Recorded overlay PID %d is gone, clearing it", pid)
	if err := s.clearPID(pid); err != nil {
		return false, err
	}
	return false, nil
}

// clearPID removes pid from the settings document unless another PID has
// been recorded since.
func (s *Supervisor) clearPID(pid int) error {
	_, err := s.store.UpdateSettings(func(st *models.Settings) error {
		if st.PID() == pid {
			st.OverlayPID = nil
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear overlay pid: %w", err)
	}
	return nil
}

func (s *Supervisor) recordPID(pid int) error {
	_, err := s.store.UpdateSettings(func(st *models.Settings) error {
		st.OverlayPID = &pid
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record overlay pid: %w", err)
	}
	return nil
}

// Start spawns the renderer. It is valid only while stopped.
func (s *Supervisor) Start() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.startLocked()
}

// Stop terminates the renderer and waits for its exit. A recorded renderer
// that is already gone counts as stopped.
func (s *Supervisor) Stop() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.stopLocked()
}

// Restart stops the renderer if it is running and starts a new one.
func (s *Supervisor) Restart() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	running, err := s.IsRunning()
	if err != nil {
		return err
	}
	if running {
		if err := s.stopLocked(); err != nil {
			return err
		}
	}
	return s.startLocked()
}

// RestartIfRunning restarts the renderer only when it is running, so that it
// picks up configuration it reads at startup. It reports whether a restart
// happened.
func (s *Supervisor) RestartIfRunning() (bool, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	running, err := s.IsRunning()
	if err != nil || !running {
		return false, err
	}
	if err := s.stopLocked(); err != nil {
		return false, err
	}
	if err := s.startLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Supervisor) startLocked() error {
	running, err := s.IsRunning()
	if err != nil {
		return err
	}
	if running {
		return ErrAlreadyRunning
	}

	s.setState(Starting)
	defer s.setState(Stopped)

	pid, exited, err := s.launcher.Launch()
	if err != nil {
		return fmt.Errorf("failed to start overlay: %w", err)
	}
	log.Printf("[supervisor] Started overlay (PID %d)", pid)

	if err := s.recordPID(pid); err != nil {
		if termErr := s.prober.Terminate(pid); termErr != nil {
			log.Printf("[supervisor] Failed to terminate unrecorded overlay PID %d: %v", pid, termErr)
		}
		return err
	}

	if s.opts.StartGrace > 0 {
		timer := time.NewTimer(s.opts.StartGrace)
		defer timer.Stop()
		select {
		case <-exited:
		case <-timer.C:
		}
	}
	if !s.prober.Alive(pid) {
		log.Printf("[supervisor] Overlay PID %d exited during startup", pid)
		if err := s.clearPID(pid); err != nil {
			return err
		}
		return ErrExitedEarly
	}
	return nil
}

func (s *Supervisor) stopLocked() error {
	pid, err := s.PID()
	if err != nil {
		return err
	}
	if pid == 0 {
		return ErrNotRunning
	}
	if !s.prober.Alive(pid) {
		return s.clearPID(pid)
	}

	s.setState(Stopping)
	defer s.setState(Stopped)

	if err := s.prober.Terminate(pid); err != nil {
		return fmt.Errorf("failed to stop overlay (PID %d): %w", pid, err)
	}

	deadline := time.Now().Add(s.opts.StopTimeout)
	for s.prober.Alive(pid) {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w (PID %d)", ErrStopTimeout, pid)
		}
		time.Sleep(s.opts.PollInterval)
	}

	log.Printf("[supervisor] Stopped overlay (PID %d)", pid)
	return s.clearPID(pid)
}
