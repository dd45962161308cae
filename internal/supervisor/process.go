package supervisor

import (
	"errors"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessProber checks the OS process table through gopsutil.
type ProcessProber struct{}

// Alive reports whether pid exists and is not a zombie.
func (ProcessProber) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return false
	}
	running, err := p.IsRunning()
	if err != nil || !running {
		return false
	}
	statuses, err := p.Status()
	if err != nil {
		// Status is unsupported on some platforms; existence is enough.
		return true
	}
	for _, st := range statuses {
		if st == process.Zombie {
			return false
		}
	}
	return true
}

// Terminate asks pid to exit (SIGTERM on unix). A process that no longer
// exists is not an error.
func (ProcessProber) Terminate(pid int) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return nil
		}
		return err
	}
	return p.Terminate()
}
