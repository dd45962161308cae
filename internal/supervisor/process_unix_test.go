//go:build !windows

package supervisor

import (
	"os/exec"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestProcessProberAliveTracksRealProcess(t *testing.T) {
	cmd := exec.Command("sleep", "0.3")
	if err := cmd.Start(); err != nil {
		t.Skipf("sleep unavailable: %v", err)
	}
	pid := cmd.Process.Pid
	var p ProcessProber

	if !p.Alive(pid) {
		t.Fatal("running child reported dead")
	}

	// Not waited on yet: once sleep exits it lingers as a zombie.
	if !waitFor(t, 5*time.Second, func() bool { return !p.Alive(pid) }) {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		t.Fatal("zombie child reported alive")
	}

	if err := cmd.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if p.Alive(pid) {
		t.Error("reaped child reported alive")
	}
	if p.Alive(0) || p.Alive(-1) {
		t.Error("non-positive PID reported alive")
	}
}

func TestExecLauncherDetachesAndTerminates(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skipf("sleep unavailable: %v", err)
	}
	l := &ExecLauncher{Path: path, Args: []string{"30"}}
	var p ProcessProber

	pid, exited, err := l.Launch()
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	t.Cleanup(func() { _ = unix.Kill(pid, unix.SIGKILL) })

	if !p.Alive(pid) {
		t.Fatal("launched process reported dead")
	}
	sid, err := unix.Getsid(pid)
	if err != nil {
		t.Fatalf("Getsid: %v", err)
	}
	if sid != pid {
		t.Errorf("session id = %d, want the child's own session %d", sid, pid)
	}

	if err := p.Terminate(pid); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	select {
	case <-exited:
	case <-time.After(5 * time.Second):
		t.Fatal("exited channel not closed after Terminate")
	}
	if p.Alive(pid) {
		t.Error("terminated process reported alive")
	}
	if err := p.Terminate(pid); err != nil {
		t.Errorf("Terminate of a gone process = %v, want nil", err)
	}
}
