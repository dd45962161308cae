package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RendererBinary is the renderer executable name without extension.
const RendererBinary = "micoverlayd"

// ExecLauncher spawns the renderer binary detached from the caller's
// session and console. An empty Path is resolved with FindRendererBinary on
// each launch.
type ExecLauncher struct {
	Path string
	Args []string
}

// NewRendererLauncher returns a launcher that points the renderer at dataDir.
func NewRendererLauncher(dataDir string) *ExecLauncher {
	return &ExecLauncher{Args: []string{"-data", dataDir}}
}

// Launch starts the process. A goroutine waits on it so that an early exit
// is observed and the child is reaped while this process lives.
func (l *ExecLauncher) Launch() (int, <-chan struct{}, error) {
	path := l.Path
	if path == "" {
		var err error
		if path, err = FindRendererBinary(); err != nil {
			return 0, nil, err
		}
	}
	cmd := exec.Command(path, l.Args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, nil, err
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()
	return cmd.Process.Pid, exited, nil
}

// FindRendererBinary locates the micoverlayd binary.
func FindRendererBinary() (string, error) {
	name := RendererBinary + exeSuffix

	// Try PATH first
	if path, err := exec.LookPath(RendererBinary); err == nil {
		return path, nil
	}

	// Try next to the current executable
	if execPath, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	// Try build directory
	candidate := filepath.Join(".", "build", name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", RendererBinary)
}
