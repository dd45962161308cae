//go:build !windows

package supervisor

import "syscall"

const exeSuffix = ""

// detachedProcAttr starts the renderer in its own session so it outlives
// the configuration process and has no controlling terminal.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
