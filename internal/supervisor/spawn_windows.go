//go:build windows

package supervisor

import (
	"syscall"

	"golang.org/x/sys/windows"
)

const exeSuffix = ".exe"

// detachedProcAttr starts the renderer in a new process group without a
// console window.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.CREATE_NO_WINDOW,
		HideWindow:    true,
	}
}
