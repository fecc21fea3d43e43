// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package process

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

// killProcessGroup terminates the child. Windows has no process group
// signal; wsl.exe tears down its own helpers when its parent dies.
func killProcessGroup(process *os.Process) {
	if process == nil {
		return
	}
	_ = process.Kill()
}
