// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package process

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// isolateProcessGroup puts the child in its own process group so a
// kill reaches every process it spawned.
func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup sends SIGKILL to the child's whole process group.
// ESRCH (group already gone) is not an error worth reporting.
func killProcessGroup(process *os.Process) {
	if process == nil {
		return
	}
	if err := unix.Kill(-process.Pid, unix.SIGKILL); err != nil {
		_ = process.Kill()
	}
}
