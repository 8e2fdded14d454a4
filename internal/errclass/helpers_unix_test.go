//go:build unix

// SPDX-License-Identifier: GPL-3.0-or-later

package errclass_test

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func errConnRefused() error {
	return syscall.Errno(unix.ECONNREFUSED)
}
