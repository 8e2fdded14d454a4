//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package errclass_test

import (
	"syscall"

	"golang.org/x/sys/windows"
)

func errConnRefused() error {
	return syscall.Errno(windows.WSAECONNREFUSED)
}
