//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// detectTerminalWidth returns the stdout column count, or 0 when stdout is
// not a terminal and COLUMNS is unset.
func detectTerminalWidth() int {
	if n := columnsEnv(); n > 0 {
		return n
	}
	return ttyWidth(os.Stdout)
}

func ttyWidth(f *os.File) int {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws == nil {
		return 0
	}
	return int(ws.Col)
}
