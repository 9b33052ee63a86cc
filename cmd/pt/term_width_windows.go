//go:build windows

package main

// detectTerminalWidth only honors COLUMNS on Windows.
func detectTerminalWidth() int {
	return columnsEnv()
}
