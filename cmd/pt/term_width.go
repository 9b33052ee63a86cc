package main

import (
	"os"
	"strconv"
	"strings"
)

// columnsEnv reads a positive COLUMNS value, or 0.
func columnsEnv() int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS")))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
