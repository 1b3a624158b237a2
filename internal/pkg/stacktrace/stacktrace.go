// Package stacktrace shortens goroutine stack dumps for logging.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

const internalMarker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a stack dump produced by runtime/debug.Stack, in call order.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "\t") {
			continue
		}

		loc := strings.TrimSpace(line)
		if sp := strings.IndexByte(loc, ' '); sp != -1 {
			loc = loc[:sp]
		}
		if !strings.Contains(loc, ".go:") {
			continue
		}

		idx := strings.Index(loc, internalMarker)
		if idx == -1 {
			continue
		}

		paths = append(paths, loc[idx+1:])
	}

	return paths
}
