package ctree

import (
	"io"
	"log"
	"os"
)

// logger is package-level, like the teacher's own use of the stdlib log
// package in balanced.go — a single shared *log.Logger rather than a
// structured logging framework, since that is the ambient style this
// repository is grounded on.
var logger = log.New(os.Stderr, "ctree: ", 0)

// SetVerbose toggles whether ctree emits progress logging (sweep/merge/
// decompose phase transitions on large meshes). Mirrors balanced.go's
// logActive: by default the logger discards everything.
func SetVerbose(v bool) {
	if v {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(io.Discard)
	}
}

func init() {
	logger.SetOutput(io.Discard)
}
