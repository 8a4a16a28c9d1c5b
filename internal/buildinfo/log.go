package buildinfo

import (
	"fmt"
	"io"
)

// Log is the append-only build log stream supplied by the host. Operators
// parse some of its lines from CI output, so formats written here are part of
// the observable contract.
type Log struct {
	w io.Writer
}

// NewLog wraps a writer as a build log. A nil writer yields a discarding log.
func NewLog(w io.Writer) *Log {
	if w == nil {
		w = io.Discard
	}
	return &Log{w: w}
}

// Println writes one line to the build log.
func (l *Log) Println(args ...any) {
	fmt.Fprintln(l.w, args...)
}

// Printf writes one formatted line to the build log.
func (l *Log) Printf(format string, args ...any) {
	fmt.Fprintf(l.w, format+"\n", args...)
}
