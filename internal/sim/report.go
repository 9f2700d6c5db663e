// Package sim exposes the engine's entry points: historical backtest, live
// simulation, and a single-shot design-storm demo. Entry points return a
// report with a status and an accumulated textual log instead of failing the
// hosting process; a malformed dataset or a degenerate cycle yields an
// "Error" report, never a panic.
package sim

import (
	"fmt"
	"strings"
)

// Report statuses. Kept as the literal strings the operator tooling greps
// for.
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// runLog accumulates the human-readable transcript of a run.
type runLog struct {
	b strings.Builder
}

func (l *runLog) printf(format string, args ...any) {
	fmt.Fprintf(&l.b, format, args...)
	l.b.WriteByte('\n')
}

func (l *runLog) String() string { return l.b.String() }
