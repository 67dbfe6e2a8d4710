package questionnaire

import (
	"fmt"
	"os"
)

// Reporter receives non-fatal warnings: per-row catalog defects and
// recoverable operational errors. Engine behavior never depends on what the
// reporter does with them.
type Reporter interface {
	Warnf(format string, args ...any)
}

// StderrReporter writes warnings to standard error.
type StderrReporter struct{}

func (StderrReporter) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}

// NopReporter discards warnings.
type NopReporter struct{}

func (NopReporter) Warnf(string, ...any) {}
