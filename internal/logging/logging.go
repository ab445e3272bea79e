// Package logging wraps klog with per-component label prefixes so log lines
// identify which part of the daemon emitted them.
package logging

import (
	"fmt"

	"github.com/plan-systems/klog"
)

func init() {
	klog.InitFlags(nil)
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 20,
		UseColor:          true,
	})
}

// Flush drains buffered log output. Call before process exit.
func Flush() { klog.Flush() }

// Logger emits prefixed, leveled log lines for one component.
type Logger struct {
	prefix string
}

// NewLogger returns a logger labelled with the given component name.
func NewLogger(label string) Logger {
	return Logger{prefix: fmt.Sprintf("[%s] ", label)}
}

func (l Logger) Infof(format string, args ...any) {
	klog.InfoDepth(1, l.prefix, fmt.Sprintf(format, args...))
}

func (l Logger) Warnf(format string, args ...any) {
	klog.WarningDepth(1, l.prefix, fmt.Sprintf(format, args...))
}

func (l Logger) Errorf(format string, args ...any) {
	klog.ErrorDepth(1, l.prefix, fmt.Sprintf(format, args...))
}

// Fatalf logs and terminates the process. Reserved for startup failures;
// the serving path never calls it.
func (l Logger) Fatalf(format string, args ...any) {
	klog.FatalDepth(1, l.prefix, fmt.Sprintf(format, args...))
}
