// Package panichook installs the process-wide diagnostic for panics that
// are contained at the boundary. Installation happens at most once, no
// matter how many entry points trigger it.
package panichook

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Sink receives the diagnostic for one contained panic.
type Sink func(value any, stack []byte)

var (
	once      sync.Once
	installed atomic.Bool
	sink      atomic.Pointer[Sink]
	reports   atomic.Uint64
)

// Install registers s as the panic diagnostic and enables full tracebacks
// for unrecovered crashes. Only the first call has any effect; it reports
// whether this call did the installation. A nil sink logs through slog.
func Install(s Sink) bool {
	did := false
	once.Do(func() {
		if s == nil {
			s = logSink
		}
		sink.Store(&s)
		debug.SetTraceback("all")
		installed.Store(true)
		did = true
	})
	return did
}

// Installed reports whether Install has run.
func Installed() bool {
	return installed.Load()
}

// Report forwards a contained panic to the installed sink. Before
// installation it is a no-op.
func Report(value any, stack []byte) {
	p := sink.Load()
	if p == nil {
		return
	}
	reports.Add(1)
	(*p)(value, stack)
}

// Reports returns how many panics have been forwarded since start.
func Reports() uint64 {
	return reports.Load()
}

func logSink(value any, stack []byte) {
	slog.Error("ttlex: panic contained at boundary",
		"panic", fmt.Sprint(value),
		"stack", string(stack))
}
