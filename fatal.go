package bt

import "github.com/sirupsen/logrus"

// fatalLog is the logger used for programmer-error diagnostics. It is the
// idiomatic stand-in for the original engine's GUARANTEE_OR_DIE /
// ERROR_AND_DIE assert-and-abort macros: logrus.Fatal logs the structured
// diagnostic and then terminates the process, matching spec §7's
// propagation policy for invariant violations.
var fatalLog logrus.FieldLogger = logrus.StandardLogger()

// SetFatalLogger overrides the logger used for unrecoverable invariant
// violations (NullChild during Tick, Undo on an unexecuted command, Recycle
// preconditions, ...). Hosts embedding the core in a larger process with its
// own structured logger should call this once at startup.
func SetFatalLogger(log logrus.FieldLogger) {
	if log != nil {
		fatalLog = log
	}
}

// guaranteeOrDie terminates the process with a diagnostic if cond is false.
// It must never be used for conditions a caller can reasonably trigger by
// passing bad (but not internally-inconsistent) input; those return errors.
func guaranteeOrDie(cond bool, format string, args ...interface{}) {
	if !cond {
		fatalLog.Fatalf(format, args...)
	}
}

// errorAndDie unconditionally terminates the process with a diagnostic; used
// where control flow has reached a state that is always a bug (e.g. a
// composite encountering a nil child entry mid-Tick).
func errorAndDie(format string, args ...interface{}) {
	fatalLog.Fatalf(format, args...)
}
