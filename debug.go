package flipbook

// globalDebug enables diagnostic logging for conditions that are silently
// tolerated in release mode (empty sequences, unknown frame names). A plain
// bool, no atomics — flipbook is single-threaded.
var globalDebug bool

// SetDebug toggles debug logging. Off by default.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// Debug reports whether debug logging is enabled.
func Debug() bool {
	return globalDebug
}
