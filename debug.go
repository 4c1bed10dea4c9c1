package aurora

// globalDebug gates assertf (§7's Programming error-kind policy): true in
// development builds so contract violations panic loudly, false in release
// builds so the engine degrades instead of crashing a running frame.
var globalDebug = false

// SetDebug toggles globalDebug. Host applications call this once at
// startup; library code never flips it mid-run.
func SetDebug(enabled bool) {
	globalDebug = enabled
}
