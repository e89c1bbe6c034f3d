package launcher

// DebugSentinel disables output redirection so the router can be
// debugged interactively on the launcher's terminal.
const DebugSentinel = "--pdb"

// sentinelWindow is how many leading positional parameters are searched
// for the sentinel. The subcommand occupies the first position.
const sentinelWindow = 4

// HasDebugSentinel reports whether the sentinel appears in the first four
// positional parameters of the invocation (subcommand included).
func HasDebugSentinel(positional []string) bool {
	for i, arg := range positional {
		if i >= sentinelWindow {
			break
		}
		if arg == DebugSentinel {
			return true
		}
	}
	return false
}
