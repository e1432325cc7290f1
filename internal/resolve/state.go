package resolve

// State is a step of the resolution state machine.
type State int

const (
	// Checking is the initial state; Check probes the selection from here.
	Checking State = iota
	// Clean means every selected path is readable or absent.
	Clean
	// Blocked means at least one selected path cannot be read.
	Blocked
	// ChoosingStrategy waits for the user to pick a Strategy.
	ChoosingStrategy
	// Escalating is re-running the program with elevated privileges.
	Escalating
	// CommandsGenerated has produced remediation commands.
	CommandsGenerated
	// Delegated means the elevated run completed the backup.
	Delegated
	// Aborted ends the run without a backup.
	Aborted
)

var stateNames = map[State]string{
	Checking:          "checking",
	Clean:             "clean",
	Blocked:           "blocked",
	ChoosingStrategy:  "choosing-strategy",
	Escalating:        "escalating",
	CommandsGenerated: "commands-generated",
	Delegated:         "delegated",
	Aborted:           "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Clean || s == Delegated || s == Aborted
}

// Strategy is the user's answer to a blocked probe.
type Strategy int

const (
	// StrategyEscalate re-runs the program with elevated privileges.
	StrategyEscalate Strategy = iota + 1
	// StrategyCommands prints or copies commands that grant read access.
	StrategyCommands
	// StrategyRetry probes again.
	StrategyRetry
	// StrategyAbort gives up without a backup.
	StrategyAbort
)

var strategyNames = map[Strategy]string{
	StrategyEscalate: "escalate",
	StrategyCommands: "commands",
	StrategyRetry:    "retry",
	StrategyAbort:    "abort",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// Choice is a Strategy plus the state needed to resume after it.
type Choice struct {
	Strategy Strategy
	Resume   Resume
}
