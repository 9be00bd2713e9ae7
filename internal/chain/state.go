package chain

// State is the phase a coinbase run is in.
type State byte

// Coinbase run states
const (
	Idle State = iota
	Collecting
	Computing
	Staged
	Committed
	Reverted
)

var stateNames = map[State]string{
	Idle:       "Idle",
	Collecting: "Collecting",
	Computing:  "Computing",
	Staged:     "Staged",
	Committed:  "Committed",
	Reverted:   "Reverted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}
