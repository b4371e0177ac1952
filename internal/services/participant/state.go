package participant

// State is where a Participant is in the key exchange.
type State int

const (
	// Unkeyed holds no session key.
	Unkeyed State = iota
	// Keyed holds exactly one session key and the peer it is scoped to.
	Keyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unkeyed:
		return "unkeyed"
	case Keyed:
		return "keyed"
	default:
		return "unknown"
	}
}
