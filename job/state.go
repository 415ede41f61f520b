package job

import "fmt"

// State represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	(none)     -> Pending        (enqueue)
//	Pending    -> Processing     (TryClaim)
//	Processing -> Completed
//	Processing -> Pending        (retry, attempts < max_retries)
//	Processing -> Dead           (attempts == max_retries)
//	Dead       -> Pending        (RetryFromDLQ)
//
// Completed and Dead are terminal. Failed is reserved for a future
// terminal-but-distinct-from-DLQ outcome; the current lifecycle never
// produces it (see the retry policy in package lifecycle).
type State uint8

const (
	// Unknown is the zero value and never assigned to a persisted Job.
	Unknown State = iota
	Pending
	Processing
	Completed
	Failed
	Dead
)

var names = [...]string{"unknown", "pending", "processing", "completed", "failed", "dead"}

func (s State) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// ParseState converts a canonical lowercase name into a State.
//
// An error is returned for unrecognized names.
func ParseState(s string) (State, error) {
	for i, name := range names {
		if name == s {
			return State(i), nil
		}
	}
	return Unknown, fmt.Errorf("job: unknown state %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Terminal reports whether s is a terminal state (Completed or Dead).
func (s State) Terminal() bool {
	return s == Completed || s == Dead
}
