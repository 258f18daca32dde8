package domain

// Phase tracks where a level instance is in its lifecycle.
type Phase int

const (
	PhaseInitializing Phase = iota // level loaded, nothing evaluated yet
	PhaseActive                    // at least one evaluation, not yet solved
	PhaseSolved                    // terminal; restarting means a new instance
)

// String returns the lowercase phase name used in API payloads and logs.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}
