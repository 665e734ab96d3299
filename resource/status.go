package resource

// Status is the lifecycle position of a resource.
type Status int

const (
	// StatusIdle means no call has been made since construction or Reset.
	StatusIdle Status = iota
	// StatusLoading means at least one call is in flight.
	StatusLoading
	// StatusSucceeded means the last settled call succeeded.
	StatusSucceeded
	// StatusFailed means the last settled call failed.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Settled reports whether s is succeeded or failed.
func (s Status) Settled() bool {
	return s == StatusSucceeded || s == StatusFailed
}
