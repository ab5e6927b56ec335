package sops

// Outcome classifies a sops exit code.
type Outcome int

const (
	Success Outcome = iota
	Unchanged
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Unchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// Classify maps an exit code to an Outcome.
func Classify(code int) Outcome {
	switch code {
	case 0:
		return Success
	case ExitFileUnchanged:
		return Unchanged
	default:
		return Failed
	}
}
