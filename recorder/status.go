package recorder

const (
	Initialised = iota
	Recording
	Backlogged
	Stopped
)

func Status(status int) string {
	switch status {
	case Initialised:
		return "Initialised"
	case Recording:
		return "Recording"
	case Backlogged:
		return "Backlogged"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
