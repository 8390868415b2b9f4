package command

import "fmt"

// TrustMode is the execution trust level a command was defined under.
// Higher values are more trusted. The resolver compares a candidate's
// defining mode against the session's current mode and suppresses
// commands that would escalate.
type TrustMode int

const (
	// TrustRestricted is the constrained mode untrusted input runs in.
	TrustRestricted TrustMode = iota
	// TrustFull is the unconstrained mode.
	TrustFull
)

func (m TrustMode) String() string {
	switch m {
	case TrustRestricted:
		return "restricted"
	case TrustFull:
		return "full"
	default:
		return fmt.Sprintf("trustmode(%d)", int(m))
	}
}

// ParseTrustMode converts a configuration string into a TrustMode.
func ParseTrustMode(s string) (TrustMode, error) {
	switch s {
	case "restricted":
		return TrustRestricted, nil
	case "full":
		return TrustFull, nil
	default:
		return TrustRestricted, fmt.Errorf("unknown trust mode %q", s)
	}
}
