package workout

import (
	"fmt"
	"strings"
)

// Mode selects how a session advances.
type Mode string

const (
	// ModeTimed advances on the engine's breathing and rest timers.
	ModeTimed Mode = "timed"
	// ModeManual advances only when the user completes a set.
	ModeManual Mode = "manual"
)

// AllModes lists the selectable modes.
var AllModes = []Mode{ModeTimed, ModeManual}

// ParseMode accepts "timed" (or the older "timer") and "manual".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "timed", "timer":
		return ModeTimed, nil
	case "manual":
		return ModeManual, nil
	default:
		return "", fmt.Errorf("unknown workout mode %q", s)
	}
}

func (m Mode) DisplayName() string {
	switch m {
	case ModeTimed:
		return "Timed"
	case ModeManual:
		return "Manual"
	default:
		return string(m)
	}
}
