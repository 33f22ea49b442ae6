package workout

import (
	"math"
	"time"
)

// Limits of the breathing settings surface.
const (
	MaxPhaseSeconds  = 10.0
	PhaseStepSeconds = 0.5
)

// BreathingPattern holds the duration in seconds of each breathing phase.
type BreathingPattern struct {
	Inhale  float64 `json:"inhale" yaml:"inhale" mapstructure:"inhale"`
	HoldIn  float64 `json:"holdIn" yaml:"hold_in" mapstructure:"hold_in"`
	Exhale  float64 `json:"exhale" yaml:"exhale" mapstructure:"exhale"`
	HoldOut float64 `json:"holdOut" yaml:"hold_out" mapstructure:"hold_out"`
}

// DefaultBreathingPattern is used when nothing else is configured.
var DefaultBreathingPattern = BreathingPattern{Inhale: 2, HoldIn: 1, Exhale: 2, HoldOut: 2}

// PatternSource returns the breathing pattern currently in effect. The engine
// calls it on every phase transition, so edits apply from the next phase on.
type PatternSource func() BreathingPattern

// Seconds returns the configured value for a breathing phase, 0 for rest.
func (p BreathingPattern) Seconds(phase Phase) float64 {
	switch phase {
	case PhaseInhale:
		return p.Inhale
	case PhaseHoldIn:
		return p.HoldIn
	case PhaseExhale:
		return p.Exhale
	case PhaseHoldOut:
		return p.HoldOut
	default:
		return 0
	}
}

// Duration converts the phase's seconds into a delay. Negative and NaN values
// come back as zero together with an *InvalidDurationError describing them.
func (p BreathingPattern) Duration(phase Phase) (time.Duration, error) {
	return secondsToDuration(string(phase), p.Seconds(phase))
}

// CycleDuration is the length of one full repetition.
func (p BreathingPattern) CycleDuration() time.Duration {
	var total time.Duration
	for _, phase := range BreathingPhases {
		d, _ := p.Duration(phase)
		if total > math.MaxInt64-d {
			return time.Duration(math.MaxInt64)
		}
		total += d
	}
	return total
}

// Validate checks the pattern against the settings surface range [0, 10].
func (p BreathingPattern) Validate() error {
	for _, phase := range BreathingPhases {
		v := p.Seconds(phase)
		if math.IsNaN(v) || v < 0 || v > MaxPhaseSeconds {
			return &InvalidDurationError{Field: string(phase), Value: v}
		}
	}
	return nil
}

// Adjust returns a copy with one phase moved by delta steps of
// PhaseStepSeconds, clamped to the settings range.
func (p BreathingPattern) Adjust(phase Phase, steps int) BreathingPattern {
	v := p.Seconds(phase) + float64(steps)*PhaseStepSeconds
	v = math.Min(MaxPhaseSeconds, math.Max(0, v))
	switch phase {
	case PhaseInhale:
		p.Inhale = v
	case PhaseHoldIn:
		p.HoldIn = v
	case PhaseExhale:
		p.Exhale = v
	case PhaseHoldOut:
		p.HoldOut = v
	}
	return p
}

var maxDurationSeconds = float64(math.MaxInt64) / float64(time.Second)

func secondsToDuration(field string, seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0, &InvalidDurationError{Field: field, Value: seconds}
	}
	// saturate instead of letting the conversion wrap negative
	if seconds >= maxDurationSeconds {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
