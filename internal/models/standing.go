package models

import "fmt"

// Standing is the declared condition of the property being estimated.
type Standing string

const (
	StandingToRenovate Standing = "to_renovate"
	StandingStandard   Standing = "standard"
	StandingHighEnd    Standing = "high_end"
)

// standingCoefficients maps each standing to its price multiplier. The set
// of standings is closed and the table is never mutated at runtime.
var standingCoefficients = map[Standing]float64{
	StandingToRenovate: 0.85,
	StandingStandard:   1.0,
	StandingHighEnd:    1.20,
}

// Coefficient returns the multiplicative adjustment for the standing.
func (s Standing) Coefficient() float64 {
	return standingCoefficients[s]
}

// Valid reports whether s is one of the known standings.
func (s Standing) Valid() bool {
	_, ok := standingCoefficients[s]
	return ok
}

// ParseStanding converts a request value into a Standing.
func ParseStanding(value string) (Standing, error) {
	s := Standing(value)
	if !s.Valid() {
		return "", fmt.Errorf("unknown standing: %q", value)
	}
	return s, nil
}
