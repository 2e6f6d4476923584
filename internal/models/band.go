package models

import (
	"fmt"
	"strings"
)

// QualityBand is the overall quality classification of a grade set.
type QualityBand string

const (
	BandLow    QualityBand = "Low"
	BandMedium QualityBand = "Medium"
	BandHigh   QualityBand = "High"
)

var bandRank = map[QualityBand]int{
	BandLow:    0,
	BandMedium: 1,
	BandHigh:   2,
}

func (b QualityBand) String() string {
	return string(b)
}

// AtLeast returns true if b is at or above the target band.
func (b QualityBand) AtLeast(target QualityBand) bool {
	return bandRank[b] >= bandRank[target]
}

// ParseQualityBand converts a string value to a QualityBand.
func ParseQualityBand(s string) (QualityBand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return BandLow, nil
	case "medium":
		return BandMedium, nil
	case "high":
		return BandHigh, nil
	default:
		return BandLow, fmt.Errorf("invalid quality band %q: must be low, medium, or high", s)
	}
}

// BandOf classifies a validated grade set. High requires every grade at 4
// or above; Medium requires every grade at 3 or above; anything else is
// Low. The partition is total and mutually exclusive over the grade domain.
func BandOf(g GradeSet) QualityBand {
	switch {
	case g.ICM >= 4 && g.TE >= 4 && g.Exp >= 4:
		return BandHigh
	case g.ICM >= 3 && g.TE >= 3 && g.Exp >= 3:
		return BandMedium
	default:
		return BandLow
	}
}
