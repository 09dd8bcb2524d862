package grade

// Tier is a presentation hint for a percentage grade. Its thresholds are independent from the letter scale.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMidHigh Tier = "mid-high"
	TierMidLow  Tier = "mid-low"
	TierLow     Tier = "low"
)

type step struct {
	min    float64 // inclusive
	points float64
	letter string
}

// scale is ordered by descending lower bound.
var scale = []step{
	{min: 97, points: 4.0, letter: "A+"},
	{min: 93, points: 3.7, letter: "A"},
	{min: 90, points: 3.3, letter: "A-"},
	{min: 87, points: 3.0, letter: "B+"},
	{min: 83, points: 2.7, letter: "B"},
	{min: 80, points: 2.3, letter: "B-"},
	{min: 77, points: 2.0, letter: "C+"},
	{min: 73, points: 1.7, letter: "C"},
	{min: 70, points: 1.3, letter: "C-"},
	{min: 67, points: 1.0, letter: "D+"},
	{min: 65, points: 0.7, letter: "D"},
}

const failingLetter = "F"

var tiers = []struct {
	min  float64
	tier Tier
}{
	{min: 90, tier: TierHigh},
	{min: 80, tier: TierMidHigh},
	{min: 70, tier: TierMidLow},
}

func lookup(pct float64) (step, bool) {
	for _, s := range scale {
		if pct >= s.min {
			return s, true
		}
	}
	return step{}, false
}

// Points converts a percentage to the 4.0 grade point scale.
func Points(pct float64) float64 {
	if s, ok := lookup(pct); ok {
		return s.points
	}
	return 0
}

// Letter converts a percentage to a letter grade, A+ through F.
func Letter(pct float64) string {
	if s, ok := lookup(pct); ok {
		return s.letter
	}
	return failingLetter
}

func TierOf(pct float64) Tier {
	for _, t := range tiers {
		if pct >= t.min {
			return t.tier
		}
	}
	return TierLow
}
