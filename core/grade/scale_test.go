package grade

import "testing"

func TestScale(t *testing.T) {
	tests := []struct {
		pct        float64
		wantPoints float64
		wantLetter string
		wantTier   Tier
	}{
		{pct: 100, wantPoints: 4.0, wantLetter: "A+", wantTier: TierHigh},
		{pct: 97, wantPoints: 4.0, wantLetter: "A+", wantTier: TierHigh},
		{pct: 96.99, wantPoints: 3.7, wantLetter: "A", wantTier: TierHigh},
		{pct: 93, wantPoints: 3.7, wantLetter: "A", wantTier: TierHigh},
		{pct: 90, wantPoints: 3.3, wantLetter: "A-", wantTier: TierHigh},
		{pct: 89.9, wantPoints: 3.0, wantLetter: "B+", wantTier: TierMidHigh},
		{pct: 88.33, wantPoints: 3.0, wantLetter: "B+", wantTier: TierMidHigh},
		{pct: 83, wantPoints: 2.7, wantLetter: "B", wantTier: TierMidHigh},
		{pct: 80, wantPoints: 2.3, wantLetter: "B-", wantTier: TierMidHigh},
		{pct: 77, wantPoints: 2.0, wantLetter: "C+", wantTier: TierMidLow},
		{pct: 73, wantPoints: 1.7, wantLetter: "C", wantTier: TierMidLow},
		{pct: 70, wantPoints: 1.3, wantLetter: "C-", wantTier: TierMidLow},
		{pct: 67, wantPoints: 1.0, wantLetter: "D+", wantTier: TierLow},
		{pct: 65, wantPoints: 0.7, wantLetter: "D", wantTier: TierLow},
		{pct: 64.99, wantPoints: 0, wantLetter: "F", wantTier: TierLow},
		{pct: 0, wantPoints: 0, wantLetter: "F", wantTier: TierLow},
	}
	for _, tt := range tests {
		if got := Points(tt.pct); got != tt.wantPoints {
			t.Errorf("Points(%v) = %v, want %v", tt.pct, got, tt.wantPoints)
		}
		if got := Letter(tt.pct); got != tt.wantLetter {
			t.Errorf("Letter(%v) = %v, want %v", tt.pct, got, tt.wantLetter)
		}
		if got := TierOf(tt.pct); got != tt.wantTier {
			t.Errorf("TierOf(%v) = %v, want %v", tt.pct, got, tt.wantTier)
		}
	}
}

func TestScale_monotonic(t *testing.T) {
	letterRank := make(map[string]int, len(scale)+1)
	letterRank[failingLetter] = 0
	for i, s := range scale {
		letterRank[s.letter] = len(scale) - i
	}

	prevPoints, prevRank := Points(0), letterRank[Letter(0)]
	for pct := 0.0; pct <= 100; pct += 0.25 {
		points, rank := Points(pct), letterRank[Letter(pct)]
		if points < prevPoints || rank < prevRank {
			t.Fatalf("scale not monotonic at %v: points %v (prev %v), letter %s", pct, points, prevPoints, Letter(pct))
		}
		prevPoints, prevRank = points, rank
	}
}
