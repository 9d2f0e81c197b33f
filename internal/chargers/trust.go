package chargers

import (
	"math"
	"time"
)

const (
	// trustHalfLife is how long it takes a verification to lose half its
	// weight in the trust computation.
	trustHalfLife = 14 * 24 * time.Hour
	// photoWeight multiplies the weight of reports that carry photo
	// evidence.
	photoWeight = 1.5
	// neutralTrust is the score of a charger with no usable reports.
	neutralTrust = 50.0
)

// TrustSample is one verification as used by the trust computation.
type TrustSample struct {
	Action    string    `db:"action"`
	HasPhoto  bool      `db:"has_photo"`
	CreatedAt time.Time `db:"created_at"`
}

// ComputeTrust rolls recent verifications into a consensus status and a trust
// score in [0, 100]. Reports decay exponentially with age so a week of
// "not_working" outweighs months-old "active" reports, and photo-backed
// reports count extra. The score is the share of decayed weight that agrees
// with the winning status.
func ComputeTrust(samples []TrustSample, now time.Time) (Status, float64) {
	if len(samples) == 0 {
		return StatusUnverified, neutralTrust
	}

	weights := make(map[string]float64, 3)
	total := 0.0
	for _, s := range samples {
		age := now.Sub(s.CreatedAt)
		if age < 0 {
			age = 0
		}
		w := math.Exp2(-age.Hours() / trustHalfLife.Hours())
		if s.HasPhoto {
			w *= photoWeight
		}
		weights[s.Action] += w
		total += w
	}
	if total == 0 {
		return StatusUnverified, neutralTrust
	}

	// Candidates in tie-break order: on equal weight the more cautious
	// status wins, never map iteration order.
	winner := StatusUnverified
	best := 0.0
	for _, status := range []Status{StatusNotWorking, StatusPartial, StatusActive} {
		if w := weights[string(status)]; w > best {
			winner, best = status, w
		}
	}
	if winner == StatusUnverified {
		return StatusUnverified, neutralTrust
	}

	return winner, 100 * best / total
}
