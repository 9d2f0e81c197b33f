package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int            { return &v }
func boolPtr(v bool) *bool         { return &v }
func strPtr(v string) *string      { return &v }
func portPtr(v PortType) *PortType { return &v }

func TestRewardActionOnly(t *testing.T) {
	for _, action := range []Action{ActionActive, ActionNotWorking, ActionPartial} {
		reward := CalculateReward(&Submission{Action: action})
		assert.Equal(t, 2, reward.Total, "action %s", action)
		assert.Equal(t, 0, reward.Bonus)
		assert.Empty(t, reward.Reasons)
	}
}

func TestRewardQualityBonusAnyThreeOfFour(t *testing.T) {
	// Any 3 of the 4 quality fields must contribute exactly +3.
	fields := []func(*Submission){
		func(s *Submission) { s.CleanlinessRating = intPtr(4) },
		func(s *Submission) { s.ChargingSpeedRating = intPtr(3) },
		func(s *Submission) { s.AmenitiesRating = intPtr(5) },
		func(s *Submission) { s.WouldRecommend = boolPtr(true) },
	}

	for skip := range fields {
		sub := &Submission{Action: ActionActive}
		for i, set := range fields {
			if i != skip {
				set(sub)
			}
		}
		reward := CalculateReward(sub)
		assert.Equal(t, 3, reward.Bonus, "skipping field %d", skip)
		assert.Equal(t, 5, reward.Total)
	}
}

func TestRewardCapInvariant(t *testing.T) {
	// Sweep every combination of optional-field presence and check the
	// [2, 9] invariant holds throughout.
	setters := []func(*Submission){
		func(s *Submission) { s.Notes = strPtr("some notes") },
		func(s *Submission) { s.WaitTimeMinutes = intPtr(0) },
		func(s *Submission) { s.PortTypeUsed = portPtr(PortCCS) },
		func(s *Submission) { s.PortsAvailable = intPtr(2) },
		func(s *Submission) { s.ChargingSuccess = boolPtr(true) },
		func(s *Submission) { s.PaymentMethod = func(p PaymentMethod) *PaymentMethod { return &p }(PaymentApp) },
		func(s *Submission) { s.StationLighting = func(l Lighting) *Lighting { return &l }(LightingWell) },
		func(s *Submission) { s.CleanlinessRating = intPtr(5) },
		func(s *Submission) { s.ChargingSpeedRating = intPtr(4) },
		func(s *Submission) { s.AmenitiesRating = intPtr(3) },
		func(s *Submission) { s.WouldRecommend = boolPtr(false) },
		func(s *Submission) { s.PhotoURL = strPtr("https://example.com/p.jpg") },
	}

	for _, action := range []Action{ActionActive, ActionNotWorking, ActionPartial} {
		for mask := 0; mask < 1<<len(setters); mask++ {
			sub := &Submission{Action: action}
			for i, set := range setters {
				if mask&(1<<i) != 0 {
					set(sub)
				}
			}
			reward := CalculateReward(sub)
			assert.GreaterOrEqual(t, reward.Total, 2)
			assert.LessOrEqual(t, reward.Total, 9)
			assert.Equal(t, reward.Base+reward.Bonus, reward.Total)
		}
	}
}

func TestRewardPhotoBonusOnlyWhenNotWorking(t *testing.T) {
	withPhoto := &Submission{Action: ActionNotWorking, PhotoURL: strPtr("https://example.com/p.jpg")}
	reward := CalculateReward(withPhoto)
	assert.Equal(t, 2, reward.Bonus)
	assert.Equal(t, 4, reward.Total)
	assert.Contains(t, reward.Reasons, "issue photo")

	// Same photo on a working charger earns nothing from the photo rule.
	for _, action := range []Action{ActionActive, ActionPartial} {
		reward := CalculateReward(&Submission{Action: action, PhotoURL: strPtr("https://example.com/p.jpg")})
		assert.Equal(t, 0, reward.Bonus, "action %s", action)
		assert.Equal(t, 2, reward.Total)
	}
}

func TestRewardZeroWaitTimeStillCounts(t *testing.T) {
	reward := CalculateReward(&Submission{Action: ActionActive, WaitTimeMinutes: intPtr(0)})
	assert.Equal(t, 1, reward.Bonus)
	assert.Equal(t, 3, reward.Total)
	assert.Contains(t, reward.Reasons, "wait time")
}

func TestRewardPortContextNeedsTwoOfThree(t *testing.T) {
	one := &Submission{Action: ActionActive, PortTypeUsed: portPtr(PortType2)}
	assert.Equal(t, 0, CalculateReward(one).Bonus)

	two := &Submission{Action: ActionActive, PortTypeUsed: portPtr(PortType2), PortsAvailable: intPtr(1)}
	assert.Equal(t, 1, CalculateReward(two).Bonus)
}

func TestRewardOperationalNeedsBoth(t *testing.T) {
	payment := PaymentCard
	lighting := LightingPoor

	onlyPayment := &Submission{Action: ActionActive, PaymentMethod: &payment}
	assert.Equal(t, 0, CalculateReward(onlyPayment).Bonus)

	both := &Submission{Action: ActionActive, PaymentMethod: &payment, StationLighting: &lighting}
	assert.Equal(t, 1, CalculateReward(both).Bonus)
}

func TestRewardFullActiveScenario(t *testing.T) {
	payment := PaymentApp
	lighting := LightingWell
	sub := &Submission{
		Action:              ActionActive,
		WaitTimeMinutes:     intPtr(10),
		PortTypeUsed:        portPtr(PortCCS),
		PortsAvailable:      intPtr(2),
		ChargingSuccess:     boolPtr(true),
		PaymentMethod:       &payment,
		StationLighting:     &lighting,
		CleanlinessRating:   intPtr(5),
		ChargingSpeedRating: intPtr(4),
		AmenitiesRating:     intPtr(5),
		WouldRecommend:      boolPtr(true),
	}

	reward := CalculateReward(sub)
	// port context +1, operational +1, quality (4 of 4) +3, wait time +1
	assert.Equal(t, 6, reward.Bonus)
	assert.Equal(t, 8, reward.Total)
	assert.ElementsMatch(t, []string{"port details", "operational details", "quality ratings", "wait time"}, reward.Reasons)
}

func TestRewardNotWorkingPhotoOnlyScenario(t *testing.T) {
	sub := &Submission{Action: ActionNotWorking, PhotoURL: strPtr("https://example.com/broken.jpg")}
	reward := CalculateReward(sub)
	assert.Equal(t, 2, reward.Bonus)
	assert.Equal(t, 4, reward.Total)
	assert.Equal(t, []string{"issue photo"}, reward.Reasons)
}
