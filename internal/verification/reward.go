package verification

const (
	// RewardBase is credited for any accepted submission.
	RewardBase = 2
	// RewardCap is the most a single submission can earn.
	RewardCap = 9
)

// RewardBreakdown itemizes how a submission's coin total was reached.
type RewardBreakdown struct {
	Base    int
	Bonus   int
	Total   int
	Reasons []string
}

// CalculateReward computes the coins earned for a submission. The rule is a
// completeness score over the optional fields: reporters who answer more of
// the wizard earn more, capped at RewardCap.
//
// The computation is pure; crediting the ledger is the caller's job.
func CalculateReward(s *Submission) RewardBreakdown {
	bonus := 0
	var reasons []string

	portContext := 0
	if s.PortTypeUsed != nil {
		portContext++
	}
	if s.PortsAvailable != nil {
		portContext++
	}
	if s.ChargingSuccess != nil {
		portContext++
	}
	if portContext >= 2 {
		bonus++
		reasons = append(reasons, "port details")
	}

	if s.PaymentMethod != nil && s.StationLighting != nil {
		bonus++
		reasons = append(reasons, "operational details")
	}

	quality := 0
	if s.CleanlinessRating != nil {
		quality++
	}
	if s.ChargingSpeedRating != nil {
		quality++
	}
	if s.AmenitiesRating != nil {
		quality++
	}
	if s.WouldRecommend != nil {
		quality++
	}
	switch {
	case quality >= 3:
		bonus += 3
		reasons = append(reasons, "quality ratings")
	case quality == 2:
		bonus += 2
		reasons = append(reasons, "quality ratings")
	case quality == 1:
		bonus++
		reasons = append(reasons, "quality ratings")
	}

	// A supplied zero still counts: "no wait" is information.
	if s.WaitTimeMinutes != nil {
		bonus++
		reasons = append(reasons, "wait time")
	}

	if s.PhotoURL != nil && s.Action == ActionNotWorking {
		bonus += 2
		reasons = append(reasons, "issue photo")
	}

	total := RewardBase + bonus
	if total > RewardCap {
		total = RewardCap
	}

	return RewardBreakdown{
		Base:    RewardBase,
		Bonus:   total - RewardBase,
		Total:   total,
		Reasons: reasons,
	}
}
