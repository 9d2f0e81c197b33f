package verification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action is the reported operational state of a charger. It is the only
// required field of a submission and selects the wizard branch on the client.
type Action string

const (
	ActionActive     Action = "active"
	ActionNotWorking Action = "not_working"
	ActionPartial    Action = "partial"
)

// PortType is a connector standard the reporter says they used.
type PortType string

const (
	PortType1   PortType = "Type 1"
	PortType2   PortType = "Type 2"
	PortCCS     PortType = "CCS"
	PortCHAdeMO PortType = "CHAdeMO"
)

// PaymentMethod is how the reporter paid at the station.
type PaymentMethod string

const (
	PaymentApp  PaymentMethod = "App"
	PaymentCard PaymentMethod = "Card"
	PaymentCash PaymentMethod = "Cash"
	PaymentFree PaymentMethod = "Free"
)

// Lighting describes station lighting conditions.
type Lighting string

const (
	LightingWell     Lighting = "Well-lit"
	LightingAdequate Lighting = "Adequate"
	LightingPoor     Lighting = "Poor"
)

// waitTimeChoices is the fixed choice set offered by the wizard.
var waitTimeChoices = map[int]bool{0: true, 5: true, 10: true, 15: true, 20: true, 30: true}

// Submission is a single station-condition report. Every field except Action
// is optional; optional fields are pointers so that a supplied zero (e.g.
// wait_time_minutes = 0) is distinguishable from an omitted field.
type Submission struct {
	Action              Action         `json:"action" binding:"required"`
	Notes               *string        `json:"notes,omitempty"`
	WaitTimeMinutes     *int           `json:"wait_time_minutes,omitempty"`
	PortTypeUsed        *PortType      `json:"port_type_used,omitempty"`
	PortsAvailable      *int           `json:"ports_available,omitempty"`
	ChargingSuccess     *bool          `json:"charging_success,omitempty"`
	PaymentMethod       *PaymentMethod `json:"payment_method,omitempty"`
	StationLighting     *Lighting      `json:"station_lighting,omitempty"`
	CleanlinessRating   *int           `json:"cleanliness_rating,omitempty"`
	ChargingSpeedRating *int           `json:"charging_speed_rating,omitempty"`
	AmenitiesRating     *int           `json:"amenities_rating,omitempty"`
	WouldRecommend      *bool          `json:"would_recommend,omitempty"`
	PhotoURL            *string        `json:"photo_url,omitempty"`
}

// Normalize trims free-text fields and drops them when empty.
func (s *Submission) Normalize() {
	if s.Notes != nil {
		trimmed := strings.TrimSpace(*s.Notes)
		if trimmed == "" {
			s.Notes = nil
		} else {
			s.Notes = &trimmed
		}
	}
	if s.PhotoURL != nil && strings.TrimSpace(*s.PhotoURL) == "" {
		s.PhotoURL = nil
	}
}

// Validate checks the submission against the wizard's choice sets. The mobile
// client constrains these by UI, but the payload is untrusted input here.
func (s *Submission) Validate() error {
	switch s.Action {
	case ActionActive, ActionNotWorking, ActionPartial:
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}

	if s.WaitTimeMinutes != nil && !waitTimeChoices[*s.WaitTimeMinutes] {
		return fmt.Errorf("wait_time_minutes must be one of 0, 5, 10, 15, 20, 30")
	}
	if s.PortTypeUsed != nil {
		switch *s.PortTypeUsed {
		case PortType1, PortType2, PortCCS, PortCHAdeMO:
		default:
			return fmt.Errorf("unknown port_type_used %q", *s.PortTypeUsed)
		}
	}
	if s.PortsAvailable != nil && (*s.PortsAvailable < 0 || *s.PortsAvailable > 4) {
		return fmt.Errorf("ports_available must be between 0 and 4")
	}
	if s.PaymentMethod != nil {
		switch *s.PaymentMethod {
		case PaymentApp, PaymentCard, PaymentCash, PaymentFree:
		default:
			return fmt.Errorf("unknown payment_method %q", *s.PaymentMethod)
		}
	}
	if s.StationLighting != nil {
		switch *s.StationLighting {
		case LightingWell, LightingAdequate, LightingPoor:
		default:
			return fmt.Errorf("unknown station_lighting %q", *s.StationLighting)
		}
	}
	for name, rating := range map[string]*int{
		"cleanliness_rating":    s.CleanlinessRating,
		"charging_speed_rating": s.ChargingSpeedRating,
		"amenities_rating":      s.AmenitiesRating,
	} {
		if rating != nil && (*rating < 1 || *rating > 5) {
			return fmt.Errorf("%s must be between 1 and 5", name)
		}
	}
	return nil
}

// Record is a persisted submission together with the reward the server
// credited for it.
type Record struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ChargerID   uuid.UUID  `db:"charger_id" json:"charger_id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	Submission  Submission `db:"-" json:"submission"`
	Payload     []byte     `db:"payload" json:"-"`
	CoinsEarned int        `db:"coins_earned" json:"coins_earned"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Result is the response body of the verify endpoint. CoinsEarned is the
// authoritative total; the client-side estimate is display-only.
type Result struct {
	CoinsEarned  int      `json:"coins_earned"`
	BonusCoins   int      `json:"bonus_coins"`
	BonusReasons []string `json:"bonus_reasons"`
	NewLevel     int      `json:"new_level"`
}
