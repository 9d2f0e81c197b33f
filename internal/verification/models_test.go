package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiresKnownAction(t *testing.T) {
	assert.Error(t, (&Submission{}).Validate())
	assert.Error(t, (&Submission{Action: "broken"}).Validate())
	assert.NoError(t, (&Submission{Action: ActionPartial}).Validate())
}

func TestValidateWaitTimeChoiceSet(t *testing.T) {
	for _, ok := range []int{0, 5, 10, 15, 20, 30} {
		sub := &Submission{Action: ActionActive, WaitTimeMinutes: intPtr(ok)}
		assert.NoError(t, sub.Validate(), "wait %d", ok)
	}
	for _, bad := range []int{-5, 3, 25, 60} {
		sub := &Submission{Action: ActionActive, WaitTimeMinutes: intPtr(bad)}
		assert.Error(t, sub.Validate(), "wait %d", bad)
	}
}

func TestValidateRatingsAndPorts(t *testing.T) {
	assert.Error(t, (&Submission{Action: ActionActive, CleanlinessRating: intPtr(0)}).Validate())
	assert.Error(t, (&Submission{Action: ActionActive, ChargingSpeedRating: intPtr(6)}).Validate())
	assert.Error(t, (&Submission{Action: ActionActive, PortsAvailable: intPtr(5)}).Validate())
	assert.NoError(t, (&Submission{Action: ActionActive, PortsAvailable: intPtr(4)}).Validate())
}

func TestValidateEnums(t *testing.T) {
	badPort := PortType("Tesla")
	assert.Error(t, (&Submission{Action: ActionActive, PortTypeUsed: &badPort}).Validate())

	badPayment := PaymentMethod("Crypto")
	assert.Error(t, (&Submission{Action: ActionActive, PaymentMethod: &badPayment}).Validate())

	badLighting := Lighting("Dark")
	assert.Error(t, (&Submission{Action: ActionActive, StationLighting: &badLighting}).Validate())
}

func TestNormalizeTrimsNotes(t *testing.T) {
	sub := &Submission{Action: ActionActive, Notes: strPtr("  cable frayed  ")}
	sub.Normalize()
	assert.Equal(t, "cable frayed", *sub.Notes)

	empty := &Submission{Action: ActionActive, Notes: strPtr("   "), PhotoURL: strPtr(" ")}
	empty.Normalize()
	assert.Nil(t, empty.Notes)
	assert.Nil(t, empty.PhotoURL)
}
