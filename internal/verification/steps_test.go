package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepsForWorkingActions(t *testing.T) {
	expected := []Step{StepAction, StepWaitTime, StepPortContext, StepOperational, StepQuality}
	for _, action := range []Action{ActionActive, ActionPartial} {
		steps := StepsFor(action)
		assert.Equal(t, expected, steps, "action %s", action)
		assert.NotContains(t, steps, StepPhoto)
	}
}

func TestStepsForNotWorkingAppendsPhoto(t *testing.T) {
	steps := StepsFor(ActionNotWorking)
	assert.Len(t, steps, 6)
	assert.Equal(t, StepPhoto, steps[5])
}

func TestSequenceAdvanceAndProgress(t *testing.T) {
	seq := NewSequence(ActionActive)

	current, total := seq.Progress()
	assert.Equal(t, 1, current)
	assert.Equal(t, 5, total)
	assert.Equal(t, StepAction, seq.Current())

	for i := 0; i < 4; i++ {
		assert.True(t, seq.Advance())
	}
	assert.Equal(t, StepQuality, seq.Current())
	current, _ = seq.Progress()
	assert.Equal(t, 5, current)

	// Advancing past the last step reaches submission.
	assert.False(t, seq.Advance())
	assert.True(t, seq.Done())
	assert.False(t, seq.Advance())
}

func TestSequenceBackExitsFromFirstStep(t *testing.T) {
	seq := NewSequence(ActionNotWorking)
	assert.False(t, seq.Back(), "back from the first step exits the flow")

	seq.Advance()
	seq.Advance()
	assert.Equal(t, StepPortContext, seq.Current())
	assert.True(t, seq.Back())
	assert.Equal(t, StepWaitTime, seq.Current())
}

func TestSequenceSkipJumpsToSubmission(t *testing.T) {
	seq := NewSequence(ActionActive)
	seq.Advance()
	seq.Skip()
	assert.True(t, seq.Done())

	// Going back after skipping re-enters the wizard at the last step.
	assert.True(t, seq.Back())
	assert.False(t, seq.Done())
	assert.Equal(t, StepQuality, seq.Current())
}
