package verification

// Step is one screen of the verification wizard.
type Step string

const (
	StepAction      Step = "action"
	StepWaitTime    Step = "wait_time"
	StepPortContext Step = "port_context"
	StepOperational Step = "operational"
	StepQuality     Step = "quality"
	StepPhoto       Step = "photo"
)

// baseSteps is the linear wizard sequence for every action.
var baseSteps = []Step{StepAction, StepWaitTime, StepPortContext, StepOperational, StepQuality}

// StepsFor returns the ordered wizard steps for the chosen action. Reporting
// a broken charger appends a photo step so the reporter can attach evidence.
func StepsFor(action Action) []Step {
	steps := make([]Step, len(baseSteps), len(baseSteps)+1)
	copy(steps, baseSteps)
	if action == ActionNotWorking {
		steps = append(steps, StepPhoto)
	}
	return steps
}

// Sequence tracks a reporter's position in the wizard. It has no knowledge of
// the fields collected at each step; it only sequences them.
type Sequence struct {
	steps []Step
	index int
	done  bool
}

// NewSequence starts a wizard run for the chosen action.
func NewSequence(action Action) *Sequence {
	return &Sequence{steps: StepsFor(action)}
}

// Current returns the step the reporter is on. After the sequence completes
// it keeps returning the final step.
func (s *Sequence) Current() Step {
	if s.index >= len(s.steps) {
		return s.steps[len(s.steps)-1]
	}
	return s.steps[s.index]
}

// Progress reports the 1-based position and total step count, driving the
// client's progress indicator.
func (s *Sequence) Progress() (current, total int) {
	pos := s.index + 1
	if pos > len(s.steps) {
		pos = len(s.steps)
	}
	return pos, len(s.steps)
}

// Advance moves to the next step. Advancing past the last step completes the
// sequence and returns false.
func (s *Sequence) Advance() bool {
	if s.done {
		return false
	}
	s.index++
	if s.index >= len(s.steps) {
		s.done = true
		return false
	}
	return true
}

// Back moves one step earlier. From the first step it returns false, which
// the client treats as exiting the flow.
func (s *Sequence) Back() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	s.done = false
	return true
}

// Skip jumps straight to submission; whatever fields were filled so far are
// what gets submitted.
func (s *Sequence) Skip() {
	s.index = len(s.steps)
	s.done = true
}

// Done reports whether the sequence has reached submission.
func (s *Sequence) Done() bool {
	return s.done
}
