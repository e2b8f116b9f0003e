package draft

// Wizard step constants. Steps are ordered; the controller never gates a
// jump on field completeness.
const (
	StepBasicInfo = 1
	StepScope     = 2
	StepPricing   = 3
	StepTimeline  = 4
	StepTerms     = 5
	StepReview    = 6
)

var stepNames = map[int]string{
	StepBasicInfo: "Basic Info",
	StepScope:     "Scope",
	StepPricing:   "Pricing",
	StepTimeline:  "Timeline",
	StepTerms:     "Terms",
	StepReview:    "Review",
}

// Wizard tracks the current position in the six step quote flow.
type Wizard struct {
	current int
}

// NewWizard starts at the first step.
func NewWizard() *Wizard {
	return &Wizard{current: StepBasicInfo}
}

// Current returns the current step number.
func (w *Wizard) Current() int { return w.current }

// StepName returns the display name of the current step.
func (w *Wizard) StepName() string { return stepNames[w.current] }

// Next advances one step; a no-op on the final step.
func (w *Wizard) Next() int {
	if w.current < StepReview {
		w.current++
	}
	return w.current
}

// Prev moves back one step; a no-op on the first step.
func (w *Wizard) Prev() int {
	if w.current > StepBasicInfo {
		w.current--
	}
	return w.current
}

// GoTo jumps to any step unconditionally. Out-of-range targets are
// ignored.
func (w *Wizard) GoTo(step int) int {
	if step >= StepBasicInfo && step <= StepReview {
		w.current = step
	}
	return w.current
}
