package mapping

import (
	"context"
	"sync"
)

// Step is the active screen of the creation stepper.
type Step int

const (
	StepSystem Step = iota
	StepPatientDetails
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepSystem:
		return "system"
	case StepPatientDetails:
		return "patient-details"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// SubmitState is the submission sub-state, orthogonal to the active step.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitInFlight
	SubmitSucceeded
	SubmitFailed
)

// SentinelCustom is the select-box option that switches the EHR system name
// into free-text entry. The sentinel itself is never stored in the draft.
const SentinelCustom = "other"

// EnumeratedSystems are the fixed EHR system options offered by the select box.
var EnumeratedSystems = []string{"client", "hospitals", "clinics"}

// SystemChoice is the tagged EHR-system variant: either one of the enumerated
// options or free text entered after picking the "other" sentinel. It resolves
// to a plain string when written into the draft.
type SystemChoice struct {
	Custom bool
	Value  string
}

// Resolve returns the string stored and validated as the ehrName field.
func (c SystemChoice) Resolve() string {
	return c.Value
}

// stepFields returns the fields validated before leaving a step.
func stepFields(s Step) []string {
	switch s {
	case StepSystem:
		return []string{FieldEHRName}
	case StepPatientDetails:
		return PatientFields
	default:
		return nil
	}
}

// Machine is the stepper state machine for one creation dialog. A machine is
// confined to one session; the mutex covers the echo handlers that drive it
// from multiple goroutines.
type Machine struct {
	mu        sync.Mutex
	validator *Validator
	submitter Submitter

	open    bool
	step    Step
	values  Values
	choice  SystemChoice
	state   SubmitState
	failMsg string

	// gen identifies the current draft. Every reset bumps it, so a submission
	// result arriving after a cancel (and possibly a reopen) is recognized as
	// belonging to a discarded draft and dropped.
	gen uint64

	// onSuccess fires exactly once per successful submission, after the
	// machine has been reset. The host uses it to refresh the mapping list.
	onSuccess func()
}

// NewMachine creates a machine in its initial state: step 0, empty draft, idle.
func NewMachine(validator *Validator, submitter Submitter, onSuccess func()) *Machine {
	return &Machine{
		validator: validator,
		submitter: submitter,
		values:    Values{},
		onSuccess: onSuccess,
	}
}

// Open marks the dialog open. The draft always starts empty.
func (m *Machine) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	m.open = true
}

// Snapshot is a render-ready view of the machine.
type Snapshot struct {
	Open        bool
	Step        Step
	Values      Values
	Choice      SystemChoice
	State       SubmitState
	FailMessage string
}

// Submitting reports whether a submission is in flight, for disabling the
// triggering control.
func (s Snapshot) Submitting() bool {
	return s.State == SubmitInFlight
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Open:        m.open,
		Step:        m.step,
		Values:      m.values.Clone(),
		Choice:      m.choice,
		State:       m.state,
		FailMessage: m.failMsg,
	}
}

// SetSystemChoice records the EHR system selection. Picking an enumerated
// option stores it directly; picking the sentinel switches to free text and
// stores whatever custom text is present.
func (m *Machine) SetSystemChoice(selected, customText string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if selected == SentinelCustom {
		m.choice = SystemChoice{Custom: true, Value: customText}
	} else {
		m.choice = SystemChoice{Custom: false, Value: selected}
	}
	m.values[FieldEHRName] = m.choice.Resolve()
}

// SetField records a field value and re-validates it, returning the field's
// message key or "" when valid.
func (m *Machine) SetField(field, value string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[field] = value
	return m.validator.Validate(field, value, m.values)
}

// SetFields records a batch of field values without advancing.
func (m *Machine) SetFields(values Values) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for f, v := range values {
		m.values[f] = v
	}
}

// Next validates the active step and either advances or, from the review
// step, submits the draft. On validation failure the step does not change and
// the per-field message keys are returned. On submission failure the machine
// stays on the review step with the draft intact.
func (m *Machine) Next(ctx context.Context) (FieldErrors, error) {
	m.mu.Lock()

	if errs := m.validator.ValidateFields(stepFields(m.step), m.values); errs != nil {
		m.mu.Unlock()
		return errs, nil
	}

	if m.step < StepReview {
		m.step++
		m.mu.Unlock()
		return nil, nil
	}

	// Review step: submit. Refuse re-entry while a submission is in flight;
	// the triggering control is disabled, this is the backstop.
	if m.state == SubmitInFlight {
		m.mu.Unlock()
		return nil, nil
	}
	m.state = SubmitInFlight
	m.failMsg = ""
	gen := m.gen
	payload := BuildPayload(m.values)
	m.mu.Unlock()

	err := m.submitter.Submit(ctx, payload)

	m.mu.Lock()
	if m.gen != gen {
		// The draft was discarded (cancel, possibly followed by a reopen)
		// while the call was in flight; its outcome is a UI no-op. The
		// external side effect of a successful create still stands.
		m.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		m.state = SubmitFailed
		m.failMsg = "errorSavingMapping"
		m.mu.Unlock()
		return nil, err
	}
	m.reset()
	// Succeeded survives the reset so the host can render the outcome; the
	// next Open clears it.
	m.state = SubmitSucceeded
	onSuccess := m.onSuccess
	m.mu.Unlock()

	if onSuccess != nil {
		onSuccess()
	}
	return nil, nil
}

// Back rewinds one step. It is permitted unconditionally and never touches
// entered values.
func (m *Machine) Back() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.step > StepSystem {
		m.step--
	}
}

// Cancel resets all state to initial and closes the dialog.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

// reset restores the initial state and invalidates any in-flight submission.
// Callers hold the mutex.
func (m *Machine) reset() {
	m.gen++
	m.open = false
	m.step = StepSystem
	m.values = Values{}
	m.choice = SystemChoice{}
	m.state = SubmitIdle
	m.failMsg = ""
}
