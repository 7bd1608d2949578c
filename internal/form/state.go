package form

// State is the form's presentation state. Exactly one state is active
// at a time.
type State string

const (
	StateIdle    State = "idle"    // Awaiting input
	StateWarning State = "warning" // Submission accepted locally, external call in flight
	StateFailure State = "failure" // Validation or submission failed
	StateSuccess State = "success" // Registration confirmed by the server
)

// FieldForm is the designated pseudo-field that carries a generic
// submission failure message, kept apart from per-input errors.
const FieldForm = "form"

// MsgSubmissionFailed is shown when the registration call fails without
// structured field errors (transport failure, unexpected server error).
const MsgSubmissionFailed = "Registration failed. Please try again."

// TouchTracker records which fields the user has interacted with.
// A field's error is only rendered once the field is touched, or after
// a submit attempt force-touches everything.
type TouchTracker map[string]bool

// Touch marks a single field as interacted with.
func (t TouchTracker) Touch(field string) {
	t[field] = true
}

// IsTouched reports whether the field has been interacted with.
func (t TouchTracker) IsTouched(field string) bool {
	return t[field]
}

// TouchAll marks every given field at once, used by submit attempts so
// an empty form reveals all errors immediately.
func (t TouchTracker) TouchAll(fields []string) {
	for _, f := range fields {
		t[f] = true
	}
}

func (t TouchTracker) clone() TouchTracker {
	out := make(TouchTracker, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Snapshot is one immutable-per-render view of the form: raw values,
// error map, touched set, machine state and the submit-in-progress flag.
// Reduce replaces the whole snapshot instead of mutating it in place.
type Snapshot struct {
	Values      map[string]string
	AcceptTerms bool
	Errors      map[string]string
	Touched     TouchTracker
	State       State
	Submitting  bool
}

// NewSnapshot returns the initial Idle snapshot with no values, errors
// or touched fields.
func NewSnapshot() Snapshot {
	return Snapshot{
		Values:  make(map[string]string),
		Errors:  make(map[string]string),
		Touched: make(TouchTracker),
		State:   StateIdle,
	}
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Values = make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		out.Values[k] = v
	}
	out.Errors = make(map[string]string, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	out.Touched = s.Touched.clone()
	return out
}

// VisibleErrors filters the error map by the touched set. After a failed
// submit every field is touched, so all errors show.
func (s Snapshot) VisibleErrors() map[string]string {
	visible := make(map[string]string)
	for field, msg := range s.Errors {
		if field == FieldForm || s.Touched.IsTouched(field) {
			visible[field] = msg
		}
	}
	return visible
}

// Event is one input to the reducer.
type Event interface {
	isEvent()
}

// FieldChanged carries a new raw value for one field.
type FieldChanged struct {
	Field string
	Value string
}

// TermsToggled flips the terms-acceptance flag.
type TermsToggled struct {
	Accepted bool
}

// FieldBlurred marks a field as touched and validates it.
type FieldBlurred struct {
	Field string
}

// SubmitStarted marks the submit attempt: sets the in-progress flag and
// force-touches every field of the variant.
type SubmitStarted struct{}

// ValidationFailed carries the full-form validation verdict that blocked
// the external call.
type ValidationFailed struct {
	Errors map[string]string
}

// SubmitAccepted signals that local validation passed and the external
// call is in flight.
type SubmitAccepted struct{}

// SubmitSucceeded signals a confirmed registration.
type SubmitSucceeded struct{}

// SubmitFailed carries structured field errors from the server; a nil or
// empty map means an unstructured failure reported on FieldForm.
type SubmitFailed struct {
	Errors map[string]string
}

// ResetFired returns the form to its initial Idle snapshot after the
// success display delay.
type ResetFired struct{}

func (FieldChanged) isEvent()     {}
func (TermsToggled) isEvent()     {}
func (FieldBlurred) isEvent()     {}
func (SubmitStarted) isEvent()    {}
func (ValidationFailed) isEvent() {}
func (SubmitAccepted) isEvent()   {}
func (SubmitSucceeded) isEvent()  {}
func (SubmitFailed) isEvent()     {}
func (ResetFired) isEvent()       {}
