package form

import (
	"context"
	"sync"
	"time"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/logger"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/models"
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

// Registrar performs the external registration call. On a 2xx outcome it
// returns the created user; on a structured rejection it returns the
// server's field errors; anything else is a transport-level error.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.PublicUser, []models.FieldError, error)
}

// Form coordinates one signup session: it owns the current snapshot,
// applies events through the reducer, and runs the submission flow.
// A submit in flight blocks re-entry; field edits during it still land
// in the snapshot but do not start another submission.
type Form struct {
	mu         sync.Mutex
	snap       Snapshot
	rules      *validation.Rules
	registrar  Registrar
	resetDelay time.Duration
	resetTimer *time.Timer
}

// New creates a Form in the initial Idle state. resetDelay is how long
// the Success state is displayed before the form clears back to Idle.
// A non-positive delay disables the automatic reset.
func New(rules *validation.Rules, registrar Registrar, resetDelay time.Duration) *Form {
	return &Form{
		snap:       NewSnapshot(),
		rules:      rules,
		registrar:  registrar,
		resetDelay: resetDelay,
	}
}

// Change records a new value for a field and revalidates it.
func (f *Form) Change(field, value string) {
	f.apply(FieldChanged{Field: field, Value: value})
}

// SetTerms flips the terms-acceptance flag.
func (f *Form) SetTerms(accepted bool) {
	f.apply(TermsToggled{Accepted: accepted})
}

// Blur marks a field as touched, making its error visible.
func (f *Form) Blur(field string) {
	f.apply(FieldBlurred{Field: field})
}

// Snapshot returns a copy of the current form state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.clone()
}

// Submit runs the full submission flow: validate everything, call the
// registrar, fold the outcome back into the state machine. It returns
// the resulting state and error map. A submit already in progress is a
// no-op returning the current state.
func (f *Form) Submit(ctx context.Context) (State, map[string]string) {
	f.mu.Lock()
	if f.snap.Submitting {
		snap := f.snap.clone()
		f.mu.Unlock()
		return snap.State, snap.Errors
	}
	f.snap = Reduce(f.rules, f.snap, SubmitStarted{})
	attempt := f.snap.clone()
	values, accepted := attempt.Values, attempt.AcceptTerms
	f.mu.Unlock()

	// The in-progress flag is released on every exit path.
	defer func() {
		f.mu.Lock()
		f.snap.Submitting = false
		f.mu.Unlock()
	}()

	errs := f.rules.Evaluate(validation.Form{Values: values, AcceptTerms: accepted})
	if len(errs) > 0 {
		f.apply(ValidationFailed{Errors: errs})
		return f.result()
	}

	f.apply(SubmitAccepted{})

	_, fieldErrs, err := f.registrar.Register(ctx, buildRequest(values, accepted))
	switch {
	case err != nil:
		logger.Log.Errorw("registration call failed", "err", err)
		f.apply(SubmitFailed{})
	case len(fieldErrs) > 0:
		f.apply(SubmitFailed{Errors: fieldErrorMap(fieldErrs)})
	default:
		f.apply(SubmitSucceeded{})
		f.scheduleReset()
	}

	return f.result()
}

// Reset clears the form back to Idle immediately and cancels any pending
// display-delay timer.
func (f *Form) Reset() {
	f.mu.Lock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	f.snap = NewSnapshot()
	f.mu.Unlock()
}

// Close releases the form's timer. Safe to call more than once.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

func (f *Form) apply(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = Reduce(f.rules, f.snap, ev)
}

func (f *Form) result() (State, map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.snap.clone()
	return snap.State, snap.Errors
}

// scheduleReset arms the Success display timer. The timer and the state
// it guards are released together: Reset and Close both stop it, and the
// fired callback clears its own handle.
func (f *Form) scheduleReset() {
	if f.resetDelay <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
	}
	f.resetTimer = time.AfterFunc(f.resetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.resetTimer = nil
		if f.snap.State == StateSuccess {
			f.snap = Reduce(f.rules, f.snap, ResetFired{})
		}
	})
}

func buildRequest(values map[string]string, accepted bool) models.RegisterRequest {
	return models.RegisterRequest{
		FirstName:       values[validation.FieldFirstName],
		LastName:        values[validation.FieldLastName],
		Email:           values[validation.FieldEmail],
		Password:        values[validation.FieldPassword],
		ConfirmPassword: values[validation.FieldConfirmPassword],
		DateOfBirth:     values[validation.FieldDateOfBirth],
		AcceptTerms:     accepted,
	}
}

func fieldErrorMap(errs []models.FieldError) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}
