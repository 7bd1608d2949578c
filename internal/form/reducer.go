package form

import (
	"github.com/tiiiiiimmy/nextJS-login-ui/internal/validation"
)

// Reduce computes the next snapshot from the current one and an event.
// It never mutates its input; transitions are deterministic given the
// same snapshot, event and rule set.
func Reduce(rules *validation.Rules, snap Snapshot, ev Event) Snapshot {
	next := snap.clone()

	switch e := ev.(type) {
	case FieldChanged:
		next.Values[e.Field] = e.Value
		revalidate(rules, &next, e.Field)
		// Either password field changing re-checks the confirmation.
		if e.Field == validation.FieldPassword && rules.Variant().ConfirmPassword {
			revalidate(rules, &next, validation.FieldConfirmPassword)
		}

	case TermsToggled:
		next.AcceptTerms = e.Accepted
		revalidate(rules, &next, validation.FieldAcceptTerms)

	case FieldBlurred:
		next.Touched.Touch(e.Field)
		revalidate(rules, &next, e.Field)

	case SubmitStarted:
		next.Submitting = true
		next.Touched.TouchAll(rules.Variant().Fields())

	case ValidationFailed:
		next.Errors = copyErrors(e.Errors)
		next.State = StateFailure

	case SubmitAccepted:
		next.Errors = make(map[string]string)
		next.State = StateWarning

	case SubmitSucceeded:
		next.Errors = make(map[string]string)
		next.State = StateSuccess

	case SubmitFailed:
		if len(e.Errors) == 0 {
			next.Errors[FieldForm] = MsgSubmissionFailed
		} else {
			for field, msg := range e.Errors {
				next.Errors[field] = msg
			}
		}
		next.State = StateFailure

	case ResetFired:
		next = NewSnapshot()
	}

	return next
}

func revalidate(rules *validation.Rules, snap *Snapshot, field string) {
	res := rules.Field(field, validation.Form{
		Values:      snap.Values,
		AcceptTerms: snap.AcceptTerms,
	})
	if res.OK {
		delete(snap.Errors, field)
	} else {
		snap.Errors[field] = res.Message
	}
}

func copyErrors(errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
