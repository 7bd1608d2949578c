package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/tiiiiiimmy/nextJS-login-ui/internal/clock"
)

// Field names as they appear in request bodies and form state.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldDateOfBirth     = "dateOfBirth"
	FieldAcceptTerms     = "acceptTerms"
)

// Validation messages, shared verbatim by the browser-side form core and
// the server-side request middleware so the two sites never disagree.
const (
	MsgFirstNameRequired = "First name is required"
	MsgFirstNameTooShort = "First name must be at least 2 characters"
	MsgFirstNameTooLong  = "First name must be at most 100 characters"

	MsgLastNameRequired = "Last name is required"
	MsgLastNameTooShort = "Last name must be at least 2 characters"
	MsgLastNameTooLong  = "Last name must be at most 100 characters"

	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email address"
	MsgEmailNotGmail = "Only gmail.com addresses are accepted"
	MsgEmailTaken    = "This email address is already registered"

	MsgPasswordRequired  = "Password is required"
	MsgPasswordTooShort  = "Password must be at least 8 characters"
	MsgPasswordTooLong   = "Password must be at most 30 characters"
	MsgPasswordNoUpper   = "Password must contain an uppercase letter"
	MsgPasswordNoLower   = "Password must contain a lowercase letter"
	MsgPasswordNoDigit   = "Password must contain a number"
	MsgPasswordNoSpecial = "Password must contain a special character"

	MsgConfirmRequired = "Please confirm your password"
	MsgConfirmMismatch = "Passwords do not match"

	MsgDOBRequired = "Date of birth is required"
	MsgDOBInvalid  = "Please enter a valid date"
	MsgDOBFuture   = "Date of birth must be in the past"
	MsgDOBUnderage = "You must be at least 18 years old"

	MsgTermsRequired = "You must accept the terms and conditions"
)

const (
	nameMinLen     = 2
	nameMaxLen     = 100
	passwordMinLen = 8
	passwordMaxLen = 30
	adultAge       = 18

	specialChars = `!@#$%^&*(),.?":{}|<>`
	dateLayout   = "2006-01-02"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of a single rule evaluation. Rules never panic;
// a failed check carries a human-readable message.
type Result struct {
	OK      bool
	Message string
}

func pass() Result {
	return Result{OK: true}
}

func fail(message string) Result {
	return Result{Message: message}
}

// FirstName checks a given name: required, 2..100 characters after trimming.
func FirstName(value string) Result {
	return name(value, MsgFirstNameRequired, MsgFirstNameTooShort, MsgFirstNameTooLong)
}

// LastName checks a family name with the same bounds as FirstName.
func LastName(value string) Result {
	return name(value, MsgLastNameRequired, MsgLastNameTooShort, MsgLastNameTooLong)
}

func name(value, required, tooShort, tooLong string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(required)
	}
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < nameMinLen {
		return fail(tooShort)
	}
	if len(trimmed) > nameMaxLen {
		return fail(tooLong)
	}
	return pass()
}

// Password checks length bounds first, then character classes in a fixed
// order. Only the first missing class is reported.
func Password(value string) Result {
	if value == "" {
		return fail(MsgPasswordRequired)
	}
	if len(value) < passwordMinLen {
		return fail(MsgPasswordTooShort)
	}
	if len(value) > passwordMaxLen {
		return fail(MsgPasswordTooLong)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return fail(MsgPasswordNoUpper)
	case !hasLower:
		return fail(MsgPasswordNoLower)
	case !hasDigit:
		return fail(MsgPasswordNoDigit)
	case !hasSpecial:
		return fail(MsgPasswordNoSpecial)
	}
	return pass()
}

// ConfirmPassword checks the confirmation against the primary password.
// It must be re-run whenever either field changes.
func ConfirmPassword(password, confirm string) Result {
	if confirm == "" {
		return fail(MsgConfirmRequired)
	}
	if confirm != password {
		return fail(MsgConfirmMismatch)
	}
	return pass()
}

// DateOfBirth checks a YYYY-MM-DD value against the given current time:
// parsable, strictly before today's date, and at least 18 whole years
// ago. Comparison is at date granularity so the time of day of now
// never matters.
func DateOfBirth(value string, now time.Time) Result {
	if strings.TrimSpace(value) == "" {
		return fail(MsgDOBRequired)
	}
	dob, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return fail(MsgDOBInvalid)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !dob.Before(today) {
		return fail(MsgDOBFuture)
	}
	if age(dob, now) < adultAge {
		return fail(MsgDOBUnderage)
	}
	return pass()
}

// age computes whole years elapsed, subtracting one when the birthday
// has not yet occurred this year.
func age(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// Terms checks the terms-and-conditions acceptance flag.
func Terms(accepted bool) Result {
	if !accepted {
		return fail(MsgTermsRequired)
	}
	return pass()
}

// Email checks shape and domain, then consults the taken predicate with
// the lower-cased address. A nil predicate skips the uniqueness pre-check.
func Email(value string, taken func(email string) bool) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fail(MsgEmailRequired)
	}
	if !emailShape.MatchString(trimmed) {
		return fail(MsgEmailInvalid)
	}
	normalized := strings.ToLower(trimmed)
	if !strings.HasSuffix(normalized, "@gmail.com") {
		return fail(MsgEmailNotGmail)
	}
	if taken != nil && taken(normalized) {
		return fail(MsgEmailTaken)
	}
	return pass()
}

// Normalize returns the canonical form of an email address used for
// uniqueness checks and storage.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Variant selects which optional signup fields a flow collects. Email and
// password are always collected.
type Variant struct {
	Names           bool
	ConfirmPassword bool
	DateOfBirth     bool
	Terms           bool
}

// FullVariant is the complete signup form.
var FullVariant = Variant{Names: true, ConfirmPassword: true, DateOfBirth: true, Terms: true}

// NamesVariant collects names alongside the credentials. This is the
// registration endpoint's default contract.
var NamesVariant = Variant{Names: true}

// Fields returns the variant's field names in evaluation order.
func (v Variant) Fields() []string {
	fields := make([]string, 0, 7)
	if v.Names {
		fields = append(fields, FieldFirstName, FieldLastName)
	}
	fields = append(fields, FieldEmail, FieldPassword)
	if v.ConfirmPassword {
		fields = append(fields, FieldConfirmPassword)
	}
	if v.DateOfBirth {
		fields = append(fields, FieldDateOfBirth)
	}
	if v.Terms {
		fields = append(fields, FieldAcceptTerms)
	}
	return fields
}

// Form is one registration attempt's raw values keyed by field name.
// AcceptTerms rides along as a separate flag since it is a boolean.
type Form struct {
	Values      map[string]string
	AcceptTerms bool
}

// Rules bundles the per-field rules with their injected collaborators:
// the email-taken predicate and a clock for age computation.
type Rules struct {
	variant    Variant
	emailTaken func(email string) bool
	clock      clock.Clock
}

// NewRules creates a rule set for the given variant. The taken predicate
// may be nil when no uniqueness pre-check is available.
func NewRules(variant Variant, emailTaken func(email string) bool, clk clock.Clock) *Rules {
	if clk == nil {
		clk = clock.New()
	}
	return &Rules{variant: variant, emailTaken: emailTaken, clock: clk}
}

// Variant returns the flow variant this rule set was built for.
func (r *Rules) Variant() Variant {
	return r.variant
}

// Field evaluates one field of the form.
func (r *Rules) Field(field string, form Form) Result {
	switch field {
	case FieldFirstName:
		return FirstName(form.Values[FieldFirstName])
	case FieldLastName:
		return LastName(form.Values[FieldLastName])
	case FieldEmail:
		return Email(form.Values[FieldEmail], r.emailTaken)
	case FieldPassword:
		return Password(form.Values[FieldPassword])
	case FieldConfirmPassword:
		return ConfirmPassword(form.Values[FieldPassword], form.Values[FieldConfirmPassword])
	case FieldDateOfBirth:
		return DateOfBirth(form.Values[FieldDateOfBirth], r.clock.Now())
	case FieldAcceptTerms:
		return Terms(form.AcceptTerms)
	}
	return pass()
}

// Evaluate runs every rule of the variant against the form and returns
// the field-to-message map. An empty map means the form is valid.
func (r *Rules) Evaluate(form Form) map[string]string {
	errs := make(map[string]string)
	for _, field := range r.variant.Fields() {
		if res := r.Field(field, form); !res.OK {
			errs[field] = res.Message
		}
	}
	return errs
}
