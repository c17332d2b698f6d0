package form

import (
	"context"
	"maps"
	"reflect"
	"slices"
	"sync"

	dErrors "voterroll/pkg/domain-errors"
)

// Phase is the externally visible state of a Form.
type Phase string

const (
	PhasePristine        Phase = "pristine"
	PhaseEditing         Phase = "editing"
	PhaseValid           Phase = "valid"
	PhaseInvalid         Phase = "invalid"
	PhaseSubmitting      Phase = "submitting"
	PhaseSubmitSucceeded Phase = "submit_succeeded"
	PhaseSubmitFailed    Phase = "submit_failed"
)

// SubmitFunc delivers validated values to the form's owner.
type SubmitFunc func(ctx context.Context, values Values) error

// ErrSubmitInFlight is returned when Submit is called while another submit
// has not returned yet.
var ErrSubmitInFlight = dErrors.New(dErrors.CodeInvalidState, "submit already in progress")

// Form tracks one entry screen. Validation runs synchronously, so the
// intermediate "validating" step of a blur or submit is never observable.
type Form struct {
	mu             sync.Mutex
	rules          RuleSet
	initial        Values
	values         Values
	errors         map[string]string
	touched        map[string]bool
	submitting     bool
	phase          Phase
	resetOnSuccess bool
}

// Option configures a Form.
type Option func(*Form)

// WithResetOnSuccess restores the initial values after a successful submit.
func WithResetOnSuccess() Option {
	return func(f *Form) {
		f.resetOnSuccess = true
	}
}

// New creates a pristine form seeded with defaults. defaults is copied.
func New(rules RuleSet, defaults Values, opts ...Option) *Form {
	f := &Form{
		rules:   rules,
		initial: cloneValues(defaults),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.resetLocked()
	return f
}

// Change records a new value. Fields the user already left are revalidated
// immediately so a fixed error clears while typing.
func (f *Form) Change(field string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[field] = value
	if f.touched[field] {
		f.errors[field] = ValidateField(f.rules, field, value, f.values)
	}
	if !f.submitting {
		f.phase = PhaseEditing
	}
}

// Blur marks field touched and validates it.
func (f *Form) Blur(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
	f.errors[field] = ValidateField(f.rules, field, f.values[field], f.values)
	if !f.submitting {
		f.phase = f.phaseFromErrorsLocked()
	}
}

// Submit validates the whole form and, when valid, calls fn exactly once.
//
// A submit while another is in flight returns ErrSubmitInFlight and changes
// nothing. An invalid form returns a CodeValidation error carrying the field
// messages and leaves submitting false. An error from fn is returned as-is.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	res := ValidateForm(f.rules, f.values)
	f.errors = res.Errors
	for field := range f.rules {
		f.touched[field] = true
	}
	if !res.IsValid {
		f.phase = PhaseInvalid
		f.mu.Unlock()
		return dErrors.Validation(messages(res.Errors)...)
	}
	f.submitting = true
	f.phase = PhaseSubmitting
	values := cloneValues(f.values)
	f.mu.Unlock()

	// A panicking fn must not leave the form stuck in submitting.
	returned := false
	defer func() {
		if returned {
			return
		}
		f.mu.Lock()
		f.submitting = false
		f.phase = PhaseSubmitFailed
		f.mu.Unlock()
	}()

	err := fn(ctx, values)
	returned = true

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.phase = PhaseSubmitFailed
		return err
	}
	if f.resetOnSuccess {
		f.resetLocked()
		return nil
	}
	f.phase = PhaseSubmitSucceeded
	return nil
}

// Reset restores the initial values and clears errors, touched and submitting.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.values = cloneValues(f.initial)
	f.errors = make(map[string]string)
	f.touched = make(map[string]bool)
	f.submitting = false
	f.phase = PhasePristine
}

func (f *Form) phaseFromErrorsLocked() Phase {
	for _, msg := range f.errors {
		if msg != "" {
			return PhaseInvalid
		}
	}
	return PhaseValid
}

// Value returns the current value of field.
func (f *Form) Value(field string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneValues(f.values)
}

// Error returns the current message for field, or "".
func (f *Form) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[field]
}

// Errors returns a copy of the non-empty error messages.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string)
	for k, v := range f.errors {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func (f *Form) Touched(field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

func (f *Form) IsSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// IsDirty reports whether the values differ from the initial snapshot.
func (f *Form) IsDirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !reflect.DeepEqual(f.values, f.initial)
}

func cloneValues(v Values) Values {
	out := make(Values, len(v))
	maps.Copy(out, v)
	return out
}

// messages returns the non-empty messages ordered by field name.
func messages(errs map[string]string) []string {
	out := make([]string, 0, len(errs))
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		if msg := errs[field]; msg != "" {
			out = append(out, msg)
		}
	}
	return out
}
