package editing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agext/levenshtein"
)

// Error kinds reported by ErrorKind.
const (
	KindStructural  = "structural"
	KindValidation  = "validation"
	KindLookup      = "lookup"
	KindReference   = "reference"
	KindConsistency = "consistency"
)

var (
	ErrMalformedForm       = errors.New("malformed form")
	ErrMalformedField      = errors.New("malformed field")
	ErrRequiredFieldEmpty  = errors.New("required field empty")
	ErrInvalidValue        = errors.New("invalid value")
	ErrFieldNotFound       = errors.New("field not found")
	ErrChoiceFieldNotFound = errors.New("choice field not found")
	ErrIncorrectType       = errors.New("incorrect field type")
	ErrNotInList           = errors.New("not in reference list")
	ErrAmbiguousReference  = errors.New("ambiguous reference")
)

// ErrorClassifier is implemented by every error this package returns so
// callers can tell user mistakes from codec bugs.
type ErrorClassifier interface {
	ErrorKind() string
}

// ErrorKindOf returns the classification of err, or "" when err did not come
// from this package.
func ErrorKindOf(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}

// FormError reports a problem with a form or one of its fields. Kind is one of
// the Err* sentinels above.
type FormError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *FormError) Error() string {
	if e == nil {
		return ""
	}
	var msg string
	switch e.Kind {
	case ErrMalformedForm:
		msg = "the form is not in the expected form"
	case ErrMalformedField:
		msg = fmt.Sprintf("the %s field is not in the expected form", e.Field)
	case ErrRequiredFieldEmpty:
		msg = fmt.Sprintf("the %s field requires a value", e.Field)
	case ErrInvalidValue:
		msg = fmt.Sprintf("invalid value for field %s", e.Field)
	case ErrFieldNotFound:
		msg = fmt.Sprintf("field %s not found", e.Field)
	case ErrChoiceFieldNotFound:
		msg = fmt.Sprintf("there are no choice fields named %s", e.Field)
	case ErrIncorrectType:
		msg = fmt.Sprintf("field %s is of incorrect type", e.Field)
	default:
		msg = e.Kind.Error()
	}
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return msg
}

func (e *FormError) Unwrap() error { return e.Kind }

// ErrorKind classifies the error.
func (e *FormError) ErrorKind() string {
	switch e.Kind {
	case ErrMalformedForm, ErrMalformedField:
		return KindStructural
	case ErrRequiredFieldEmpty, ErrInvalidValue:
		return KindValidation
	default:
		return KindLookup
	}
}

func fieldError(kind error, field string) error {
	return &FormError{Kind: kind, Field: field}
}

func invalidValue(field string, err error) error {
	return &FormError{Kind: ErrInvalidValue, Field: field, Msg: err.Error()}
}

// ReferenceError reports a value that names no entry of a reference list.
type ReferenceError struct {
	Value      string
	List       string
	Suggestion string
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("%s is not in the %s list", e.Value, e.List)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *ReferenceError) Unwrap() error { return ErrNotInList }

// ErrorKind classifies the error.
func (e *ReferenceError) ErrorKind() string { return KindReference }

// AmbiguousReferenceError reports a value that names more than one entry of a
// reference list, so no single record can be chosen.
type AmbiguousReferenceError struct {
	Value   string
	List    string
	Matches int
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("%s matches %d entries of the %s list", e.Value, e.Matches, e.List)
}

func (e *AmbiguousReferenceError) Unwrap() error { return ErrAmbiguousReference }

// ErrorKind classifies the error.
func (e *AmbiguousReferenceError) ErrorKind() string { return KindReference }

// ConsistencyError is a relationship rule a record violates.
type ConsistencyError string

const (
	ErrBroadcastHasNetworkAndAffiliate  ConsistencyError = "a news broadcast cannot have both a network and an affiliate"
	ErrBroadcastHasNoNetworkOrAffiliate ConsistencyError = "a news broadcast must have either a network or an affiliate"
)

func (e ConsistencyError) Error() string { return string(e) }

// ErrorKind classifies the error.
func (e ConsistencyError) ErrorKind() string { return KindConsistency }

// suggest returns the candidate closest to value when it is near enough to be
// a plausible typo.
func suggest(value string, candidates []string) string {
	best := ""
	bestDistance := -1
	for _, candidate := range candidates {
		d := levenshtein.Distance(strings.ToLower(value), strings.ToLower(candidate), nil)
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	limit := len(value) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDistance < 0 || bestDistance > limit {
		return ""
	}
	return best
}

func notInList(value, list string, candidates []string) error {
	return &ReferenceError{Value: value, List: list, Suggestion: suggest(value, candidates)}
}
