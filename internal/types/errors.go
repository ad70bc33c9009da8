package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for rule parsing and application.
var (
	// ErrEmptyRules indicates a rules string that is empty after trimming.
	ErrEmptyRules = errors.New("empty rules string provided")

	// ErrMissingSeparator indicates a statement without the ':' separator.
	ErrMissingSeparator = errors.New("invalid statement format")

	// ErrEmptySelector indicates a statement whose selector is blank.
	ErrEmptySelector = errors.New("empty selector in statement")

	// ErrEmptyActions indicates a statement whose action list is blank.
	ErrEmptyActions = errors.New("no actions specified")

	// ErrEmptyClassList indicates a +/- token without a class name.
	ErrEmptyClassList = errors.New("empty class list")

	// ErrInvalidAttribute indicates an attribute assignment with a blank key.
	ErrInvalidAttribute = errors.New("invalid attribute assignment")

	// ErrUnknownAction indicates a token matching none of the action forms.
	ErrUnknownAction = errors.New("unknown action format")

	// ErrInvalidSelector indicates selector text the CSS matcher rejects.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidClassName indicates a class token the DOM refuses (whitespace).
	ErrInvalidClassName = errors.New("invalid class name")

	// ErrInvalidAttributeName indicates an attribute name the DOM refuses.
	ErrInvalidAttributeName = errors.New("invalid attribute name")

	// ErrNoClickedElement indicates an invocation without an anchor element.
	ErrNoClickedElement = errors.New("no clicked element")

	// ErrMissingFormField indicates board markup lacking the card-moved form
	// or one of its inputs.
	ErrMissingFormField = errors.New("missing form field")

	// ErrNoPopup indicates a close request without an open popup.
	ErrNoPopup = errors.New("no popup open")
)

// ParseError reports a grammar violation. Message carries the human-readable
// explanation including the offending fragment and the expected shape.
type ParseError struct {
	Err       error  // one of the grammar sentinels
	Statement string // offending statement or token
	Message   string
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ResolveError reports a selector the DOM query mechanism rejected after all
// custom combinator handling was exhausted.
type ResolveError struct {
	Selector     string // as authored
	Interpolated string // after {…} substitution
	Cause        error  // matcher error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("Invalid selector: %q\nAfter interpolation: %q\nCause: %v\n%s",
		e.Selector, e.Interpolated, e.Cause, SupportedPatterns)
}

// Unwrap exposes both the sentinel and the matcher's own error.
func (e *ResolveError) Unwrap() []error {
	return []error{ErrInvalidSelector, e.Cause}
}
