package utils

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrSavedSearchNotFound  = errors.New("saved search not found")
	ErrDatabaseError        = errors.New("database error")
	ErrStaleRequest         = errors.New("a newer request from this session superseded this one")
	ErrImageNotFound        = errors.New("no image found for this query")
	ErrImageServiceDisabled = errors.New("image service not configured")
)

// Generation failure kinds. Every failure of a recommendation request is
// exactly one of these; callers match with errors.Is.
var (
	ErrEmptyResponse   = errors.New("the AI returned an empty response")
	ErrMalformedJSON   = errors.New("the AI returned an invalid suggestion format (JSON could not be parsed)")
	ErrUnexpectedShape = errors.New("the AI returned data that is not a JSON array or a recognizable wrapper object")
	ErrEmptyResultSet  = errors.New("the AI returned no suggestions")
	ErrSchemaViolation = errors.New("the AI returned suggestions that do not match the expected structure")
	ErrTruncatedOutput = errors.New("the AI's response was too long and got cut off; try simplifying your interests or request")
	ErrUpstreamFailure = errors.New("failed to get travel suggestions, please try again")
)

var generationKinds = []struct {
	kind error
	code string
}{
	{ErrEmptyResponse, "empty_response"},
	{ErrMalformedJSON, "malformed_json"},
	{ErrUnexpectedShape, "unexpected_shape"},
	{ErrEmptyResultSet, "empty_result_set"},
	{ErrSchemaViolation, "schema_violation"},
	{ErrTruncatedOutput, "truncated_output"},
	{ErrUpstreamFailure, "upstream_failure"},
}

// GenerationError tags a failure with its kind and keeps the diagnostic detail
// (raw response prefix, offending field, provider message) next to it.
type GenerationError struct {
	Kind   error
	Detail string
	Cause  error
}

func NewGenerationError(kind error, detail string, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Detail: detail, Cause: cause}
}

func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *GenerationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Message is the single human readable sentence shown to the traveller.
// Upstream failures may carry a more specific provider message in Detail.
func (e *GenerationError) Message() string {
	if errors.Is(e.Kind, ErrUpstreamFailure) && e.Detail != "" {
		return e.Detail
	}
	return e.Kind.Error()
}

// GenerationErrorCode returns the stable machine code of err's kind, or ""
// when err is not a generation failure.
func GenerationErrorCode(err error) string {
	// The outermost tag wins: a truncated batch that also failed to parse is truncated_output.
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		err = genErr.Kind
	}
	for _, k := range generationKinds {
		if errors.Is(err, k.kind) {
			return k.code
		}
	}
	return ""
}
