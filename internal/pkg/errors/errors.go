package errors

import (
	"fmt"
)

const (
	CodeMalformedRow             = "MALFORMED_ROW"
	CodeEmptyTrace               = "EMPTY_TRACE"
	CodeNoPatternsFound          = "NO_PATTERNS_FOUND"
	CodeAggregationUndefined     = "AGGREGATION_UNDEFINED"
	CodePatternSourceUnavailable = "PATTERN_SOURCE_UNAVAILABLE"
	CodeUnorderedInput           = "UNORDERED_INPUT"
	CodeInvalidConfig            = "INVALID_CONFIG"
)

const (
	SeverityWarning = "warning"
	SeverityFatal   = "fatal"
)

var (
	// ErrMalformedRow is recorded for an input row missing a participant or a symbol. The row is skipped.
	ErrMalformedRow = New(SeverityWarning, CodeMalformedRow, "malformed row: participant or symbol is missing")

	// ErrEmptyTrace is recorded for a participant without events in the requested chart.
	ErrEmptyTrace = New(SeverityWarning, CodeEmptyTrace, "participant has no events for the requested chart")

	// ErrNoPatternsFound is recorded when the pattern source returns nothing. The report is empty.
	ErrNoPatternsFound = New(SeverityWarning, CodeNoPatternsFound, "pattern source returned no patterns")

	// ErrAggregationUndefined is recorded when there is nothing to average over.
	ErrAggregationUndefined = New(SeverityWarning, CodeAggregationUndefined, "aggregation undefined: no patterns to average over")

	// ErrPatternSourceUnavailable aborts the run.
	ErrPatternSourceUnavailable = New(SeverityFatal, CodePatternSourceUnavailable, "pattern source unavailable")

	// ErrUnorderedInput aborts the run when rows are known to arrive out of order.
	ErrUnorderedInput = New(SeverityFatal, CodeUnorderedInput, "input rows are not in chronological order")

	// ErrInvalidConfig aborts the run.
	ErrInvalidConfig = New(SeverityFatal, CodeInvalidConfig, "invalid configuration")
)

type Extras map[string]interface{}

type AnalysisError struct {
	Severity  string  `json:"severity" example:"warning"`
	ErrorCode string  `json:"code" example:"MALFORMED_ROW"`
	Message   string  `json:"message" example:"malformed row: participant or symbol is missing"`
	Extras    *Extras `json:"extras,omitempty"`
	cause     error
}

func New(severity string, errorCode string, message string) *AnalysisError {
	return &AnalysisError{
		Severity:  severity,
		ErrorCode: errorCode,
		Message:   message,
	}
}

func (e AnalysisError) WithMessage(format string, parts ...interface{}) *AnalysisError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e AnalysisError) WithExtras(extras Extras) *AnalysisError {
	e.Extras = &extras
	return &e
}

// WithCause attaches the underlying error so that errors.Is/As can see through.
func (e AnalysisError) WithCause(cause error) *AnalysisError {
	e.cause = cause
	return &e
}

func (e *AnalysisError) Fatal() bool {
	return e.Severity == SeverityFatal
}

func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrorCode, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// Is matches on the error code so that derived errors (WithMessage, WithExtras, ...)
// still compare equal to the sentinel they came from.
func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	if !ok {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}
