// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Pipeline stage errors
	ErrCodeAnswerLoadFailed ErrorCode = "ANSWER_LOAD_FAILED"
	ErrCodeNoScoresComputed ErrorCode = "NO_SCORES_COMPUTED"
	ErrCodePersistFailed    ErrorCode = "RECOMMENDATION_PERSIST_FAILED"

	// Enrichment errors (recovered locally, never fail the pipeline)
	ErrCodeEnrichmentFailed ErrorCode = "ENRICHMENT_FAILED"
	ErrCodeLLMTimeout       ErrorCode = "LLM_TIMEOUT"

	// Worker surface errors
	ErrCodeInputParsingFailed ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"

	// Infrastructure errors
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// NewAnswerLoadFailedError creates a retryable storage read error.
func NewAnswerLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnswerLoadFailed,
		Message:   "Failed to load answers for attempt",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoScoresComputedError signals that scoring produced an empty category map.
func NewNoScoresComputedError(attemptID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoScoresComputed,
		Message:   "no recommendations generated",
		Details:   fmt.Sprintf("attemptId: %d", attemptID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistFailedError creates a retryable recommendation write error.
func NewPersistFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistFailed,
		Message:   "Failed to replace recommendations",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnrichmentFailedError records a single-candidate enrichment failure.
// Callers recover by substituting the baseline description.
func NewEnrichmentFailedError(career string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentFailed,
		Message:   "Text generation failed for candidate",
		Details:   fmt.Sprintf("career: %s, error: %s", career, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates an enrichment timeout error.
func NewLLMTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Text generation timeout",
		Details:   "generation call exceeded timeout threshold",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputParsingFailedError creates a non-retryable job variable parse error.
func NewInputParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputParsingFailed,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeAnswerLoadFailed:         "ANSWER_LOAD_FAILED",
	ErrCodeNoScoresComputed:         "NO_SCORES_COMPUTED",
	ErrCodePersistFailed:            "RECOMMENDATION_PERSIST_FAILED",
	ErrCodeEnrichmentFailed:         "ENRICHMENT_FAILED",
	ErrCodeLLMTimeout:               "LLM_TIMEOUT",
	ErrCodeInputParsingFailed:       "INPUT_PARSING_FAILED",
	ErrCodeValidationFailed:         "VALIDATION_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAnswerLoadFailed,
		ErrCodePersistFailed,
		ErrCodeDatabaseConnectionFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ANSWER") || strings.Contains(codeStr, "SCORES"):
		return "SCORING"
	case strings.Contains(codeStr, "ENRICHMENT") || strings.Contains(codeStr, "LLM"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "PERSIST"):
		return "DATABASE"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
