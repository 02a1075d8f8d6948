// Package errors provides the error taxonomy shared by the HTTP API and the
// Zeebe job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSearchFailed       ErrorCode = "SEARCH_FAILED"
	ErrCodeTopicNotFound      ErrorCode = "TOPIC_NOT_FOUND"
	ErrCodeMalformedTopicData ErrorCode = "MALFORMED_TOPIC_DATA"
	ErrCodeResolutionFailed   ErrorCode = "RESOLUTION_FAILED"
	ErrCodeRequestSuperseded  ErrorCode = "REQUEST_SUPERSEDED"
	ErrCodeSuggestionFailed   ErrorCode = "SUGGESTION_FAILED"
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
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

// Coded is implemented by domain errors that carry an ErrorCode.
type Coded interface {
	error
	ErrorCode() ErrorCode
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: GetRetryCount(code) > 0,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", details)
}

// NewSuggestionFailedError creates a retryable generator error.
func NewSuggestionFailedError(err error) *StandardError {
	return newError(ErrCodeSuggestionFailed, "Community suggestion failed", err.Error())
}

// NewInternalError wraps an unclassified error.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error())
}

// ==========================
// 4. Classification
// ==========================

// codePriority orders codes when a wrapped error carries several of them.
// The most specific cause wins.
var codePriority = map[ErrorCode]int{
	ErrCodeRequestSuperseded:  6,
	ErrCodeTopicNotFound:      5,
	ErrCodeMalformedTopicData: 4,
	ErrCodeInvalidInput:       3,
	ErrCodeSearchFailed:       2,
	ErrCodeResolutionFailed:   1,
	ErrCodeSuggestionFailed:   1,
}

// FromResolutionError maps an error returned by the resolution flow to a
// StandardError. The message comes from the outermost coded error, the code
// from the most specific one found anywhere in the chain.
func FromResolutionError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var std *StandardError
	if stderrors.As(err, &std) {
		return std
	}

	var (
		message string
		best    ErrorCode
	)
	walk(err, func(c Coded) {
		if message == "" {
			message = c.Error()
		}
		if best == "" || codePriority[c.ErrorCode()] > codePriority[best] {
			best = c.ErrorCode()
		}
	})
	if best == "" {
		return NewInternalError(err)
	}
	return newError(best, message, err.Error())
}

func walk(err error, visit func(Coded)) {
	if err == nil {
		return
	}
	if c, ok := err.(Coded); ok {
		visit(c)
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			walk(inner, visit)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	}
}

// HTTPStatus returns the status code used by the API for an error code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeTopicNotFound:
		return http.StatusNotFound
	case ErrCodeMalformedTopicData:
		return http.StatusUnprocessableEntity
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeRequestSuperseded:
		return http.StatusConflict
	case ErrCodeSuggestionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// BPMNErrorMapping maps internal codes to the error codes modelled in BPMN.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeSearchFailed:       "SEARCH_FAILED",
	ErrCodeTopicNotFound:      "TOPIC_NOT_FOUND",
	ErrCodeMalformedTopicData: "MALFORMED_TOPIC_DATA",
	ErrCodeResolutionFailed:   "RESOLUTION_FAILED",
	ErrCodeRequestSuperseded:  "REQUEST_SUPERSEDED",
	ErrCodeSuggestionFailed:   "SUGGESTION_FAILED",
	ErrCodeInvalidInput:       "INVALID_INPUT",
}

// GetRetryCount returns how many retries a job failing with code should get.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSearchFailed, ErrCodeResolutionFailed:
		return 3 // store outages
	case ErrCodeSuggestionFailed:
		return 2
	default:
		return 0 // business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError into the shape sent to Zeebe.
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

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "TOPIC") || strings.Contains(codeStr, "RESOLUTION") || strings.Contains(codeStr, "SUPERSEDED"):
		return "RESOLUTION"
	case strings.Contains(codeStr, "SUGGESTION"):
		return "AI"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
