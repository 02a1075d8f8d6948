package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedErr struct {
	msg  string
	code ErrorCode
}

func (e *codedErr) Error() string        { return e.msg }
func (e *codedErr) ErrorCode() ErrorCode { return e.code }

var (
	errResolution = &codedErr{"Failed to fetch communities.", ErrCodeResolutionFailed}
	errNotFound   = &codedErr{"Topic not found.", ErrCodeTopicNotFound}
	errSearch     = &codedErr{"Failed to search topics.", ErrCodeSearchFailed}
)

// ==========================
// FromResolutionError
// ==========================

func TestFromResolutionError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    ErrorCode
		wantMessage string
	}{
		{
			name:        "single sentinel",
			err:         fmt.Errorf("%w: dial tcp", errSearch),
			wantCode:    ErrCodeSearchFailed,
			wantMessage: "Failed to search topics.",
		},
		{
			name:        "most specific code, outer message",
			err:         fmt.Errorf("%w: %w", errResolution, fmt.Errorf("%w: topic9", errNotFound)),
			wantCode:    ErrCodeTopicNotFound,
			wantMessage: "Failed to fetch communities.",
		},
		{
			name:        "joined",
			err:         stderrors.Join(errResolution, stderrors.New("timeout")),
			wantCode:    ErrCodeResolutionFailed,
			wantMessage: "Failed to fetch communities.",
		},
		{
			name:        "unclassified",
			err:         stderrors.New("boom"),
			wantCode:    ErrCodeInternal,
			wantMessage: "Unexpected error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std := FromResolutionError(tt.err)
			require.NotNil(t, std)
			assert.Equal(t, tt.wantCode, std.Code)
			assert.Equal(t, tt.wantMessage, std.Message)
			assert.Equal(t, tt.err.Error(), std.Details)
		})
	}
}

func TestFromResolutionError_KeepsStandardError(t *testing.T) {
	orig := NewInvalidInputError("query: required")
	assert.Same(t, orig, FromResolutionError(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, FromResolutionError(nil))
}

// ==========================
// Mapping
// ==========================

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeTopicNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(ErrCodeMalformedTopicData))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidInput))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrCodeRequestSuperseded))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeSuggestionFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeSearchFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeResolutionFailed))
}

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		code        ErrorCode
		wantRetries int
	}{
		{ErrCodeSearchFailed, 3},
		{ErrCodeResolutionFailed, 3},
		{ErrCodeSuggestionFailed, 2},
		{ErrCodeTopicNotFound, 0},
		{ErrCodeMalformedTopicData, 0},
		{ErrCodeInvalidInput, 0},
		{ErrCodeInternal, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			bpmn := ConvertToBPMNError(newError(tt.code, "m", "d"))
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, tt.wantRetries > 0, bpmn.Retryable)
			assert.Equal(t, string(tt.code), bpmn.ErrorVariables["originalErrorCode"])

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, "m", vars["errorMessage"])
			assert.Contains(t, vars, "timestamp")
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchFailed))
	assert.Equal(t, "RESOLUTION", GetErrorCategory(ErrCodeTopicNotFound))
	assert.Equal(t, "RESOLUTION", GetErrorCategory(ErrCodeRequestSuperseded))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeSuggestionFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
