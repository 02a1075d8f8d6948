package suggestcommunities

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "topic-communities/internal/common/errors"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/suggest"
)

// ==========================
// Mock Generator
// ==========================

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Suggest(ctx context.Context, in suggest.Input) (*suggest.Output, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suggest.Output), args.Error(1)
}

// ==========================
// Execute
// ==========================

func TestHandler_Execute(t *testing.T) {
	input := &Input{TopicName: "Química Orgánica", Tags: []string{"compuestos"}}

	tests := []struct {
		name      string
		out       *suggest.Output
		err       error
		wantCode  apperrors.ErrorCode
		wantCount int
	}{
		{
			name:      "success",
			out:       &suggest.Output{Communities: []suggest.Suggestion{{Name: "A"}, {Name: "B"}}},
			wantCount: 2,
		},
		{
			name:      "nil list becomes empty",
			out:       &suggest.Output{},
			wantCount: 0,
		},
		{
			name:     "provider failure is retryable",
			err:      errors.New("503 from provider"),
			wantCode: apperrors.ErrCodeSuggestionFailed,
		},
		{
			name:     "breaker open",
			err:      suggest.ErrCircuitOpen,
			wantCode: apperrors.ErrCodeSuggestionFailed,
		},
		{
			name:     "bad input",
			err:      errors.Join(suggest.ErrInvalidInput, errors.New("topicName is blank")),
			wantCode: apperrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &MockGenerator{}
			gen.On("Suggest", mock.Anything, *input).Return(tt.out, tt.err)
			h := NewHandler(LoadConfig(), gen, logger.NewTestLogger(t))

			out, err := h.Execute(context.Background(), input)
			gen.AssertExpectations(t)

			if tt.wantCode != "" {
				var stdErr *apperrors.StandardError
				require.ErrorAs(t, err, &stdErr)
				assert.Equal(t, tt.wantCode, stdErr.Code)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, out.Communities)
			assert.Len(t, out.Communities, tt.wantCount)
		})
	}
}

func TestHandler_Execute_NoGenerator(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewNoOpLogger())

	_, err := h.Execute(context.Background(), &Input{TopicName: "x"})
	std := apperrors.FromResolutionError(err)
	assert.Equal(t, apperrors.ErrCodeSuggestionFailed, std.Code)
	assert.Equal(t, 2, apperrors.ConvertToBPMNError(std).Retries)
}
