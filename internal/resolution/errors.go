package resolution

import (
	apperrors "topic-communities/internal/common/errors"
)

// flowError is a sentinel carrying the code used by the API and the workers.
// Its message is safe to show to end users.
type flowError struct {
	msg  string
	code apperrors.ErrorCode
}

func (e *flowError) Error() string                  { return e.msg }
func (e *flowError) ErrorCode() apperrors.ErrorCode { return e.code }

var (
	ErrSearch             error = &flowError{"Failed to search topics.", apperrors.ErrCodeSearchFailed}
	ErrTopicNotFound      error = &flowError{"Topic not found.", apperrors.ErrCodeTopicNotFound}
	ErrMalformedTopicData error = &flowError{"Malformed topic data received: name is missing or invalid.", apperrors.ErrCodeMalformedTopicData}
	ErrResolution         error = &flowError{"Failed to fetch communities.", apperrors.ErrCodeResolutionFailed}
	ErrSuperseded         error = &flowError{"Request superseded by a newer one.", apperrors.ErrCodeRequestSuperseded}
)
