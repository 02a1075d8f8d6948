// internal/workers/ai/suggest-communities/handler.go
package suggestcommunities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "topic-communities/internal/common/errors"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/common/metrics"
	"topic-communities/internal/suggest"
)

// TaskType exposes the generator on its own. Unlike the resolution flow,
// generator failures here fail the job.
const TaskType = suggest.TaskType

type Handler struct {
	config       *Config
	generator    suggest.Generator
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, generator suggest.Generator, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		generator:    generator,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

// Execute calls the generator. The generator validates input and output
// against the registry contract itself.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.generator == nil {
		return nil, apperrors.NewSuggestionFailedError(errors.New("no suggestion generator configured"))
	}

	out, err := h.generator.Suggest(ctx, *input)
	switch {
	case errors.Is(err, suggest.ErrInvalidInput):
		return nil, apperrors.NewInvalidInputError(err.Error())
	case err != nil:
		return nil, apperrors.NewSuggestionFailedError(err)
	}

	if out.Communities == nil {
		out.Communities = []suggest.Suggestion{}
	}
	h.logger.Info("communities suggested", map[string]interface{}{
		"topicName": input.TopicName,
		"count":     len(out.Communities),
	})
	return out, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := apperrors.FromResolutionError(err).Code
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
