// internal/workers/topic/resolve-communities/handler.go
package resolvecommunities

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "topic-communities/internal/common/errors"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/common/metrics"
	"topic-communities/internal/common/validation"
	"topic-communities/internal/models"
)

const TaskType = "resolve-communities"

type Resolver interface {
	ResolveCommunitiesForTopic(ctx context.Context, topicID string) (*models.ResolutionResult, error)
}

type Handler struct {
	config       *Config
	resolver     Resolver
	contract     *validation.Contract
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, resolver Resolver, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		resolver:     resolver,
		contract:     validation.MustContract(config.registry(), TaskType),
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

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if res := h.contract.ValidateInputJSON([]byte(job.Variables)); !res.Valid {
		return nil, apperrors.NewInvalidInputError(res.Error())
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute resolves the communities of input.TopicID. Flow errors are
// returned unchanged so the error handler can classify them.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.resolver.ResolveCommunitiesForTopic(ctx, input.TopicID)
	if err != nil {
		return nil, err
	}

	h.logger.Info("communities resolved", map[string]interface{}{
		"topicId":     input.TopicID,
		"count":       len(res.Communities),
		"aiSuggested": res.AISuggested,
	})
	return res, nil
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
