// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"topic-communities/internal/common/config"
	"topic-communities/internal/common/logger"
	"topic-communities/internal/common/metrics"
	"topic-communities/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// HandlerFunc is the job handler signature every worker package exposes.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Manager opens job workers and keeps them for shutdown.
type Manager struct {
	client  *Client
	obs     *observability.Observability
	logger  logger.Logger
	workers []worker.JobWorker
}

func NewManager(client *Client, obs *observability.Observability, log logger.Logger) *Manager {
	return &Manager{client: client, obs: obs, logger: log}
}

// Start opens a worker for taskType unless it is disabled.
func (m *Manager) Start(taskType string, wcfg config.WorkerConfig, handler HandlerFunc) {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return
	}

	w := m.client.Zeebe().NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, m.obs)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()
	m.workers = append(m.workers, w)

	m.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
}

// Close stops all workers and waits for in-flight jobs.
func (m *Manager) Close() {
	for _, w := range m.workers {
		w.Close()
		w.AwaitClose()
	}
}

// Instrument wraps handler with the active-jobs gauge, the duration histogram
// and the OpenTelemetry job meter.
func Instrument(taskType string, handler HandlerFunc, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer func() {
			elapsed := time.Since(start)
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJob(context.Background(), taskType, "processed", elapsed)
		}()
		handler(client, job)
	}
}
