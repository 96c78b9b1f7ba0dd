// Package processrecommendations implements the recommendation.process job
// worker. It validates job variables, runs the recommendation pipeline for
// the attempt and publishes the structured result back to the workflow.
package processrecommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	"vocational-workers/internal/common/errors"
	"vocational-workers/internal/common/logger"
	"vocational-workers/internal/common/metrics"
	"vocational-workers/internal/engine"
)

const TaskType = "recommendation.process"

// inputSchema guards the job variables before the pipeline sees them.
var inputSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"attemptId"},
	"properties": map[string]interface{}{
		"attemptId": map[string]interface{}{
			"type":    "integer",
			"minimum": 1,
		},
		"useAi": map[string]interface{}{
			"type": "boolean",
		},
	},
}

// Processor runs the recommendation pipeline. Satisfied by *engine.Engine.
type Processor interface {
	Process(ctx context.Context, attemptID int64, useAI bool) *engine.Result
}

type Handler struct {
	config    *Config
	processor Processor
	logger    logger.Logger
}

func NewHandler(config *Config, processor Processor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		processor: processor,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, errors.NewInputParsingFailedError(err))
		return
	}

	if err := h.validateInput([]byte(job.Variables)); err != nil {
		h.failJob(client, job, errors.NewValidationFailedError(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	result := h.processor.Process(ctx, input.AttemptID, h.resolveUseAI(&input))
	if !result.Success {
		h.failJob(client, job, h.classifyFailure(input.AttemptID, result.Error))
		return
	}

	h.completeJob(client, job, &Output{
		Success:          true,
		Recommendations:  result.Recommendations,
		ScoresByCategory: result.ScoresByCategory,
		TotalAnswers:     result.TotalAnswers,
		GeneratedWithAI:  result.GeneratedWithAI,
	})
}

// resolveUseAI lets the job variable override the configured default.
func (h *Handler) resolveUseAI(input *Input) bool {
	if input.UseAI != nil {
		return *input.UseAI
	}
	return h.config.UseAI
}

func (h *Handler) validateInput(variables []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(inputSchema)
	documentLoader := gojsonschema.NewBytesLoader(variables)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate job variables: %w", err)
	}
	if !result.Valid() {
		details := ""
		for _, desc := range result.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return fmt.Errorf("invalid job variables: %s", details)
	}
	return nil
}

// classifyFailure maps a pipeline failure message to the matching error code
// so the workflow can decide between retry and boundary-event handling.
func (h *Handler) classifyFailure(attemptID int64, message string) *errors.StandardError {
	switch message {
	case engine.ErrLoadAnswers:
		return errors.NewAnswerLoadFailedError(fmt.Errorf("attempt %d", attemptID))
	case engine.ErrNoRecommendations:
		return errors.NewNoScoresComputedError(attemptID)
	case engine.ErrPersist:
		return errors.NewPersistFailedError(fmt.Errorf("attempt %d", attemptID))
	default:
		return errors.NewValidationFailedError(message)
	}
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

// failJob retries transient failures and throws a BPMN error for business
// failures, matching the retry count of the error code.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, stdErr *errors.StandardError) {
	bpmnErr := errors.ConvertToBPMNError(stdErr)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retryable":    bpmnErr.Retryable,
	})

	if bpmnErr.Retryable && job.Retries > 1 {
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(job.Retries - 1).
			ErrorMessage(bpmnErr.Message).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to send fail job command", map[string]interface{}{
				"error": err,
			})
		}
		return
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}
