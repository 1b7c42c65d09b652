package lambda

import (
	"context"
	"encoding/json"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
)

// Runner executes one scan for an invocation payload.
type Runner interface {
	Run(ctx context.Context, trigger json.RawMessage) (entity.ScanResult, error)
}

// Response is returned to the Lambda runtime.
type Response struct {
	StatusCode int           `json:"statusCode"`
	Body       entity.Report `json:"body"`
}

// Handler adapts the scan to the Lambda invocation model.
type Handler struct {
	runner Runner
	logger types.Logger
}

// NewHandler creates a Lambda handler around a runner.
func NewHandler(runner Runner, logger types.Logger) *Handler {
	return &Handler{runner: runner, logger: logger}
}

// Handle runs a scan. The event payload is ignored; any scheduled or manual
// trigger starts the same scan. Errors are returned so the invocation fails.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (Response, error) {
	result, err := h.runner.Run(ctx, event)
	if err != nil {
		h.logger.LogError("Scan failed: %s", err)
		return Response{}, err
	}
	return Response{StatusCode: result.StatusCode, Body: result.Body}, nil
}
