package driving

import (
	"context"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
)

// ToolDispatcher validates and dispatches tool calls from the dialogue
// engine. The dialogue engine decides when to call; the dispatcher only
// validates, routes, and formats.
type ToolDispatcher interface {
	// Dispatch runs a call synchronously and returns its result. The
	// result always carries prompt-ready Content, including for
	// malformed calls, failures, and timeouts.
	Dispatch(ctx context.Context, call domain.ToolCall) domain.ToolResult

	// Submit runs a call as an asynchronous task. The returned channel
	// delivers exactly one result, correlated by ToolResult.CallID,
	// then closes. Cancelling ctx cancels the in-flight task.
	Submit(ctx context.Context, call domain.ToolCall) <-chan domain.ToolResult
}
