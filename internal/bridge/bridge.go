package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driving"
	"github.com/nautilus-labs/voxcart/internal/core/services"
)

// Ensure Bridge implements the interface.
var _ driving.ToolDispatcher = (*Bridge)(nil)

// DefaultTimeout bounds a single tool call. The surrounding voice turn
// must never wait longer than this for a result.
const DefaultTimeout = 10 * time.Second

// retryDelay is the pause before the single order-lookup retry.
const retryDelay = 100 * time.Millisecond

// Fallback messages injected into the conversation when a call cannot
// produce a real result. Phrased for the dialogue engine to speak.
const (
	timeoutFallback     = "The lookup took too long to complete. Let the customer know and offer to try again."
	malformedFallback   = "The tool call was not valid. Ask the customer to rephrase their request."
	orderFailFallback   = "The order system could not be reached right now. Apologise and suggest trying again shortly."
	orderNotFoundText   = "No order with that identifier was found. Ask the customer to double-check it."
	ordersUnavailable   = "Order lookups are not configured for this store."
	retrievalFailedText = "The knowledge base could not be searched due to an internal problem."
)

// Bridge validates and dispatches tool calls from the dialogue engine.
type Bridge struct {
	retrieval  driving.RetrievalService
	citations  *services.CitationFormatter
	orders     driven.OrderService
	timeout    time.Duration
	searchOpts domain.SearchOptions
	turn       *stateTracker
	log        *zap.Logger
}

// Option configures the bridge.
type Option func(*Bridge)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithSearchOptions sets the retrieval top-k and relevance floor used
// for search_knowledge calls.
func WithSearchOptions(opts domain.SearchOptions) Option {
	return func(b *Bridge) {
		b.searchOpts = opts
	}
}

// New creates a bridge. orders may be nil when the store is not
// configured; order tools then return a typed unavailable failure.
func New(
	retrieval driving.RetrievalService,
	citations *services.CitationFormatter,
	orders driven.OrderService,
	log *zap.Logger,
	opts ...Option,
) *Bridge {
	b := &Bridge{
		retrieval: retrieval,
		citations: citations,
		orders:    orders,
		timeout:   DefaultTimeout,
		turn:      newStateTracker(),
		log:       log,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// State returns the bridge's current turn state.
func (b *Bridge) State() TurnState {
	return b.turn.get()
}

// Submit runs a call as an asynchronous task. The returned channel
// delivers exactly one result, correlated by CallID, then closes.
// Cancelling ctx cancels the in-flight call.
func (b *Bridge) Submit(ctx context.Context, call domain.ToolCall) <-chan domain.ToolResult {
	results := make(chan domain.ToolResult, 1)
	go func() {
		defer close(results)
		results <- b.Dispatch(ctx, call)
	}()
	return results
}

// Dispatch validates the call, routes it to the matching component,
// and returns a result the dialogue engine can always consume. It
// never panics the turn: malformed calls, failures, and timeouts all
// come back as structured results.
func (b *Bridge) Dispatch(ctx context.Context, call domain.ToolCall) domain.ToolResult {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}

	b.turn.set(StateAwaitingToolCall)
	defer b.turn.set(StateIdle)

	log := b.log.With(
		zap.String("call_id", call.ID),
		zap.String("tool", string(call.Name)))

	if !call.Name.IsValid() {
		b.turn.set(StateFailed)
		log.Warn("unknown tool name")
		return domain.ToolResult{
			CallID:  call.ID,
			Name:    call.Name,
			Status:  domain.ToolMalformed,
			Content: malformedFallback,
			Err:     fmt.Errorf("%w: unknown tool %q", domain.ErrMalformedToolCall, call.Name),
		}
	}

	b.turn.set(StateDispatching)
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type outcome struct {
		content string
		payload any
		err     error
	}
	done := make(chan outcome, 1)

	started := time.Now()
	go func() {
		content, payload, err := b.route(callCtx, call)
		done <- outcome{content: content, payload: payload, err: err}
	}()

	select {
	case out := <-done:
		elapsed := time.Since(started)
		switch {
		case out.err == nil:
			b.turn.set(StateCompleted)
			log.Debug("tool call completed", zap.Duration("elapsed", elapsed))
			return domain.ToolResult{
				CallID:  call.ID,
				Name:    call.Name,
				Status:  domain.ToolCompleted,
				Content: out.content,
				Payload: out.payload,
			}
		case errors.Is(out.err, domain.ErrMalformedToolCall):
			b.turn.set(StateFailed)
			log.Warn("malformed tool call", zap.Error(out.err))
			return domain.ToolResult{
				CallID:  call.ID,
				Name:    call.Name,
				Status:  domain.ToolMalformed,
				Content: malformedFallback,
				Err:     out.err,
			}
		default:
			b.turn.set(StateFailed)
			log.Warn("tool call failed", zap.Duration("elapsed", elapsed), zap.Error(out.err))
			return domain.ToolResult{
				CallID:  call.ID,
				Name:    call.Name,
				Status:  domain.ToolFailed,
				Content: out.content,
				Payload: out.payload,
				Err:     out.err,
			}
		}

	case <-callCtx.Done():
		b.turn.set(StateTimedOut)
		log.Warn("tool call timed out", zap.Duration("timeout", b.timeout))
		return domain.ToolResult{
			CallID:  call.ID,
			Name:    call.Name,
			Status:  domain.ToolTimedOut,
			Content: timeoutFallback,
			Err:     fmt.Errorf("%w after %s", domain.ErrToolTimeout, b.timeout),
		}
	}
}

// route runs the validated call against the matching component. The
// returned content is always safe to hand to the dialogue engine, even
// alongside an error.
func (b *Bridge) route(ctx context.Context, call domain.ToolCall) (string, any, error) {
	switch call.Name {
	case domain.ToolSearchKnowledge:
		return b.searchKnowledge(ctx, call)
	case domain.ToolLookupOrderByID:
		return b.lookupOrderByID(ctx, call)
	case domain.ToolLookupOrdersByEmail:
		return b.lookupOrdersByEmail(ctx, call)
	case domain.ToolListRecentOrders:
		return b.listRecentOrders(ctx, call)
	default:
		return malformedFallback, nil, fmt.Errorf("%w: unknown tool %q", domain.ErrMalformedToolCall, call.Name)
	}
}

// searchKnowledge runs local retrieval. The retrieval path is purely
// local and CPU-bound: a failure here is structural and is surfaced,
// never retried or masked.
func (b *Bridge) searchKnowledge(ctx context.Context, call domain.ToolCall) (string, any, error) {
	var args searchKnowledgeArgs
	if err := decodeArgs(call.Arguments, &args); err != nil {
		return malformedFallback, nil, err
	}
	query, err := requireString("query", args.Query)
	if err != nil {
		return malformedFallback, nil, err
	}

	result, err := b.retrieval.Search(ctx, query, b.searchOpts)
	if err != nil {
		return retrievalFailedText, nil, err
	}

	payload := &domain.SearchPayload{
		Passages: make([]domain.SearchPassage, 0, len(result.Passages)),
		Found:    result.Found(),
	}
	for _, p := range result.Passages {
		payload.Passages = append(payload.Passages, domain.SearchPassage{
			Text:   p.Chunk.Content,
			Source: p.Source,
		})
	}

	return b.citations.Format(result), payload, nil
}

func (b *Bridge) lookupOrderByID(ctx context.Context, call domain.ToolCall) (string, any, error) {
	var args lookupOrderByIDArgs
	if err := decodeArgs(call.Arguments, &args); err != nil {
		return malformedFallback, nil, err
	}
	orderID, err := requireString("order_id", args.OrderID)
	if err != nil {
		return malformedFallback, nil, err
	}

	// A "#"-prefixed identifier is the human-facing order number, not
	// the numeric API ID.
	byNumber := strings.HasPrefix(strings.TrimSpace(orderID), "#")

	var order *domain.Order
	err = b.callOrders(ctx, func(ctx context.Context, svc driven.OrderService) error {
		var lookupErr error
		if byNumber {
			order, lookupErr = svc.GetOrderByNumber(ctx, orderID)
		} else {
			order, lookupErr = svc.GetOrderByID(ctx, orderID)
		}
		return lookupErr
	})
	if err != nil {
		return b.orderFailure(err)
	}

	return order.Summary(), &domain.OrdersPayload{Orders: []domain.Order{*order}, Found: true}, nil
}

func (b *Bridge) lookupOrdersByEmail(ctx context.Context, call domain.ToolCall) (string, any, error) {
	var args lookupOrdersByEmailArgs
	if err := decodeArgs(call.Arguments, &args); err != nil {
		return malformedFallback, nil, err
	}
	email, err := requireString("email", args.Email)
	if err != nil {
		return malformedFallback, nil, err
	}

	var orders []domain.Order
	err = b.callOrders(ctx, func(ctx context.Context, svc driven.OrderService) error {
		var lookupErr error
		orders, lookupErr = svc.SearchOrdersByEmail(ctx, email, args.Limit)
		return lookupErr
	})
	if err != nil {
		return b.orderFailure(err)
	}

	return formatOrderList(orders, fmt.Sprintf("No orders were found for %s.", email)),
		&domain.OrdersPayload{Orders: orders, Found: len(orders) > 0}, nil
}

func (b *Bridge) listRecentOrders(ctx context.Context, call domain.ToolCall) (string, any, error) {
	var args listRecentOrdersArgs
	if err := decodeArgs(call.Arguments, &args); err != nil {
		return malformedFallback, nil, err
	}

	var orders []domain.Order
	err := b.callOrders(ctx, func(ctx context.Context, svc driven.OrderService) error {
		var lookupErr error
		orders, lookupErr = svc.RecentOrders(ctx, args.Count)
		return lookupErr
	})
	if err != nil {
		return b.orderFailure(err)
	}

	return formatOrderList(orders, "There are no orders yet."),
		&domain.OrdersPayload{Orders: orders, Found: len(orders) > 0}, nil
}

// callOrders runs one order lookup with a single retry on transient
// failure. The retry attempt gets a strictly smaller timeout than the
// first. Not-found and invalid-input outcomes are terminal.
func (b *Bridge) callOrders(ctx context.Context, fn func(context.Context, driven.OrderService) error) error {
	if b.orders == nil {
		return domain.ErrOrderServiceUnavailable
	}

	attemptTimeout := b.timeout / 2
	return retry.Do(
		func() error {
			attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
			defer cancel()
			return fn(attemptCtx, b.orders)
		},
		retry.Attempts(2),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			attemptTimeout /= 2
			b.log.Debug("retrying order lookup",
				zap.Uint("attempt", n+1),
				zap.Duration("timeout", attemptTimeout),
				zap.Error(err))
		}),
	)
}

// isTransient reports whether an order lookup failure is worth the
// single retry. Not-found, invalid input, and caller cancellation are
// terminal.
func isTransient(err error) bool {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrOrderServiceUnavailable),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

// orderFailure maps an order lookup error to user-safe content plus
// the original error for the result record.
func (b *Bridge) orderFailure(err error) (string, any, error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return orderNotFoundText, &domain.OrdersPayload{Found: false}, err
	case errors.Is(err, domain.ErrOrderServiceUnavailable):
		return ordersUnavailable, &domain.OrdersPayload{Found: false}, err
	case errors.Is(err, domain.ErrInvalidInput):
		return malformedFallback, nil, fmt.Errorf("%w: %v", domain.ErrMalformedToolCall, err)
	default:
		return orderFailFallback, &domain.OrdersPayload{Found: false}, err
	}
}

// formatOrderList renders orders for the conversation context.
func formatOrderList(orders []domain.Order, emptyText string) string {
	if len(orders) == 0 {
		return emptyText
	}
	if len(orders) == 1 {
		return orders[0].Summary()
	}

	content := fmt.Sprintf("Found %d orders:\n", len(orders))
	for i, o := range orders {
		content += fmt.Sprintf("\n%d. %s\n", i+1, o.Summary())
	}
	return content
}
