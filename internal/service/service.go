// Package service implements the splitbill.v1 Connect services on top of
// the storage layer and the allocation engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/middleware"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
	"github.com/mmynk/splitbill/pkg/api"
)

var (
	errAuthRequired = errors.New("authentication required")
	errNotOwner     = errors.New("bill belongs to another user")
)

// Option configures the bill, participant and item services.
type Option func(*base)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) { b.logger = logger }
}

// WithMetrics counts summary computations in m.
func WithMetrics(m *middleware.Metrics) Option {
	return func(b *base) { b.metrics = m }
}

// WithRemainder sets how summaries reconcile rounding remainders.
func WithRemainder(p calculator.RemainderPolicy) Option {
	return func(b *base) { b.remainder = p }
}

// base holds what every bill-scoped service shares: loading a bill on
// behalf of its owner and rendering it with fresh derived values.
type base struct {
	store     storage.Store
	logger    *slog.Logger
	metrics   *middleware.Metrics
	remainder calculator.RemainderPolicy
}

func newBase(store storage.Store, opts []Option) base {
	b := base{
		store:     store,
		logger:    slog.Default(),
		remainder: calculator.RemainderIgnore,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// callerID returns the authenticated user or a CodeUnauthenticated error.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

// ownedBill loads a bill and checks that the caller owns it.
func (b *base) ownedBill(ctx context.Context, billID string) (*models.Bill, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if billID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bill_id is required"))
	}

	bill, err := b.store.GetBill(ctx, billID)
	if err != nil {
		return nil, b.fail(ctx, "load bill", err)
	}
	if bill.OwnerID != userID {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotOwner)
	}
	return bill, nil
}

func (b *base) summarize(bill *models.Bill) (*calculator.Summary, error) {
	summary, err := calculator.CalculateSummary(bill, calculator.WithRemainder(b.remainder))
	if err != nil {
		return nil, err
	}
	b.metrics.SummaryComputed()
	return summary, nil
}

// view converts a bill together with its freshly computed summary.
func (b *base) view(ctx context.Context, bill *models.Bill) (*api.Bill, error) {
	summary, err := b.summarize(bill)
	if err != nil {
		return nil, b.fail(ctx, "summarize bill", err)
	}
	return toAPIBill(bill, summary), nil
}

// render re-reads a bill after a mutation and returns its current view.
func (b *base) render(ctx context.Context, billID string) (*api.Bill, error) {
	bill, err := b.store.GetBill(ctx, billID)
	if err != nil {
		return nil, b.fail(ctx, "reload bill", err)
	}
	return b.view(ctx, bill)
}

// fail maps a domain or storage error onto a Connect error, logging the
// ones the caller cannot fix.
func (b *base) fail(ctx context.Context, op string, err error) error {
	cerr := connectError(err)
	if connect.CodeOf(cerr) == connect.CodeInternal {
		b.logger.ErrorContext(ctx, "Operation failed", "op", op, "error", err)
	}
	return cerr
}

func connectError(err error) error {
	var cerr *connect.Error
	switch {
	case errors.As(err, &cerr):
		return cerr
	case errors.Is(err, calculator.ErrInvalidInput):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, calculator.ErrInvalidOperation):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func notFound(kind, id string) error {
	return connect.NewError(connect.CodeNotFound, fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound))
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{calculator.ErrInvalidInput}, args...)...)
}
