package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/warung-pos/internal/core/domain"
	"github.com/rl1809/warung-pos/internal/core/payment"
	"github.com/rl1809/warung-pos/internal/core/receipt"
	"github.com/rl1809/warung-pos/internal/port"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInsufficientCash = errors.New("insufficient cash")
)

// CheckoutService turns the current cart into a completed cash sale: it
// gates on the tendered amount, renders the receipt and delivers it, then
// clears the cart. The order snapshot is discarded afterwards.
type CheckoutService struct {
	cart      *CartService
	formatter *receipt.Formatter
	sink      port.ReceiptSink
	logger    *zap.Logger
}

func NewCheckoutService(cart *CartService, formatter *receipt.Formatter, sink port.ReceiptSink, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		formatter: formatter,
		sink:      sink,
		logger:    logger,
	}
}

// Preview reports the payment evaluation and quick-cash suggestions for
// the current cart total. The confirm action is only available while the
// evaluation is valid.
type Preview struct {
	Total       int
	Cash        int
	Change      int
	Valid       bool
	Suggestions []payment.Suggestion
}

func (s *CheckoutService) Preview(cash int) Preview {
	total := s.cart.Total()
	eval := payment.Evaluate(total, cash)
	return Preview{
		Total:       total,
		Cash:        cash,
		Change:      eval.DisplayChange(),
		Valid:       eval.Valid,
		Suggestions: payment.Suggestions(total),
	}
}

// Confirm completes the sale. Render or delivery failures propagate and
// leave the cart intact; there is no retry.
func (s *CheckoutService) Confirm(ctx context.Context, cash int) (*domain.Order, *receipt.Document, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	total := 0
	for _, item := range items {
		total += item.LineTotal()
	}

	eval := payment.Evaluate(total, cash)
	if !eval.Valid {
		return nil, nil, ErrInsufficientCash
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		Items:     items,
		Total:     total,
		Cash:      cash,
		Change:    eval.Change,
		CreatedAt: time.Now(),
	}

	doc, err := s.formatter.Render(order)
	if err != nil {
		return nil, nil, err
	}
	if err := s.sink.Deliver(ctx, doc); err != nil {
		return nil, nil, err
	}

	s.cart.Clear()

	s.logger.Info("sale completed",
		zap.String("order_id", order.ID),
		zap.Int("total", order.Total),
		zap.Int("change", order.Change),
		zap.Int("items", len(order.Items)),
		zap.String("receipt", doc.Filename))
	return &order, doc, nil
}
