package port

import (
	"context"

	"github.com/rl1809/warung-pos/internal/core/receipt"
)

type ReceiptSink interface {
	// Deliver hands a rendered receipt to the operator (saved file or
	// printer spool). Fire-and-forget: the sink reports nothing beyond a
	// delivery error.
	Deliver(ctx context.Context, doc *receipt.Document) error
}
