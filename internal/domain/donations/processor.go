package donations

import (
	"context"
	"fmt"
	"time"
)

// Processor cobra una donación. No hay pasarela real: SimulatedProcessor
// aprueba todo lo que respeta el mínimo.
type Processor interface {
	Process(ctx context.Context, d Donation) (Donation, error)
}

type SimulatedProcessor struct {
	Now func() time.Time
}

func (p SimulatedProcessor) Process(ctx context.Context, d Donation) (Donation, error) {
	if err := ctx.Err(); err != nil {
		return d, err
	}
	if d.Amount < MinimumAmount {
		return d, fmt.Errorf("%w: minimum donation amount is Rs. %d", ErrInvalidInput, MinimumAmount)
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	at := now().UTC()
	d.Status = StatusCompleted
	d.ProcessedAt = &at
	return d, nil
}
