package payment

import (
	"context"

	"studentgigs/internal/common"
)

// Gate answers whether a student has completed the £1 access-fee step for a
// job. Application creation consults it before any row is written, so a real
// payment processor can replace the simulation without touching policy or
// services.
type Gate interface {
	IsSatisfied(ctx context.Context, studentID, jobID common.UUID) (bool, error)
}

// SimulatedGate mirrors the current client-side payment flow: the charge
// always succeeds.
type SimulatedGate struct{}

func (SimulatedGate) IsSatisfied(ctx context.Context, studentID, jobID common.UUID) (bool, error) {
	return true, nil
}
