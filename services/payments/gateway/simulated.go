package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/piresc/carpool/internal/pkg/models"
)

// SimulatedProvider is an in-process payment provider for local runs and
// tests. Charges above DeclineAbove are declined; zero disables declines.
// Replaying a payment id returns the first result.
type SimulatedProvider struct {
	DeclineAbove int64

	mu      sync.Mutex
	charges map[uuid.UUID]models.ProviderResult
	refunds map[uuid.UUID]models.ProviderResult
}

// NewSimulatedProvider creates a simulated provider
func NewSimulatedProvider(declineAbove int64) *SimulatedProvider {
	return &SimulatedProvider{
		DeclineAbove: declineAbove,
		charges:      make(map[uuid.UUID]models.ProviderResult),
		refunds:      make(map[uuid.UUID]models.ProviderResult),
	}
}

// Charge approves or declines the request
func (p *SimulatedProvider) Charge(ctx context.Context, req models.ChargeRequest) (models.ProviderResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ProviderResult{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if res, ok := p.charges[req.PaymentID]; ok {
		return res, nil
	}

	res := models.ProviderResult{Success: true, Reference: "sim_ch_" + req.PaymentID.String()}
	if p.DeclineAbove > 0 && req.Amount > p.DeclineAbove {
		res = models.ProviderResult{Success: false, Reason: fmt.Sprintf("amount %d exceeds limit %d", req.Amount, p.DeclineAbove)}
	}
	p.charges[req.PaymentID] = res
	return res, nil
}

// Refund succeeds for any approved charge
func (p *SimulatedProvider) Refund(ctx context.Context, req models.RefundRequest) (models.ProviderResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ProviderResult{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if res, ok := p.refunds[req.PaymentID]; ok {
		return res, nil
	}

	charge, ok := p.charges[req.PaymentID]
	if !ok || !charge.Success {
		return models.ProviderResult{Success: false, Reason: "no approved charge"}, nil
	}
	res := models.ProviderResult{Success: true, Reference: "sim_rf_" + req.PaymentID.String()}
	p.refunds[req.PaymentID] = res
	return res, nil
}

// Refunds reports how many distinct payments were refunded
func (p *SimulatedProvider) Refunds() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.refunds)
}
