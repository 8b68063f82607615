package bidding

import (
	"context"
	"fmt"
)

// Run drives a wizard from StageDetails to StageConfirmation without user
// interaction: it submits the current draft, registers it, pays with method
// and returns the receipt. An empty method keeps the draft's method.
func Run(ctx context.Context, w *Wizard, p Placer, method PaymentMethod) (Confirmation, error) {
	t, order, err := w.Submit()
	if err != nil {
		return Confirmation{}, fmt.Errorf("submit bid: %w", err)
	}
	if err := w.SubmitDone(t, p.Register(ctx, order)); err != nil {
		return Confirmation{}, fmt.Errorf("register bid: %w", err)
	}

	if method != "" {
		if err := w.SetPaymentMethod(method); err != nil {
			return Confirmation{}, err
		}
	}
	t, order, err = w.Pay()
	if err != nil {
		return Confirmation{}, fmt.Errorf("start payment: %w", err)
	}
	conf, err := p.Pay(ctx, order)
	if err := w.PayDone(t, conf, err); err != nil {
		return Confirmation{}, fmt.Errorf("pay bid: %w", err)
	}

	receipt, _ := w.Confirmation()
	return receipt, nil
}
