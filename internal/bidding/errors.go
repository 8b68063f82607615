package bidding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrProcessing is returned by every mutating call while a Placer
	// operation is in flight.
	ErrProcessing = errors.New("bid is being processed")
	// ErrWrongStage is returned when an action is not available in the
	// current stage.
	ErrWrongStage = errors.New("action not available in this stage")
	// ErrStaleTicket is returned for completions issued before the wizard
	// was reset or closed.
	ErrStaleTicket = errors.New("stale ticket")
)

// Field identifies a draft input.
type Field string

const (
	FieldBidAmount Field = "bid_amount"
	FieldQuantity  Field = "quantity"
)

// ValidationErrors maps a field to the message shown next to it.
type ValidationErrors map[Field]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[Field(f)]))
	}
	return "invalid bid: " + strings.Join(parts, "; ")
}

// Has reports whether f has an error.
func (v ValidationErrors) Has(f Field) bool {
	_, ok := v[f]
	return ok
}

func (v ValidationErrors) clone() ValidationErrors {
	if len(v) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// Payment error codes.
const (
	CodeDeclined  = "declined"
	CodeGateway   = "gateway_error"
	CodeCancelled = "cancelled"
	CodeInvalid   = "invalid_order"
)

// PaymentError is a failed Register or Pay. It is shown as a banner and the
// buyer may retry when Retryable is set.
type PaymentError struct {
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *PaymentError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("payment failed (%s): %s", e.Code, msg)
}

func (e *PaymentError) Unwrap() error { return e.Err }

// AsPaymentError returns err as a *PaymentError, wrapping foreign errors as
// retryable gateway errors. It returns nil for a nil error.
func AsPaymentError(err error) *PaymentError {
	if err == nil {
		return nil
	}
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &PaymentError{Code: CodeCancelled, Message: "Payment was cancelled.", Retryable: true, Err: err}
	}
	return &PaymentError{Code: CodeGateway, Message: err.Error(), Retryable: true, Err: err}
}
