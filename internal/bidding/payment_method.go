package bidding

import (
	"fmt"
	"strings"
)

// PaymentMethod is how the buyer pays the bid amount.
type PaymentMethod string

const (
	MethodUPI        PaymentMethod = "upi"
	MethodCard       PaymentMethod = "card"
	MethodNetBanking PaymentMethod = "netbanking"
)

// Methods lists the supported payment methods in display order.
func Methods() []PaymentMethod {
	return []PaymentMethod{MethodUPI, MethodCard, MethodNetBanking}
}

// Label is the human-readable method name.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodUPI:
		return "UPI"
	case MethodCard:
		return "Credit/Debit Card"
	case MethodNetBanking:
		return "Net Banking"
	}
	return string(m)
}

// Valid reports whether m is a supported method.
func (m PaymentMethod) Valid() bool {
	for _, known := range Methods() {
		if m == known {
			return true
		}
	}
	return false
}

// ParsePaymentMethod accepts a method name case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "net-banking", "net_banking":
		m = MethodNetBanking
	}
	if !m.Valid() {
		return "", fmt.Errorf("unknown payment method %q (want upi, card or netbanking)", s)
	}
	return m, nil
}
