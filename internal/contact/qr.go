package contact

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QR renders content as a QR code made of terminal block characters.
// inverse swaps dark and light modules for light-on-dark terminals.
func QR(content string, inverse bool) (string, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return code.ToSmallString(inverse), nil
}
