package payment

import (
	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(content string) ([]byte, error)
}

// PNGGenerator renders content as a PNG QR code.
type PNGGenerator struct {
	Size int
}

func (g PNGGenerator) Generate(content string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
