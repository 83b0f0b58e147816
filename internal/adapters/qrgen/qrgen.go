// internal/adapters/qrgen/qrgen.go

// Package qrgen renders SKU labels as QR PNGs, sized for printed stickers
// that the store camera scans back at the till.
package qrgen

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
)

// LabelSize is the rendered PNG edge length in pixels.
const LabelSize = 150

// Generator renders SKU label images.
type Generator struct {
	size int
}

// New creates a generator with the default label size.
func New() *Generator {
	return &Generator{size: LabelSize}
}

// RenderPNG encodes the SKU as a QR PNG. High error correction keeps crumpled
// stickers scannable.
func (g *Generator) RenderPNG(sku domain.SKU) ([]byte, error) {
	png, err := qrcode.Encode(string(sku), qrcode.High, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr for %s: %w", sku, err)
	}
	return png, nil
}
