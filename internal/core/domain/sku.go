// internal/core/domain/sku.go
package domain

import (
	"fmt"
	"strings"
)

// SKU is the composite product variant key: DESIGN-STYLE-COLOR-SIZE,
// upper-cased, components joined by Separator. It is the unique key into the
// inventory map.
type SKU string

// Separator joins the four SKU components. Components must not contain it;
// MakeSKU enforces this so DecodeSKU can recover field boundaries.
const Separator = "-"

const skuParts = 4

// SKUParts holds the four decoded components of a SKU.
type SKUParts struct {
	Design string `json:"design"`
	Style  string `json:"style"`
	Color  string `json:"color"`
	Size   string `json:"size"`
}

// MakeSKU builds a SKU from its four identity fields. Each field is trimmed;
// an empty field or one containing the separator fails with ValidationError.
func MakeSKU(design, style, color, size string) (SKU, error) {
	parts := []struct {
		name  string
		value string
	}{
		{"design", design},
		{"style", style},
		{"color", color},
		{"size", size},
	}

	joined := make([]string, 0, skuParts)
	for _, p := range parts {
		v := strings.TrimSpace(p.value)
		if v == "" {
			return "", &ValidationError{Field: p.name, Reason: "must not be empty"}
		}
		if strings.Contains(v, Separator) {
			return "", &ValidationError{Field: p.name, Reason: fmt.Sprintf("must not contain %q", Separator)}
		}
		joined = append(joined, v)
	}

	return SKU(strings.ToUpper(strings.Join(joined, Separator))), nil
}

// DecodeSKU splits a SKU back into its four components. Any other number of
// separator-delimited parts, or an empty part, fails with DecodeError.
func DecodeSKU(sku SKU) (SKUParts, error) {
	parts := strings.Split(string(sku), Separator)
	if len(parts) != skuParts {
		return SKUParts{}, &DecodeError{
			SKU:    string(sku),
			Reason: fmt.Sprintf("expected %d components, got %d", skuParts, len(parts)),
		}
	}
	for _, p := range parts {
		if p == "" {
			return SKUParts{}, &DecodeError{SKU: string(sku), Reason: "empty component"}
		}
	}

	return SKUParts{
		Design: parts[0],
		Style:  parts[1],
		Color:  parts[2],
		Size:   parts[3],
	}, nil
}
