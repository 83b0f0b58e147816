package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
)

func TestMakeSKU(t *testing.T) {
	tests := []struct {
		name      string
		design    string
		style     string
		color     string
		size      string
		want      domain.SKU
		wantError bool
		errField  string
	}{
		{
			name:   "joins_and_uppercases",
			design: "100", style: "shirt", color: "red", size: "m",
			want: "100-SHIRT-RED-M",
		},
		{
			name:   "trims_surrounding_whitespace",
			design: " 204 ", style: "dress", color: " Blue", size: "XL ",
			want: "204-DRESS-BLUE-XL",
		},
		{
			name:   "preserves_inner_spaces",
			design: "7", style: "long sleeve", color: "off white", size: "s",
			want: "7-LONG SLEEVE-OFF WHITE-S",
		},
		{
			name:   "empty_design",
			design: "", style: "shirt", color: "red", size: "m",
			wantError: true,
			errField:  "design",
		},
		{
			name:   "whitespace_only_size",
			design: "100", style: "shirt", color: "red", size: "   ",
			wantError: true,
			errField:  "size",
		},
		{
			name:   "separator_inside_color",
			design: "100", style: "shirt", color: "blue-green", size: "m",
			wantError: true,
			errField:  "color",
		},
		{
			name:   "separator_inside_style",
			design: "100", style: "t-shirt", color: "red", size: "m",
			wantError: true,
			errField:  "style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku, err := domain.MakeSKU(tt.design, tt.style, tt.color, tt.size)

			if tt.wantError {
				require.Error(t, err)
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.errField, verr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, sku)
		})
	}
}

func TestDecodeSKU(t *testing.T) {
	tests := []struct {
		name      string
		sku       domain.SKU
		want      domain.SKUParts
		wantError bool
	}{
		{
			name: "decodes_four_components",
			sku:  "100-SHIRT-RED-M",
			want: domain.SKUParts{Design: "100", Style: "SHIRT", Color: "RED", Size: "M"},
		},
		{
			name:      "too_few_components",
			sku:       "100-SHIRT-RED",
			wantError: true,
		},
		{
			name:      "too_many_components",
			sku:       "100-T-SHIRT-RED-M",
			wantError: true,
		},
		{
			name:      "empty_component",
			sku:       "100--RED-M",
			wantError: true,
		},
		{
			name:      "empty_string",
			sku:       "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := domain.DecodeSKU(tt.sku)

			if tt.wantError {
				var derr *domain.DecodeError
				require.True(t, errors.As(err, &derr))
				assert.Equal(t, string(tt.sku), derr.SKU)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, parts)
		})
	}
}

func TestSKU_RoundTrip(t *testing.T) {
	fields := [][4]string{
		{"100", "shirt", "red", "m"},
		{"204", "Dress", "NAVY", "xl"},
		{"7", "long sleeve", "off white", "one size"},
	}

	for _, f := range fields {
		sku, err := domain.MakeSKU(f[0], f[1], f[2], f[3])
		require.NoError(t, err)

		parts, err := domain.DecodeSKU(sku)
		require.NoError(t, err)

		rebuilt, err := domain.MakeSKU(parts.Design, parts.Style, parts.Color, parts.Size)
		require.NoError(t, err)
		assert.Equal(t, sku, rebuilt)
	}
}
