// internal/handlers/inventory_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avasquez/stitchstock-be/internal/adapters/qrgen"
	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/handlers"
	"github.com/avasquez/stitchstock-be/test/helpers"
	"github.com/avasquez/stitchstock-be/test/mocks"
)

func TestInventoryHandler_AddStock(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockLedger)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "successfully_adds_stock",
			body: `{"design":"100","style":"shirt","color":"red","size":"m","pieces":20}`,
			setupMocks: func(m *mocks.MockLedger) {
				m.EXPECT().
					AddStock(gomock.Any(), "100", "shirt", "red", "m", 20).
					Return(domain.SKU("100-SHIRT-RED-M"), nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var resp handlers.AddStockResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, domain.SKU("100-SHIRT-RED-M"), resp.SKU)
				assert.Equal(t, "/api/v1/inventory/100-SHIRT-RED-M/qr", resp.QRURL)
				assert.Equal(t, "Added 20 pieces for 100-SHIRT-RED-M", resp.Notification.Message)
				assert.Equal(t, handlers.SeveritySuccess, resp.Notification.Severity)
			},
		},
		{
			name:           "malformed_body",
			body:           `{not json`,
			setupMocks:     func(m *mocks.MockLedger) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var resp map[string]handlers.Notification
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Enter valid product details.", resp["notification"].Message)
				assert.Equal(t, handlers.SeverityError, resp["notification"].Severity)
			},
		},
		{
			name: "validation_error_from_ledger",
			body: `{"design":"100","style":"","color":"red","size":"m","pieces":5}`,
			setupMocks: func(m *mocks.MockLedger) {
				m.EXPECT().
					AddStock(gomock.Any(), "100", "", "red", "m", 5).
					Return(domain.SKU(""), &domain.ValidationError{Field: "style", Reason: "must not be empty"})
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var resp map[string]handlers.Notification
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, handlers.SeverityError, resp["notification"].Severity)
			},
		},
		{
			name: "persistence_error",
			body: `{"design":"100","style":"shirt","color":"red","size":"m","pieces":5}`,
			setupMocks: func(m *mocks.MockLedger) {
				m.EXPECT().
					AddStock(gomock.Any(), "100", "shirt", "red", "m", 5).
					Return(domain.SKU("100-SHIRT-RED-M"), &domain.PersistenceError{Op: ports.KeyInventory, Err: helpers.ErrStoreDown})
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := mocks.NewMockLedger(ctrl)
			tt.setupMocks(ledger)

			handler := handlers.NewInventoryHandler(ledger, qrgen.New(), 5, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/stock", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.AddStock(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.validateBody != nil {
				tt.validateBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestInventoryHandler_ListInventory(t *testing.T) {
	items := []domain.Item{
		{SKU: "100-SHIRT-RED-M", Design: "100", Style: "SHIRT", Color: "RED", Size: "M", Stock: 3},
		{SKU: "204-DRESS-BLUE-XL", Design: "204", Style: "DRESS", Color: "BLUE", Size: "XL", Stock: 8},
	}

	t.Run("returns_items_with_low_stock_flags_and_total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ledger := mocks.NewMockLedger(ctrl)
		ledger.EXPECT().
			ListItems(gomock.Any(), ports.ListParams{SortBy: "color", Search: "shirt"}).
			Return(items, nil)
		ledger.EXPECT().TotalPieces(gomock.Any()).Return(11)

		handler := handlers.NewInventoryHandler(ledger, qrgen.New(), 5, helpers.TestLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory?sort=color&search=shirt", nil)
		rec := httptest.NewRecorder()

		handler.ListInventory(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.ListInventoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 2)
		assert.True(t, resp.Items[0].LowStock)   // 3 < 5
		assert.False(t, resp.Items[1].LowStock)  // 8 >= 5
		assert.Equal(t, 11, resp.TotalPieces)
	})

	t.Run("decode_error_maps_to_unprocessable_entity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ledger := mocks.NewMockLedger(ctrl)
		ledger.EXPECT().
			ListItems(gomock.Any(), gomock.Any()).
			Return(nil, &domain.DecodeError{SKU: "BROKEN", Reason: "expected 4 components, got 1"})

		handler := handlers.NewInventoryHandler(ledger, qrgen.New(), 5, helpers.TestLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
		rec := httptest.NewRecorder()

		handler.ListInventory(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestInventoryHandler_RenderQR(t *testing.T) {
	tests := []struct {
		name           string
		sku            string
		setupMocks     func(*mocks.MockLedger)
		expectedStatus int
		expectPNG      bool
	}{
		{
			name: "renders_png_for_known_sku",
			sku:  "100-SHIRT-RED-M",
			setupMocks: func(m *mocks.MockLedger) {
				m.EXPECT().
					Snapshot(gomock.Any()).
					Return(map[domain.SKU]int{"100-SHIRT-RED-M": 3}, nil)
			},
			expectedStatus: http.StatusOK,
			expectPNG:      true,
		},
		{
			name:           "malformed_sku",
			sku:            "NOT-A-SKU",
			setupMocks:     func(m *mocks.MockLedger) {},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown_sku",
			sku:  "999-GONE-X-S",
			setupMocks: func(m *mocks.MockLedger) {
				m.EXPECT().
					Snapshot(gomock.Any()).
					Return(map[domain.SKU]int{}, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ledger := mocks.NewMockLedger(ctrl)
			tt.setupMocks(ledger)

			handler := handlers.NewInventoryHandler(ledger, qrgen.New(), 5, helpers.TestLogger())

			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/v1/inventory/{sku}/qr", handler.RenderQR)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/"+tt.sku+"/qr", nil)
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectPNG {
				assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("Content-Disposition"), ".png")
				// PNG magic bytes.
				body := rec.Body.Bytes()
				require.Greater(t, len(body), 8)
				assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body[:4])
			}
		})
	}
}
