package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendClient_FetchCatalog(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "bare array",
			body: `[{"MaMon":1,"TenMon":"Pho bo","Gia":"50000.00","loaiMon":{"TenLoai":"Mon nuoc"}},{"MaMon":2,"TenMon":"Tra da","Gia":5000},{"MaMon":0,"TenMon":"bad"}]`,
		},
		{
			name: "data envelope",
			body: `{"data":[{"MaMon":1,"TenMon":"Pho bo","Gia":50000,"loaiMon":{"TenLoai":"Mon nuoc"}},{"MaMon":2,"TenMon":"Tra da","Gia":"5000"}]}`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/mon-an", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, testCase.body)
			}))
			defer ts.Close()

			client := NewBackendClient(ts.URL+"/", ts.Client())
			items, err := client.FetchCatalog(context.Background())
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "Mon nuoc", items[0].Category)
			assert.True(t, items[0].Price.Equal(decimal.NewFromInt(50000)))
			assert.True(t, items[1].Price.Equal(decimal.NewFromInt(5000)))
		})
	}
}

func TestBackendClient_FetchPromotionsSkipsInvalid(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"MaKM":7,"MaApDung":"GIAM10","TenKM":"Giam 10%","LoaiGiamGia":"PhanTram","GiaTriGiam":10,"NgayBatDau":"2025-03-01T00:00:00.000Z","NgayKetThuc":"2025-03-31"},
			{"MaKM":8,"TenKM":"Broken","LoaiGiamGia":"PhanTram","GiaTriGiam":150,"NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31"}
		]`)
	}))
	defer ts.Close()

	promotions, err := NewBackendClient(ts.URL, ts.Client()).FetchPromotions(context.Background())
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, "GIAM10", promotions[0].Code)
	assert.Equal(t, domain.DiscountPercentage, promotions[0].Kind)
}

func TestBackendClient_SubmitOrder(t *testing.T) {
	var received map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/don-hang", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"MaDH":55,"message":"created"}`)
	}))
	defer ts.Close()

	promoID := domain.FlexID("7")
	receipt, err := NewBackendClient(ts.URL, ts.Client()).SubmitOrder(context.Background(), "tok", domain.OrderSubmission{
		ChiTietList:    []domain.OrderLinePayload{{MaMon: 1, SoLuong: 2}},
		ShippingInfo:   domain.ShippingInfoPayload{DiaChi: "1 Le Loi", SoDienThoai: "0901"},
		PaymentMethod:  domain.PaymentBanking,
		PromotionID:    &promoID,
		DiscountAmount: decimal.NewFromInt(13000),
	})
	require.NoError(t, err)
	assert.Equal(t, "55", receipt.ID)
	assert.Equal(t, "created", receipt.Message)

	assert.Equal(t, "banking", received["paymentMethod"])
	assert.Equal(t, float64(7), received["PromotionId"])
	lines := received["ChiTietList"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(2), lines[0].(map[string]any)["SoLuong"])
}

func TestBackendClient_SubmitReservationWithoutToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dat-ban", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		io.WriteString(w, `{"data":{"MaDatBan":"9"}}`)
	}))
	defer ts.Close()

	receipt, err := NewBackendClient(ts.URL, ts.Client()).SubmitReservation(context.Background(), "", domain.ReservationSubmission{HoTen: "Lan", SoNguoi: 2})
	require.NoError(t, err)
	assert.Equal(t, "9", receipt.ID)
}

func TestBackendClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantAuth    bool
		wantMessage string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"token expired"}`, wantAuth: true},
		{name: "forbidden", status: http.StatusForbidden, wantAuth: true},
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"Mon an khong ton tai"}`, wantMessage: "Mon an khong ton tai"},
		{name: "error field", status: http.StatusInternalServerError, body: `{"error":"db down"}`, wantMessage: "db down"},
		{name: "plain text", status: http.StatusBadGateway, body: `upstream`, wantMessage: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				io.WriteString(w, testCase.body)
			}))
			defer ts.Close()

			_, err := NewBackendClient(ts.URL, ts.Client()).SubmitOrder(context.Background(), "tok", domain.OrderSubmission{})
			require.Error(t, err)
			if testCase.wantAuth {
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			var backendErr *BackendError
			require.True(t, errors.As(err, &backendErr))
			assert.Equal(t, testCase.status, backendErr.Status)
			assert.Equal(t, testCase.wantMessage, backendErr.Message)
		})
	}
}

func TestBackendClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewBackendClient(url, http.DefaultClient).FetchCatalog(context.Background())
	assert.Error(t, err)
}
