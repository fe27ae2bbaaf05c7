package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want FlexID
	}{
		{name: "number", raw: `12`, want: "12"},
		{name: "string", raw: `" KM01 "`, want: "KM01"},
		{name: "null", raw: `null`, want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var id FlexID
			require.NoError(t, json.Unmarshal([]byte(testCase.raw), &id))
			assert.Equal(t, testCase.want, id)
		})
	}

	var id FlexID
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
}

func TestFlexID_Marshal(t *testing.T) {
	numeric := FlexID("7")
	code := FlexID("GIAM10")
	data, err := json.Marshal(struct {
		A *FlexID `json:"a"`
		B FlexID  `json:"b"`
		C FlexID  `json:"c"`
	}{A: &numeric, B: code})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":7,"b":"GIAM10","c":null}`, string(data))
}

func TestCatalogItemPayload_Normalize(t *testing.T) {
	var rows []CatalogItemPayload
	require.NoError(t, json.Unmarshal([]byte(`[
		{"MaMon":1,"TenMon":" Pho bo ","Gia":"50000.00","HinhAnh":"pho.jpg","loaiMon":{"TenLoai":"Mon nuoc"}},
		{"MaMon":2,"TenMon":"Tra da","Gia":5000},
		{"MaMon":0,"TenMon":"no id","Gia":1000},
		{"MaMon":3,"TenMon":"negative","Gia":"-1"}
	]`), &rows))

	item, err := rows[0].Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Pho bo", item.Name)
	assert.Equal(t, "Mon nuoc", item.Category)
	assert.True(t, item.Price.Equal(decimal.NewFromInt(50000)))

	item, err = rows[1].Normalize()
	require.NoError(t, err)
	assert.Empty(t, item.Category)

	_, err = rows[2].Normalize()
	assert.ErrorIs(t, err, ErrInvalidCatalogItem)
	_, err = rows[3].Normalize()
	assert.ErrorIs(t, err, ErrInvalidCatalogItem)
}

func TestPromotionPayload_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantErr  bool
		wantID   string
		wantCode string
		wantKind DiscountKind
	}{
		{
			name:     "numeric id with code",
			raw:      `{"MaKM":7,"MaApDung":"GIAM10","LoaiGiamGia":"phantram","GiaTriGiam":10,"NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31T23:59:59Z"}`,
			wantID:   "7",
			wantCode: "GIAM10",
			wantKind: DiscountPercentage,
		},
		{
			name:     "id from MaApDung",
			raw:      `{"MaApDung":"SALE","LoaiGiamGia":"SoTien","GiaTriGiam":"20000","NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31"}`,
			wantID:   "SALE",
			wantCode: "SALE",
			wantKind: DiscountFixedAmount,
		},
		{
			name:     "legacy code field",
			raw:      `{"MaKM":9,"Code":"LEGACY","LoaiGiamGia":"TienMat","GiaTriGiam":1000,"NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31"}`,
			wantID:   "9",
			wantCode: "LEGACY",
			wantKind: DiscountFixedAmount,
		},
		{
			name:    "percentage above 100",
			raw:     `{"MaKM":1,"LoaiGiamGia":"PhanTram","GiaTriGiam":120,"NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31"}`,
			wantErr: true,
		},
		{
			name:    "negative value",
			raw:     `{"MaKM":1,"LoaiGiamGia":"SoTien","GiaTriGiam":-5,"NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31"}`,
			wantErr: true,
		},
		{
			name:    "missing id",
			raw:     `{"LoaiGiamGia":"SoTien","GiaTriGiam":5,"NgayBatDau":"2025-03-01","NgayKetThuc":"2025-03-31"}`,
			wantErr: true,
		},
		{
			name:    "bad date",
			raw:     `{"MaKM":1,"LoaiGiamGia":"SoTien","GiaTriGiam":5,"NgayBatDau":"03/01","NgayKetThuc":"2025-03-31"}`,
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var payload PromotionPayload
			require.NoError(t, json.Unmarshal([]byte(testCase.raw), &payload))

			promo, err := payload.Normalize()
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPromotion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantID, promo.ID)
			assert.Equal(t, testCase.wantCode, promo.Code)
			assert.Equal(t, testCase.wantKind, promo.Kind)
		})
	}
}

func TestPromotion_IsActive(t *testing.T) {
	promo := Promotion{
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.False(t, promo.IsActive(time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)))
	assert.True(t, promo.IsActive(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, promo.IsActive(time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC)), "the end day is included")
	assert.False(t, promo.IsActive(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSubmissionReceipt_Aliases(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `{"MaDH":15}`, want: "15"},
		{raw: `{"MaDonHang":"16","message":"ok"}`, want: "16"},
		{raw: `{"MaDatBan":9}`, want: "9"},
		{raw: `{"id":3}`, want: "3"},
		{raw: `{}`, want: ""},
	}

	for _, testCase := range tests {
		var receipt SubmissionReceipt
		require.NoError(t, json.Unmarshal([]byte(testCase.raw), &receipt))
		assert.Equal(t, testCase.want, receipt.ID, testCase.raw)
	}
}

func TestOrderSubmission_WireShape(t *testing.T) {
	data, err := json.Marshal(OrderSubmission{
		ChiTietList:    []OrderLinePayload{{MaMon: 1, SoLuong: 2}},
		ShippingInfo:   ShippingInfoPayload{DiaChi: "1 Le Loi", SoDienThoai: "0901"},
		PaymentMethod:  PaymentCOD,
		DiscountAmount: decimal.NewFromInt(13000),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ChiTietList":[{"MaMon":1,"SoLuong":2}],
		"shippingInfo":{"DiaChi":"1 Le Loi","SoDienThoai":"0901"},
		"paymentMethod":"cod",
		"PromotionId":null,
		"DiscountAmount":"13000"
	}`, string(data))
}
