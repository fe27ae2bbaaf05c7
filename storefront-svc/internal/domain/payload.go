package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCatalogItem = errors.New("invalid catalog item")
	ErrInvalidPromotion   = errors.New("invalid promotion")
)

// FlexID is an identifier the backend sends either as a JSON number or a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// MarshalJSON writes purely numeric identifiers back as numbers.
func (f FlexID) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(f), 10, 64); err == nil {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

type CategoryPayload struct {
	TenLoai string `json:"TenLoai"`
}

type CatalogItemPayload struct {
	MaMon   int              `json:"MaMon"`
	TenMon  string           `json:"TenMon"`
	Gia     decimal.Decimal  `json:"Gia"`
	HinhAnh string           `json:"HinhAnh"`
	LoaiMon *CategoryPayload `json:"loaiMon,omitempty"`
}

func (p CatalogItemPayload) Normalize() (FoodItem, error) {
	if p.MaMon <= 0 {
		return FoodItem{}, fmt.Errorf("%w: identifier %d", ErrInvalidCatalogItem, p.MaMon)
	}
	if p.Gia.IsNegative() {
		return FoodItem{}, fmt.Errorf("%w: negative price for item %d", ErrInvalidCatalogItem, p.MaMon)
	}
	item := FoodItem{
		ID:       p.MaMon,
		Name:     strings.TrimSpace(p.TenMon),
		Price:    p.Gia,
		ImageURL: p.HinhAnh,
	}
	if p.LoaiMon != nil {
		item.Category = strings.TrimSpace(p.LoaiMon.TenLoai)
	}
	return item, nil
}

type PromotionPayload struct {
	MaKM        FlexID          `json:"MaKM"`
	MaApDung    FlexID          `json:"MaApDung"`
	MaCode      string          `json:"MaCode,omitempty"`
	Code        string          `json:"Code,omitempty"`
	TenKM       string          `json:"TenKM"`
	LoaiGiamGia string          `json:"LoaiGiamGia"`
	GiaTriGiam  decimal.Decimal `json:"GiaTriGiam"`
	NgayBatDau  string          `json:"NgayBatDau"`
	NgayKetThuc string          `json:"NgayKetThuc"`
}

const percentageKindWire = "PhanTram"

var hundred = decimal.NewFromInt(100)

func (p PromotionPayload) Normalize() (Promotion, error) {
	id := firstNonEmpty(string(p.MaKM), string(p.MaApDung))
	if id == "" {
		return Promotion{}, fmt.Errorf("%w: missing identifier", ErrInvalidPromotion)
	}
	code := firstNonEmpty(string(p.MaApDung), p.MaCode, p.Code, string(p.MaKM))

	kind := DiscountFixedAmount
	if strings.EqualFold(strings.TrimSpace(p.LoaiGiamGia), percentageKindWire) {
		kind = DiscountPercentage
	}
	if p.GiaTriGiam.IsNegative() {
		return Promotion{}, fmt.Errorf("%w: negative discount on %s", ErrInvalidPromotion, id)
	}
	if kind == DiscountPercentage && p.GiaTriGiam.GreaterThan(hundred) {
		return Promotion{}, fmt.Errorf("%w: percentage above 100 on %s", ErrInvalidPromotion, id)
	}

	start, err := ParseCalendarDate(p.NgayBatDau)
	if err != nil {
		return Promotion{}, fmt.Errorf("%w: start date: %v", ErrInvalidPromotion, err)
	}
	end, err := ParseCalendarDate(p.NgayKetThuc)
	if err != nil {
		return Promotion{}, fmt.Errorf("%w: end date: %v", ErrInvalidPromotion, err)
	}

	return Promotion{
		ID:        id,
		Name:      strings.TrimSpace(p.TenKM),
		Kind:      kind,
		Value:     p.GiaTriGiam,
		StartDate: start,
		EndDate:   end,
		Code:      strings.TrimSpace(code),
	}, nil
}

// ParseCalendarDate reads the date part of an ISO date or timestamp and ignores
// any time or zone suffix.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	return time.Parse("2006-01-02", s[:len("2006-01-02")])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type OrderLinePayload struct {
	MaMon   int `json:"MaMon"`
	SoLuong int `json:"SoLuong"`
}

type ShippingInfoPayload struct {
	DiaChi      string `json:"DiaChi"`
	SoDienThoai string `json:"SoDienThoai"`
}

type OrderSubmission struct {
	ChiTietList    []OrderLinePayload  `json:"ChiTietList"`
	ShippingInfo   ShippingInfoPayload `json:"shippingInfo"`
	PaymentMethod  PaymentMethod       `json:"paymentMethod"`
	PromotionID    *FlexID             `json:"PromotionId"`
	DiscountAmount decimal.Decimal     `json:"DiscountAmount"`
}

type ReservationDishPayload struct {
	MaMon   int    `json:"MaMon"`
	SoLuong int    `json:"SoLuong"`
	GhiChu  string `json:"GhiChu"`
}

type ReservationSubmission struct {
	HoTen          string                   `json:"HoTen"`
	SoDienThoai    string                   `json:"SoDienThoai"`
	Email          string                   `json:"Email"`
	ThoiGianBatDau string                   `json:"ThoiGianBatDau"`
	SoNguoi        int                      `json:"SoNguoi"`
	GhiChu         string                   `json:"GhiChu"`
	CartItems      []ReservationDishPayload `json:"cartItems,omitempty"`
}

// SubmissionReceipt is the backend acknowledgement for an order or reservation.
type SubmissionReceipt struct {
	ID      string
	Message string
}

type receiptPayload struct {
	MaDH      FlexID `json:"MaDH"`
	MaDonHang FlexID `json:"MaDonHang"`
	MaDatBan  FlexID `json:"MaDatBan"`
	ID        FlexID `json:"id"`
	Message   string `json:"message"`
}

func (r *SubmissionReceipt) UnmarshalJSON(data []byte) error {
	var p receiptPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	r.ID = firstNonEmpty(string(p.MaDH), string(p.MaDonHang), string(p.MaDatBan), string(p.ID))
	r.Message = p.Message
	return nil
}
