package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FoodItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	ImageURL string          `json:"image_url"`
}

type DiscountKind string

const (
	DiscountPercentage  DiscountKind = "percentage"
	DiscountFixedAmount DiscountKind = "fixed_amount"
)

// Promotion is a time-windowed discount rule redeemed by Code. Start and End
// carry calendar dates; the window includes both end days.
type Promotion struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      DiscountKind    `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Code      string          `json:"code"`
}

func (p Promotion) IsActive(now time.Time) bool {
	today := calendarDate(now)
	return !today.Before(calendarDate(p.StartDate)) && !today.After(calendarDate(p.EndDate))
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type FulfillmentMode string

const (
	ModePickup   FulfillmentMode = "pickup"
	ModeDelivery FulfillmentMode = "delivery"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentBanking PaymentMethod = "banking"
)

type ResolvedCartLine struct {
	ItemID    int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Category  string          `json:"category"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type PricingResult struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Shipping   decimal.Decimal `json:"shipping"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// DishSelectionEntry is a dish pre-ordered with a reservation. Name, Price and
// ImageURL are captured when the selection is committed.
type DishSelectionEntry struct {
	ItemID   int             `json:"id"`
	Quantity int             `json:"quantity"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Note     string          `json:"note,omitempty"`
}

type ReservationDraft struct {
	Name      string               `json:"name"`
	Phone     string               `json:"phone"`
	Email     string               `json:"email"`
	StartTime string               `json:"start_time"`
	PartySize int                  `json:"party_size"`
	Note      string               `json:"note"`
	Dishes    []DishSelectionEntry `json:"dishes,omitempty"`
}

type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type OrderRequest struct {
	Mode          FulfillmentMode `json:"mode"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
}

type OrderConfirmation struct {
	OrderID     string        `json:"order_id"`
	Pricing     PricingResult `json:"pricing"`
	TransferURL string        `json:"transfer_url,omitempty"`
	Message     string        `json:"message,omitempty"`
}

type ReservationConfirmation struct {
	ReservationID string          `json:"reservation_id"`
	DishesTotal   decimal.Decimal `json:"dishes_total"`
	Message       string          `json:"message,omitempty"`
}

type Event struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	RefID     string          `json:"ref_id"`
	Amount    decimal.Decimal `json:"amount"`
	Items     int             `json:"items"`
	Timestamp time.Time       `json:"timestamp"`
}

const (
	EventOrderSubmitted       = "order_submitted"
	EventReservationSubmitted = "reservation_submitted"
)

// CartView is the rendered cart: resolved lines, the badge count and the
// price breakdown for the requested fulfillment mode.
type CartView struct {
	Lines         []ResolvedCartLine `json:"lines"`
	Count         int                `json:"count"`
	PromotionCode string             `json:"promotion_code,omitempty"`
	Promotion     *Promotion         `json:"promotion,omitempty"`
	Pricing       PricingResult      `json:"pricing"`
}

// DishesView is the reservation dish picker as the form shows it.
type DishesView struct {
	Committed []DishSelectionEntry `json:"committed"`
	Scratch   map[int]int          `json:"scratch,omitempty"`
	Open      bool                 `json:"open"`
	Total     decimal.Decimal      `json:"total"`
}
