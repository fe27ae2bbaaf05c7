package reservation

import (
	"errors"
	"strings"
	"time"

	"bistro-storefront/storefront-svc/internal/domain"
)

const (
	MinPartySize = 1
	MaxPartySize = 20
)

var (
	ErrNameRequired  = errors.New("please enter the name for the booking")
	ErrPhoneRequired = errors.New("please enter a contact phone number")
	ErrPartySize     = errors.New("party size must be between 1 and 20")
)

// ValidateDraft checks the contact fields and party size, then the start time.
func ValidateDraft(draft domain.ReservationDraft, now time.Time) error {
	if strings.TrimSpace(draft.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(draft.Phone) == "" {
		return ErrPhoneRequired
	}
	if draft.PartySize < MinPartySize || draft.PartySize > MaxPartySize {
		return ErrPartySize
	}
	return ValidateTime(draft.StartTime, now)
}

// Submission builds the backend payload. The draft must already be valid.
func Submission(draft domain.ReservationDraft) domain.ReservationSubmission {
	start, _ := ParseLocal(draft.StartTime)
	sub := domain.ReservationSubmission{
		HoTen:          strings.TrimSpace(draft.Name),
		SoDienThoai:    strings.TrimSpace(draft.Phone),
		Email:          strings.TrimSpace(draft.Email),
		ThoiGianBatDau: FormatLocal(start),
		SoNguoi:        draft.PartySize,
		GhiChu:         draft.Note,
	}
	for _, dish := range draft.Dishes {
		sub.CartItems = append(sub.CartItems, domain.ReservationDishPayload{
			MaMon:   dish.ItemID,
			SoLuong: dish.Quantity,
			GhiChu:  dish.Note,
		})
	}
	return sub
}
