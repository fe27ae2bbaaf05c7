package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bistro-storefront/storefront-svc/internal/cart"
	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/pricing"
	"bistro-storefront/storefront-svc/internal/reservation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidProfile    = errors.New("stored user profile is not valid JSON")
	ErrCredentialExpired = errors.New("credential has expired")
)

// Session is the per-visitor state holder. Cart, promotion selection and dish
// picker are only changed through their own operations.
type Session struct {
	ID        string
	Token     string
	Profile   domain.UserProfile
	Cart      *cart.Cart
	Promotion pricing.Selection
	Dishes    *reservation.DishPicker
	CreatedAt time.Time
}

// Open starts a session from the two persisted client slots: the auth token
// and the serialized user profile. Either may be empty for a guest.
func Open(token string, rawProfile []byte, now time.Time) (*Session, error) {
	token = strings.TrimSpace(token)
	if err := CheckCredential(token, now); err != nil {
		return nil, err
	}
	profile, err := ParseProfile(rawProfile)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		Profile:   profile,
		Cart:      cart.New(),
		Dishes:    reservation.NewDishPicker(),
		CreatedAt: now,
	}, nil
}

// Teardown drops the credential and every piece of order state.
func (s *Session) Teardown() {
	s.Token = ""
	s.Profile = domain.UserProfile{}
	s.Cart.Clear()
	s.Promotion.Clear()
	s.Dishes = reservation.NewDishPicker()
}

func (s *Session) Authenticated() bool {
	return s.Token != ""
}

// CheckCredential rejects tokens that are JWTs past their exp claim. The
// signature is not verified here and tokens that are not JWTs pass through.
func CheckCredential(token string, now time.Time) error {
	if token == "" {
		return nil
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return ErrCredentialExpired
	}
	return nil
}

var profileAliases = map[string][]string{
	"id":    {"MaKH", "MaKhachHang", "id", "ID"},
	"name":  {"HoTen", "hoTen", "TenKH", "name", "fullName"},
	"phone": {"SoDienThoai", "soDienThoai", "SDT", "sdt", "phone", "phoneNumber"},
	"email": {"Email", "email"},
}

// ParseProfile reads the stored profile, accepting the field-name variants
// older clients wrote.
func ParseProfile(raw []byte) (domain.UserProfile, error) {
	if len(strings.TrimSpace(string(raw))) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return domain.UserProfile{}, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.UserProfile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return domain.UserProfile{
		ID:    pick(fields, profileAliases["id"]),
		Name:  pick(fields, profileAliases["name"]),
		Phone: pick(fields, profileAliases["phone"]),
		Email: pick(fields, profileAliases["email"]),
	}, nil
}

func pick(fields map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

type record struct {
	ID          string                      `json:"id"`
	Token       string                      `json:"token,omitempty"`
	Profile     domain.UserProfile          `json:"profile"`
	Cart        map[int]int                 `json:"cart"`
	Promotion   pricing.Selection           `json:"promotion"`
	Dishes      []domain.DishSelectionEntry `json:"dishes,omitempty"`
	DishScratch map[int]int                 `json:"dish_scratch"`
	CreatedAt   time.Time                   `json:"created_at"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		ID:          s.ID,
		Token:       s.Token,
		Profile:     s.Profile,
		Cart:        s.Cart.Snapshot(),
		Promotion:   s.Promotion,
		Dishes:      s.Dishes.Committed(),
		DishScratch: s.Dishes.Scratch(),
		CreatedAt:   s.CreatedAt,
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	s.ID = r.ID
	s.Token = r.Token
	s.Profile = r.Profile
	s.Cart = cart.FromSnapshot(r.Cart)
	s.Promotion = r.Promotion
	s.Dishes = reservation.RestorePicker(r.Dishes, r.DishScratch)
	s.CreatedAt = r.CreatedAt
	return nil
}
