package pricing

import (
	"errors"
	"strings"
	"time"

	"bistro-storefront/storefront-svc/internal/domain"
)

var (
	ErrEmptyCode           = errors.New("please enter a promotion code")
	ErrNoMatchingPromotion = errors.New("no active promotion matches this code")
)

// ActivePromotions keeps the promotions whose validity window contains now.
func ActivePromotions(all []domain.Promotion, now time.Time) []domain.Promotion {
	active := make([]domain.Promotion, 0, len(all))
	for _, p := range all {
		if p.IsActive(now) {
			active = append(active, p)
		}
	}
	return active
}

// Match finds the promotion whose code equals the entered code, ignoring case
// and surrounding blanks. When several share a code the first one in the list wins.
func Match(code string, active []domain.Promotion) (domain.Promotion, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Promotion{}, ErrEmptyCode
	}
	for _, p := range active {
		if strings.EqualFold(strings.TrimSpace(p.Code), code) {
			return p, nil
		}
	}
	return domain.Promotion{}, ErrNoMatchingPromotion
}

// Selection is the promotion currently applied to the order together with the
// code the customer typed.
type Selection struct {
	Code     string            `json:"code"`
	Selected *domain.Promotion `json:"selected,omitempty"`
}

// Apply replaces the selection and its code on a match. A rejected code
// leaves the earlier code and selection in place.
func (s *Selection) Apply(code string, active []domain.Promotion) (domain.Promotion, error) {
	promo, err := Match(code, active)
	if err != nil {
		return domain.Promotion{}, err
	}
	s.Code = code
	s.Selected = &promo
	return promo, nil
}

func (s *Selection) Clear() {
	s.Code = ""
	s.Selected = nil
}

func (s *Selection) Promotion() *domain.Promotion {
	if s == nil {
		return nil
	}
	return s.Selected
}
