package service

import (
	"context"
	"fmt"
	"log"

	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/reservation"
	"bistro-storefront/storefront-svc/internal/session"
)

func (s *StorefrontService) ValidateReservationTime(value string) error {
	return reservation.ValidateTime(value, s.now())
}

func (s *StorefrontService) Dishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.DishesView{}, err
	}
	return dishesView(sess.Dishes), nil
}

// OpenDishes starts editing, pre-filled with the dishes already committed.
func (s *StorefrontService) OpenDishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	return s.updateDishes(ctx, sessionID, func(p *reservation.DishPicker) error {
		p.Open()
		return nil
	})
}

func (s *StorefrontService) AdjustDish(ctx context.Context, sessionID string, itemID, delta int) (domain.DishesView, error) {
	if delta > 0 {
		menu, err := s.Menu(ctx)
		if err != nil {
			return domain.DishesView{}, err
		}
		if _, ok := menu.Lookup(itemID); !ok {
			return domain.DishesView{}, ErrUnknownItem
		}
	}
	return s.updateDishes(ctx, sessionID, func(p *reservation.DishPicker) error {
		p.AdjustQuantity(itemID, delta)
		return nil
	})
}

// CommitDishes snapshots the edited quantities with today's menu prices.
func (s *StorefrontService) CommitDishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.DishesView{}, err
	}
	return s.updateDishes(ctx, sessionID, func(p *reservation.DishPicker) error {
		p.Commit(menu)
		return nil
	})
}

func (s *StorefrontService) DiscardDishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	return s.updateDishes(ctx, sessionID, func(p *reservation.DishPicker) error {
		p.Discard()
		return nil
	})
}

func (s *StorefrontService) RemoveDish(ctx context.Context, sessionID string, itemID int) (domain.DishesView, error) {
	return s.updateDishes(ctx, sessionID, func(p *reservation.DishPicker) error {
		p.RemoveCommitted(itemID)
		return nil
	})
}

// SubmitReservation validates the draft locally, attaches the committed dishes
// and sends it to the backend. The dish picker is reset once the backend
// accepts the booking.
func (s *StorefrontService) SubmitReservation(ctx context.Context, sessionID string, draft domain.ReservationDraft) (domain.ReservationConfirmation, error) {
	if err := reservation.ValidateDraft(draft, s.now()); err != nil {
		return domain.ReservationConfirmation{}, err
	}
	if err := s.sessions.AcquireSubmit(ctx, sessionID); err != nil {
		return domain.ReservationConfirmation{}, err
	}
	defer s.release(ctx, sessionID)

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.ReservationConfirmation{}, err
	}
	draft.Dishes = withNotes(sess.Dishes.Committed(), draft.Dishes)

	receipt, err := s.backend.SubmitReservation(ctx, sess.Token, reservation.Submission(draft))
	if err != nil {
		s.handleBackendError(ctx, sessionID, err)
		return domain.ReservationConfirmation{}, fmt.Errorf("failed to submit reservation: %w", err)
	}
	log.Printf("[storefront-svc] reservation %s submitted for session %s (%d guests)", receipt.ID, sessionID, draft.PartySize)

	if _, err := s.sessions.UpdateSession(ctx, sessionID, func(sess *session.Session) error {
		sess.Dishes = reservation.NewDishPicker()
		return nil
	}); err != nil {
		log.Printf("WARNING: failed to reset dishes after reservation %s: %v", receipt.ID, err)
	}

	total := reservation.EntriesTotal(draft.Dishes)
	s.publish(ctx, domain.Event{
		Type:      domain.EventReservationSubmitted,
		SessionID: sessionID,
		RefID:     receipt.ID,
		Amount:    total,
		Items:     len(draft.Dishes),
		Timestamp: s.now(),
	})

	return domain.ReservationConfirmation{
		ReservationID: receipt.ID,
		DishesTotal:   total,
		Message:       receipt.Message,
	}, nil
}

func (s *StorefrontService) updateDishes(ctx context.Context, sessionID string, fn func(*reservation.DishPicker) error) (domain.DishesView, error) {
	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		return fn(sess.Dishes)
	})
	if err != nil {
		return domain.DishesView{}, err
	}
	return dishesView(sess.Dishes), nil
}

func dishesView(p *reservation.DishPicker) domain.DishesView {
	committed := p.Committed()
	if committed == nil {
		committed = []domain.DishSelectionEntry{}
	}
	return domain.DishesView{
		Committed: committed,
		Scratch:   p.Scratch(),
		Open:      p.IsOpen(),
		Total:     p.Total(),
	}
}

// withNotes copies per-dish notes typed on the form onto the committed
// entries. Quantities and prices always come from the committed list.
func withNotes(committed, fromForm []domain.DishSelectionEntry) []domain.DishSelectionEntry {
	notes := make(map[int]string, len(fromForm))
	for _, entry := range fromForm {
		if entry.Note != "" {
			notes[entry.ItemID] = entry.Note
		}
	}
	for i := range committed {
		if note, ok := notes[committed[i].ItemID]; ok {
			committed[i].Note = note
		}
	}
	return committed
}
