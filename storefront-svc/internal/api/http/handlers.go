package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/pricing"
	"bistro-storefront/storefront-svc/internal/reservation"
	"bistro-storefront/storefront-svc/internal/service"
	"bistro-storefront/storefront-svc/internal/session"
	"bistro-storefront/storefront-svc/internal/storage"

	"github.com/gorilla/mux"
)

const SessionHeader = "X-Session-ID"

type Handler struct {
	Storefront service.StorefrontServiceInterface
}

func NewHandler(svc service.StorefrontServiceInterface) *Handler {
	return &Handler{Storefront: svc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/session", h.openSession).Methods("POST")
	r.HandleFunc("/api/session", h.closeSession).Methods("DELETE")
	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items/{id}/increment", h.incrementItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{id}/decrement", h.decrementItem).Methods("POST")
	r.HandleFunc("/api/promotion", h.applyPromotion).Methods("POST")
	r.HandleFunc("/api/promotion", h.clearPromotion).Methods("DELETE")
	r.HandleFunc("/api/checkout/quote", h.getQuote).Methods("GET")
	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/payments/qr", h.getTransferQR).Methods("GET")

	r.HandleFunc("/api/reservations/validate", h.validateReservationTime).Methods("POST")
	r.HandleFunc("/api/reservations/dishes", h.getDishes).Methods("GET")
	r.HandleFunc("/api/reservations/dishes/open", h.openDishes).Methods("POST")
	r.HandleFunc("/api/reservations/dishes/commit", h.commitDishes).Methods("POST")
	r.HandleFunc("/api/reservations/dishes/discard", h.discardDishes).Methods("POST")
	r.HandleFunc("/api/reservations/dishes/{id}/adjust", h.adjustDish).Methods("POST")
	r.HandleFunc("/api/reservations/dishes/{id}", h.removeDish).Methods("DELETE")
	r.HandleFunc("/api/reservations", h.submitReservation).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

type openSessionRequest struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"profile"`
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := decodeOptional(r.Body, &req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	token := req.Token
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	}
	profile := []byte(req.Profile)
	// Older clients store the profile as a JSON string holding the JSON object.
	var nested string
	if err := json.Unmarshal(profile, &nested); err == nil {
		profile = []byte(nested)
	}

	sess, err := h.Storefront.OpenSession(r.Context(), token, profile)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set(SessionHeader, sess.ID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id":    sess.ID,
		"authenticated": sess.Authenticated(),
		"profile":       sess.Profile,
	})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.Storefront.CloseSession(r.Context(), sid); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.Storefront.Menu(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	items := menu.Items()
	if items == nil {
		items = []domain.FoodItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.Storefront.Cart(r.Context(), sid, fulfillmentMode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.Storefront.ClearCart(r.Context(), sid); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) incrementItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	view, err := h.Storefront.Increment(r.Context(), sid, itemID, fulfillmentMode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) decrementItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	view, err := h.Storefront.Decrement(r.Context(), sid, itemID, fulfillmentMode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) applyPromotion(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.Storefront.ApplyPromotion(r.Context(), sid, req.Code, fulfillmentMode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) clearPromotion(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.Storefront.ClearPromotion(r.Context(), sid, fulfillmentMode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	quote, err := h.Storefront.Quote(r.Context(), sid, fulfillmentMode(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = domain.ModePickup
	}
	confirmation, err := h.Storefront.PlaceOrder(r.Context(), sid, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}

func (h *Handler) getTransferQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseInt(q.Get("amount"), 10, 64)
	if err != nil {
		http.Error(w, "amount must be a whole number", http.StatusBadRequest)
		return
	}
	png, err := h.Storefront.TransferQR(amount, q.Get("phone"), q.Get("order_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) validateReservationTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime string `json:"start_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Storefront.ValidateReservationTime(req.StartTime); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handler) getDishes(w http.ResponseWriter, r *http.Request) {
	h.dishes(w, r, h.Storefront.Dishes)
}

func (h *Handler) openDishes(w http.ResponseWriter, r *http.Request) {
	h.dishes(w, r, h.Storefront.OpenDishes)
}

func (h *Handler) commitDishes(w http.ResponseWriter, r *http.Request) {
	h.dishes(w, r, h.Storefront.CommitDishes)
}

func (h *Handler) discardDishes(w http.ResponseWriter, r *http.Request) {
	h.dishes(w, r, h.Storefront.DiscardDishes)
}

func (h *Handler) adjustDish(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.Storefront.AdjustDish(r.Context(), sid, itemID, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) removeDish(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}
	view, err := h.Storefront.RemoveDish(r.Context(), sid, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) submitReservation(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	var draft domain.ReservationDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	confirmation, err := h.Storefront.SubmitReservation(r.Context(), sid, draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}

func (h *Handler) dishes(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (domain.DishesView, error)) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	view, err := op(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid := strings.TrimSpace(r.Header.Get(SessionHeader))
	if sid == "" {
		http.Error(w, "missing "+SessionHeader+" header", http.StatusUnauthorized)
		return "", false
	}
	return sid, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func fulfillmentMode(r *http.Request) domain.FulfillmentMode {
	mode := domain.FulfillmentMode(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode"))))
	if mode == "" {
		return domain.ModePickup
	}
	return mode
}

// decodeOptional decodes a JSON body that may be absent.
func decodeOptional(body io.Reader, v any) error {
	err := json.NewDecoder(body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

var validationErrors = []error{
	service.ErrEmptyCart,
	service.ErrUnknownItem,
	service.ErrInvalidMode,
	service.ErrInvalidPayment,
	service.ErrAddressRequired,
	service.ErrDeliveryPhone,
	service.ErrInvalidTransferInput,
	pricing.ErrEmptyCode,
	pricing.ErrNoMatchingPromotion,
	reservation.ErrTimeRequired,
	reservation.ErrTimeInPast,
	reservation.ErrTooFarAhead,
	reservation.ErrBeforeOpening,
	reservation.ErrAfterLastBooking,
	reservation.ErrNameRequired,
	reservation.ErrPhoneRequired,
	reservation.ErrPartySize,
	session.ErrInvalidProfile,
}

// writeError maps service errors onto status codes. Rule violations keep
// their own message; backend failures surface the backend's message when it
// sent one.
func writeError(w http.ResponseWriter, err error) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": target.Error()})
			return
		}
	}

	var backendErr *storage.BackendError
	switch {
	case errors.Is(err, session.ErrCredentialExpired), errors.Is(err, storage.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "your session has expired, please sign in again"})
	case errors.Is(err, storage.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrSubmitInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &backendErr):
		message := backendErr.Message
		if message == "" {
			message = "the restaurant could not process the request, please try again"
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": message})
	default:
		log.Printf("[storefront-svc] request failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "the restaurant could not process the request, please try again"})
	}
}
