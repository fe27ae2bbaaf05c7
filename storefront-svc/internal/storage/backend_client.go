package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"
)

var ErrUnauthorized = errors.New("credential rejected by backend")

// BackendError is a non-success reply from the restaurant backend. Message is
// the backend's own text when it sent one.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BackendClient reaches the restaurant backend over its JSON API.
type BackendClient struct {
	baseURL string
	client  HTTPClient
}

func NewBackendClient(baseURL string, client HTTPClient) *BackendClient {
	return &BackendClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *BackendClient) FetchCatalog(ctx context.Context) ([]domain.FoodItem, error) {
	var rows []domain.CatalogItemPayload
	if err := c.do(ctx, http.MethodGet, "/api/mon-an", "", nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return catalog.FromPayloads(rows).Items(), nil
}

func (c *BackendClient) FetchPromotions(ctx context.Context) ([]domain.Promotion, error) {
	var rows []domain.PromotionPayload
	if err := c.do(ctx, http.MethodGet, "/api/khuyen-mai", "", nil, &rows); err != nil {
		return nil, fmt.Errorf("fetch promotions: %w", err)
	}
	promotions := make([]domain.Promotion, 0, len(rows))
	for _, row := range rows {
		promo, err := row.Normalize()
		if err != nil {
			log.Printf("WARNING: skipping promotion: %v", err)
			continue
		}
		promotions = append(promotions, promo)
	}
	return promotions, nil
}

func (c *BackendClient) SubmitOrder(ctx context.Context, token string, order domain.OrderSubmission) (domain.SubmissionReceipt, error) {
	var receipt domain.SubmissionReceipt
	if err := c.do(ctx, http.MethodPost, "/api/don-hang", token, order, &receipt); err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("submit order: %w", err)
	}
	return receipt, nil
}

func (c *BackendClient) SubmitReservation(ctx context.Context, token string, res domain.ReservationSubmission) (domain.SubmissionReceipt, error) {
	var receipt domain.SubmissionReceipt
	if err := c.do(ctx, http.MethodPost, "/api/dat-ban", token, res, &receipt); err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("submit reservation: %w", err)
	}
	return receipt, nil
}

func (c *BackendClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &BackendError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(unwrapData(data), out)
}

// unwrapData accepts both a bare payload and one wrapped as {"data": ...}.
func unwrapData(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return envelope.Data
	}
	return trimmed
}

func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
