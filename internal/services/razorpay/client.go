// Package razorpay is a thin REST client for the subset of the Razorpay
// API the escrow flow needs: orders, linked accounts and transfers.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"collegeskills_backend/internal/config"
)

// Order is a Razorpay order entity. Amounts are in minor units (paise).
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// PaymentEntity is the captured payment attached to an order.
type PaymentEntity struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
	Captured bool   `json:"captured"`
}

// Account is a Razorpay linked (route) account used for payouts.
type Account struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Transfer moves captured funds from a payment to a linked account.
type Transfer struct {
	ID        string `json:"id"`
	PaymentID string `json:"source"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
}

// AccountRequest carries the fields needed to open a linked account for
// a freelancer.
type AccountRequest struct {
	Email        string
	Phone        string
	LegalName    string
	BusinessType string
}

// Client is the gateway surface the payment service depends on. A fake
// implementation stands in during tests.
type Client interface {
	CreateOrder(ctx context.Context, amount float64, receipt string, notes map[string]string) (*Order, error)
	FetchPaymentForOrder(ctx context.Context, razorpayOrderID string) (*PaymentEntity, error)
	FetchTransfersForPayment(ctx context.Context, paymentID string) ([]Transfer, error)
	CreateLinkedAccount(ctx context.Context, req AccountRequest) (*Account, error)
	CreateTransfer(ctx context.Context, paymentID string, amount float64, accountID string) (*Transfer, error)
}

type restClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	currency   string
	httpClient *http.Client
}

func NewClient(cfg config.RazorpayConfig) Client {
	return &restClient{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		currency:  cfg.Currency,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// toMinorUnits converts a rupee amount to paise.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (c *restClient) CreateOrder(ctx context.Context, amount float64, receipt string, notes map[string]string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   toMinorUnits(amount),
		"currency": c.currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		payload["notes"] = notes
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/v1/orders", payload, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

func (c *restClient) FetchPaymentForOrder(ctx context.Context, razorpayOrderID string) (*PaymentEntity, error) {
	var result struct {
		Items []PaymentEntity `json:"items"`
	}
	path := fmt.Sprintf("/v1/orders/%s/payments", razorpayOrderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}

	for i := range result.Items {
		if result.Items[i].Status == "captured" {
			return &result.Items[i], nil
		}
	}
	return nil, fmt.Errorf("no captured payment for order %s", razorpayOrderID)
}

func (c *restClient) FetchTransfersForPayment(ctx context.Context, paymentID string) ([]Transfer, error) {
	var result struct {
		Items []Transfer `json:"items"`
	}
	path := fmt.Sprintf("/v1/payments/%s/transfers", paymentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("fetch transfers: %w", err)
	}
	return result.Items, nil
}

func (c *restClient) CreateLinkedAccount(ctx context.Context, req AccountRequest) (*Account, error) {
	payload := map[string]interface{}{
		"email":         req.Email,
		"phone":         req.Phone,
		"type":          "route",
		"legal_business_name": req.LegalName,
		"business_type":       req.BusinessType,
	}

	var account Account
	if err := c.do(ctx, http.MethodPost, "/v2/accounts", payload, &account); err != nil {
		return nil, fmt.Errorf("create linked account: %w", err)
	}
	return &account, nil
}

func (c *restClient) CreateTransfer(ctx context.Context, paymentID string, amount float64, accountID string) (*Transfer, error) {
	payload := map[string]interface{}{
		"transfers": []map[string]interface{}{
			{
				"account":  accountID,
				"amount":   toMinorUnits(amount),
				"currency": c.currency,
			},
		},
	}

	var result struct {
		Items []Transfer `json:"items"`
	}
	path := fmt.Sprintf("/v1/payments/%s/transfers", paymentID)
	if err := c.do(ctx, http.MethodPost, path, payload, &result); err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("transfer response contained no items")
	}
	return &result.Items[0], nil
}

func (c *restClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("razorpay %s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
