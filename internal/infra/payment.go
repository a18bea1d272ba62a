package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PaymentIntent is the subset of the provider's payment-intent object the
// frontend needs to complete a card payment.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type paymentError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// PaymentClient talks to the Stripe REST API. The API takes form-encoded
// bodies and authenticates with the secret key as basic-auth user.
type PaymentClient struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func NewPaymentClient(apiURL, secretKey string) *PaymentClient {
	return &PaymentClient{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateIntent registers a payment intent for amount (in the currency's
// smallest unit, e.g. cents) and returns the client secret the frontend
// confirms the payment with.
func (c *PaymentClient) CreateIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("payment: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment: provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var pe paymentError
		if json.NewDecoder(resp.Body).Decode(&pe) == nil && pe.Error.Message != "" {
			return nil, fmt.Errorf("payment: provider returned %d: %s", resp.StatusCode, pe.Error.Message)
		}
		return nil, fmt.Errorf("payment: provider returned %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("payment: decode response: %w", err)
	}
	return &intent, nil
}
