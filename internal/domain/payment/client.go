package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"bikemarket/internal/config"
)

const (
	transactionType = "CustomerPayBillOnline"
	timestampLayout = "20060102150405"

	// defaultAmount is charged when the caller sends no positive amount.
	defaultAmount = 1

	requestTimeout = 30 * time.Second
)

// Client talks to the Daraja API: one token fetch plus one STK push per
// payment. Nothing is retried and no outcome is stored; the payment result
// lands on the configured callback URL, which this service does not consume.
type Client struct {
	cfg    config.MpesaConfig
	http   *http.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewClient(cfg config.MpesaConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: requestTimeout},
		logger: logger,
		now:    time.Now,
	}
}

// AccessToken fetches a bearer token using the app's consumer credentials.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.TokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, snippet(resp.Body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}
	return tr.AccessToken, nil
}

// InitiateSTKPush asks Daraja to show the payment prompt on the payer's
// phone. The push password is base64(shortcode + passkey + timestamp) with
// the same timestamp sent in the body.
func (c *Client) InitiateSTKPush(ctx context.Context, phone string, amount int64) (*STKPushResponse, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	if amount <= 0 {
		amount = defaultAmount
	}

	ts := c.now().Format(timestampLayout)
	password := base64.StdEncoding.EncodeToString([]byte(c.cfg.ShortCode + c.cfg.Passkey + ts))

	payload, err := json.Marshal(stkPushRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          password,
		Timestamp:         ts,
		TransactionType:   transactionType,
		Amount:            amount,
		PartyA:            phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  c.cfg.AccountRef,
		TransactionDesc:   c.cfg.TransactionDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal stk push: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.STKPushURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build stk push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stk push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stk push returned %d: %s", resp.StatusCode, snippet(resp.Body))
	}

	var out STKPushResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode stk push response: %w", err)
	}

	c.logger.Info("stk push sent",
		"phone", phone,
		"amount", amount,
		"merchant_request_id", out.MerchantRequestID,
		"checkout_request_id", out.CheckoutRequestID,
	)
	return &out, nil
}

// snippet reads a short prefix of an upstream error body for logging.
func snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(b)
}
