package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Yquannn/sibbap-admin/internal/models"
	"github.com/Yquannn/sibbap-admin/pkg/logger"
)

const maxBodyBytes = 10 << 20

// Client talks to the cooperative core API that owns loan and deposit records
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. Every request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP uses a caller-provided http.Client
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// MemberLoans fetches GET /api/member-loan/{memberID}. The endpoint answers
// either a bundle or an array of bundles, in which case the first is used.
func (c *Client) MemberLoans(ctx context.Context, memberID string) (*models.LoanBundle, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, ErrMissingMemberID
	}

	body, err := c.get(ctx, "/api/member-loan/"+url.PathEscape(memberID))
	if err != nil {
		return nil, err
	}

	raw, err := firstElement(body)
	if err != nil {
		return nil, err
	}

	var bundle models.LoanBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("%w: member loan: %v", ErrMalformedPayload, err)
	}
	if bundle.IsEmpty() {
		return nil, ErrEmptyPayload
	}
	bundle.Normalize()
	return &bundle, nil
}

// ActiveDeposits fetches GET /api/active/
func (c *Client) ActiveDeposits(ctx context.Context) ([]models.DepositAccount, error) {
	body, err := c.get(ctx, "/api/active/")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var accounts []models.DepositAccount
	if err := json.Unmarshal(trimmed, &accounts); err != nil {
		return nil, fmt.Errorf("%w: active deposits: %v", ErrMalformedPayload, err)
	}
	if len(accounts) == 0 {
		return nil, ErrEmptyPayload
	}
	return accounts, nil
}

// Ping checks that the core API answers at all. Any response below 500 counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode >= http.StatusInternalServerError {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("upstream request failed", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkFailure, err)
	}

	logger.Debug("upstream request", "path", path, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// firstElement unwraps an array payload to its first element
func firstElement(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyPayload
	}
	if trimmed[0] != '[' {
		return trimmed, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyPayload
	}
	first := bytes.TrimSpace(items[0])
	if bytes.Equal(first, []byte("null")) {
		return nil, ErrEmptyPayload
	}
	return first, nil
}

// errorMessage pulls {"message": "..."} out of an error body
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
