// Package client is a programmatic front end for the slotbooker API: a
// typed HTTP client plus a Poller that keeps a merged slot-availability
// view in sync the way the browser client does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"slotbooker/models"
)

// API failure modes surfaced to callers.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("slot already booked")
	ErrNotFound     = errors.New("booking not found")
)

// Client talks to a slotbooker server.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	authToken string
}

// New constructs a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetAuthToken installs the session token used on authenticated calls.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()
}

// AuthToken returns the current session token.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken
}

// SendOTP requests a one-time code for the email.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodPost, "/api/send-otp", models.SendOTPRequest{Email: email}, &resp)
}

// VerifyOTP submits the code. On success the returned session token is
// also installed on the client.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*models.VerifyOTPResponse, error) {
	var resp models.VerifyOTPResponse
	err := c.do(ctx, http.MethodPost, "/api/verify-otp", models.VerifyOTPRequest{Email: email, OTP: otp}, &resp)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return nil, err
	}
	if resp.Verified {
		c.SetAuthToken(resp.AuthToken)
	}
	return &resp, nil
}

// Bookings fetches the caller's bookings grouped by date. The token rides
// in the body, matching the original browser client's contract.
func (c *Client) Bookings(ctx context.Context) (models.BookingsByDate, error) {
	var resp models.BookingsByDate
	body := models.ListBookingsRequest{AuthToken: c.AuthToken()}
	if err := c.do(ctx, http.MethodPost, "/api/bookings", body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AllBookings fetches every booked slot grouped by date.
func (c *Client) AllBookings(ctx context.Context) (models.BookingsByDate, error) {
	var resp models.BookingsByDate
	if err := c.do(ctx, http.MethodGet, "/api/allbookings", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Book books the slot at date+time.
func (c *Client) Book(ctx context.Context, date, slotTime string) error {
	req := models.BookRequest{
		Date:        date,
		UpdatedSlot: models.TimeSlot{Time: slotTime, IsBooked: true},
		AuthToken:   c.AuthToken(),
	}
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodPost, "/api/book", req, &resp)
}

// Cancel cancels the booking at date+time.
func (c *Client) Cancel(ctx context.Context, date, slotTime string) error {
	path := fmt.Sprintf("/api/cancel/%s/%s", url.PathEscape(date), url.PathEscape(slotTime))
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodPut, path, nil, &resp)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("client: %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}
