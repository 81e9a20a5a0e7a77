// Package api is a thin client over the external SmartFare booking
// service. It performs no retries; callers decide how each failure is
// surfaced.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client for the given base path, e.g.
// http://localhost:8081/api. No client-side timeout is set; callers
// bound requests through the context when needed.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// Locations fetches the location reference list. Callers degrade to a
// fallback list on error rather than blocking the app.
func (c *Client) Locations(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	if err := c.getJSON(ctx, "/buses/locations", &out); err != nil {
		return nil, domain.NetworkError{Op: "load locations", Err: err}
	}
	return out, nil
}

// Search returns the trip offers for a route and travel date.
func (c *Client) Search(ctx context.Context, fromLocationID, toLocationID int64, travelDate string) ([]domain.TripOffer, error) {
	q := url.Values{}
	q.Set("fromLocationId", strconv.FormatInt(fromLocationID, 10))
	q.Set("toLocationId", strconv.FormatInt(toLocationID, 10))
	q.Set("travelDate", travelDate)

	var out []domain.TripOffer
	if err := c.getJSON(ctx, "/buses/search?"+q.Encode(), &out); err != nil {
		return nil, domain.NetworkError{Op: "search buses", Err: err}
	}
	return out, nil
}

// CreateBooking posts the booking payload. A non-success status is
// reported as BookingFailedError carrying the server-provided reason
// when the body has one.
func (c *Client) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (domain.BookingRecord, error) {
	var record domain.BookingRecord

	body, err := json.Marshal(req)
	if err != nil {
		return record, domain.BookingFailedError{Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, "/bookings/create", body)
	if err != nil {
		return record, domain.BookingFailedError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return record, domain.BookingFailedError{
			Reason: strings.TrimSpace(apiErr.Error),
			Err:    fmt.Errorf("create booking: status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return record, domain.BookingFailedError{Err: fmt.Errorf("decode booking: %w", err)}
	}
	return record, nil
}

// ConfirmPayment sends the client transaction id for a booking and
// returns the refreshed record. The evolved flow's contract is
// authoritative here: POST /bookings/{ref}/payment.
func (c *Client) ConfirmPayment(ctx context.Context, bookingReference, transactionID string) (domain.BookingRecord, error) {
	var record domain.BookingRecord

	body, err := json.Marshal(map[string]string{"transactionId": transactionID})
	if err != nil {
		return record, domain.NetworkError{Op: "confirm payment", Err: err}
	}

	path := "/bookings/" + url.PathEscape(bookingReference) + "/payment"
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return record, domain.NetworkError{Op: "confirm payment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return record, domain.NetworkError{
			Op:  "confirm payment",
			Err: fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return record, domain.NetworkError{Op: "confirm payment", Err: err}
	}
	return record, nil
}

// FetchQR returns the QR image reference (data URI or URL) for a
// booking.
func (c *Client) FetchQR(ctx context.Context, bookingReference string) (string, error) {
	var out struct {
		QRCode string `json:"qrCode"`
	}
	path := "/bookings/" + url.PathEscape(bookingReference) + "/qr"
	if err := c.getJSON(ctx, path, &out); err != nil {
		return "", domain.NetworkError{Op: "fetch qr", Err: err}
	}
	if strings.TrimSpace(out.QRCode) == "" {
		return "", domain.NetworkError{Op: "fetch qr", Err: fmt.Errorf("empty qrCode field")}
	}
	return out.QRCode, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient().Do(req)
}
