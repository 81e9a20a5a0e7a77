package stub

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abi124-max/SmartFare-managementAbi/internal/api"
	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(NewRouter(NewStore()))
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL + "/api")
}

func TestSearchSynthesizesStableSchedules(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	locations, err := client.Locations(ctx)
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	if len(locations) != 4 {
		t.Fatalf("seeded locations %d, want 4", len(locations))
	}

	first, err := client.Search(ctx, 1, 2, "2024-06-15")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("offers %d, want one per seeded bus", len(first))
	}
	if first[0].Bus.BusNumber != "TN09N2345" || first[0].Fare != 45 {
		t.Errorf("unexpected first offer %+v", first[0])
	}
	if first[0].ArrivalTime != "06:45" {
		t.Errorf("arrival %s, want departure plus route duration", first[0].ArrivalTime)
	}

	// The same query must serve the same schedule ids.
	second, err := client.Search(ctx, 1, 2, "2024-06-15")
	if err != nil {
		t.Fatalf("repeat search: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("schedule ids unstable: %d vs %d", first[i].ID, second[i].ID)
		}
	}

	// A different date is a different set.
	other, err := client.Search(ctx, 1, 2, "2024-06-16")
	if err != nil {
		t.Fatalf("other date: %v", err)
	}
	if other[0].ID == first[0].ID {
		t.Error("schedule ids shared across dates")
	}
}

func TestSearchUnknownLocation(t *testing.T) {
	_, client := newTestServer(t)
	if _, err := client.Search(context.Background(), 1, 99, "2024-06-15"); err == nil {
		t.Fatal("unknown location should fail")
	}
}

func TestBookingLifecycle(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	offers, err := client.Search(ctx, 1, 3, "2024-06-15")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	schedule := offers[0]

	record, err := client.CreateBooking(ctx, domain.CreateBookingRequest{
		PassengerName:  "Priya Raman",
		PassengerPhone: "9876543210",
		ScheduleID:     schedule.ID,
		SeatNumber:     "A3",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if !strings.HasPrefix(record.BookingReference, "SF") {
		t.Errorf("booking reference %q missing SF prefix", record.BookingReference)
	}
	if record.PaymentStatus != domain.PaymentPending {
		t.Errorf("status %s, want PENDING", record.PaymentStatus)
	}
	if record.FareAmount != schedule.Fare {
		t.Errorf("fare %v, want schedule fare %v", record.FareAmount, schedule.Fare)
	}

	// The seat is held; a second attempt conflicts.
	_, err = client.CreateBooking(ctx, domain.CreateBookingRequest{
		PassengerName:  "Another",
		PassengerPhone: "9876543211",
		ScheduleID:     schedule.ID,
		SeatNumber:     "A3",
	})
	if !domain.IsBookingFailed(err) {
		t.Fatalf("duplicate seat should fail, got %v", err)
	}
	if !strings.Contains(err.Error(), "already booked") {
		t.Errorf("conflict reason not carried: %v", err)
	}

	// Availability decremented by the successful booking only.
	after, _ := client.Search(ctx, 1, 3, "2024-06-15")
	if after[0].AvailableSeats != schedule.AvailableSeats-1 {
		t.Errorf("available %d, want %d", after[0].AvailableSeats, schedule.AvailableSeats-1)
	}

	paid, err := client.ConfirmPayment(ctx, record.BookingReference, "TXN-test")
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if paid.PaymentStatus != domain.PaymentPaid {
		t.Errorf("status %s, want PAID", paid.PaymentStatus)
	}

	// Idempotent confirmation.
	if _, err := client.ConfirmPayment(ctx, record.BookingReference, "TXN-test"); err != nil {
		t.Errorf("second confirmation: %v", err)
	}

	src, err := client.FetchQR(ctx, record.BookingReference)
	if err != nil {
		t.Fatalf("fetch qr: %v", err)
	}
	if !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("qr source %q is not a png data uri", src[:min(32, len(src))])
	}
}

func TestConfirmPaymentUnknownBooking(t *testing.T) {
	_, client := newTestServer(t)
	if _, err := client.ConfirmPayment(context.Background(), "SF-nope", "TXN"); err == nil {
		t.Fatal("unknown booking should fail")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	store := NewStore()
	offers, err := store.Search(1, 2, "2024-06-15")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		req  domain.CreateBookingRequest
	}{
		{"missing passenger", domain.CreateBookingRequest{PassengerPhone: "9876543210", ScheduleID: offers[0].ID, SeatNumber: "A1"}},
		{"missing phone", domain.CreateBookingRequest{PassengerName: "Priya", ScheduleID: offers[0].ID, SeatNumber: "A1"}},
		{"missing seat", domain.CreateBookingRequest{PassengerName: "Priya", PassengerPhone: "9876543210", ScheduleID: offers[0].ID}},
		{"unknown schedule", domain.CreateBookingRequest{PassengerName: "Priya", PassengerPhone: "9876543210", ScheduleID: 999, SeatNumber: "A1"}},
	}
	for _, tc := range cases {
		if _, err := store.CreateBooking(tc.req); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestPlaceholderQRIsDeterministic(t *testing.T) {
	a := placeholderQRDataURI("SF100")
	b := placeholderQRDataURI("SF100")
	c := placeholderQRDataURI("SF200")
	if a != b {
		t.Error("same seed produced different images")
	}
	if a == c {
		t.Error("different seeds produced the same image")
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
