package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
)

func TestLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/buses/locations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.Location{
			{ID: 1, Name: "A", City: "Chennai", State: "Tamil Nadu"},
			{ID: 2, Name: "B", City: "Chennai", State: "Tamil Nadu"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	locations, err := client.Locations(context.Background())
	if err != nil {
		t.Fatalf("locations error: %v", err)
	}
	if len(locations) != 2 || locations[1].Name != "B" {
		t.Fatalf("unexpected locations %+v", locations)
	}
}

func TestLocationsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	if _, err := client.Locations(context.Background()); !domain.IsNetwork(err) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestSearchQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("fromLocationId") != "1" || q.Get("toLocationId") != "2" || q.Get("travelDate") != "2024-01-01" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]domain.TripOffer{{ID: 7}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	offers, err := client.Search(context.Background(), 1, 2, "2024-01-01")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != 7 {
		t.Fatalf("unexpected offers %+v", offers)
	}
}

func TestCreateBookingCarriesServerReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "seat A3 is already booked"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	_, err := client.CreateBooking(context.Background(), domain.CreateBookingRequest{})
	if !domain.IsBookingFailed(err) {
		t.Fatalf("expected BookingFailedError, got %v", err)
	}
	if err.Error() != "seat A3 is already booked" {
		t.Errorf("reason not carried through: %q", err.Error())
	}
}

func TestCreateBookingDecodesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SeatNumber != "A3" {
			t.Errorf("seat number %q, want A3", req.SeatNumber)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.BookingRecord{
			BookingReference: "SF100",
			SeatNumber:       req.SeatNumber,
			PaymentStatus:    domain.PaymentPending,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	record, err := client.CreateBooking(context.Background(), domain.CreateBookingRequest{
		PassengerName: "Priya", PassengerPhone: "9876543210", ScheduleID: 1, SeatNumber: "A3",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if record.BookingReference != "SF100" || record.PaymentStatus != domain.PaymentPending {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestConfirmPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bookings/SF100/payment" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["transactionId"] == "" {
			t.Error("missing transactionId")
		}
		json.NewEncoder(w).Encode(domain.BookingRecord{
			BookingReference: "SF100",
			PaymentStatus:    domain.PaymentPaid,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	record, err := client.ConfirmPayment(context.Background(), "SF100", "TXN1")
	if err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	if record.PaymentStatus != domain.PaymentPaid {
		t.Errorf("status %s, want PAID", record.PaymentStatus)
	}
}

func TestFetchQR(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings/SF100/qr" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"qrCode": "data:image/png;base64,AAAA"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/api")
	src, err := client.FetchQR(context.Background(), "SF100")
	if err != nil {
		t.Fatalf("fetch qr: %v", err)
	}
	if src != "data:image/png;base64,AAAA" {
		t.Errorf("unexpected qr source %q", src)
	}

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"qrCode": ""})
	}))
	defer empty.Close()

	client = NewClient(empty.URL + "/api")
	if _, err := client.FetchQR(context.Background(), "SF100"); !domain.IsNetwork(err) {
		t.Fatalf("empty qrCode should be a NetworkError, got %v", err)
	}
}
