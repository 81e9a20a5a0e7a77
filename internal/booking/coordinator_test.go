package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
)

type fakeAPI struct {
	createErr  error
	confirmErr error

	created   int
	confirmed int
	lastRef   string
	lastTxn   string
}

func (f *fakeAPI) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (domain.BookingRecord, error) {
	f.created++
	if f.createErr != nil {
		return domain.BookingRecord{}, f.createErr
	}
	return domain.BookingRecord{
		BookingReference: "SF100",
		SeatNumber:       req.SeatNumber,
		PaymentStatus:    domain.PaymentPending,
	}, nil
}

func (f *fakeAPI) ConfirmPayment(ctx context.Context, ref, txn string) (domain.BookingRecord, error) {
	f.confirmed++
	f.lastRef = ref
	f.lastTxn = txn
	if f.confirmErr != nil {
		return domain.BookingRecord{}, f.confirmErr
	}
	return domain.BookingRecord{BookingReference: ref, PaymentStatus: domain.PaymentPaid}, nil
}

func noSleep(time.Duration) {}

func TestRunHappyPath(t *testing.T) {
	api := &fakeAPI{}
	coord := Coordinator{API: api, Sleep: noSleep, NewTransactionID: func() string { return "TXN-test" }}

	out, err := coord.Run(context.Background(), domain.CreateBookingRequest{ScheduleID: 1, SeatNumber: "A3"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.PaymentConfirmed {
		t.Error("payment should be confirmed")
	}
	if out.Booking.PaymentStatus != domain.PaymentPaid {
		t.Errorf("status %s, want PAID", out.Booking.PaymentStatus)
	}
	if api.lastRef != "SF100" || api.lastTxn != "TXN-test" {
		t.Errorf("confirm called with ref=%s txn=%s", api.lastRef, api.lastTxn)
	}
}

func TestRunCreateFailureNeverConfirms(t *testing.T) {
	api := &fakeAPI{createErr: domain.BookingFailedError{Reason: "seat A3 is already booked"}}
	coord := Coordinator{API: api, Sleep: noSleep}

	_, err := coord.Run(context.Background(), domain.CreateBookingRequest{SeatNumber: "A3"})
	if !domain.IsBookingFailed(err) {
		t.Fatalf("expected BookingFailedError, got %v", err)
	}
	if api.confirmed != 0 {
		t.Errorf("confirm ran %d times after create failure", api.confirmed)
	}
}

func TestRunConfirmFailureIsSoft(t *testing.T) {
	api := &fakeAPI{confirmErr: errors.New("gateway timeout")}
	coord := Coordinator{API: api, Sleep: noSleep}

	out, err := coord.Run(context.Background(), domain.CreateBookingRequest{SeatNumber: "A1"})
	if err != nil {
		t.Fatalf("confirm failure must not fail the run: %v", err)
	}
	if out.PaymentConfirmed {
		t.Error("payment should not be confirmed")
	}
	if out.Booking.PaymentStatus != domain.PaymentPending {
		t.Errorf("booking should stay PENDING, got %s", out.Booking.PaymentStatus)
	}
	if out.Booking.BookingReference != "SF100" {
		t.Errorf("created booking lost: %+v", out.Booking)
	}
}

func TestRunSleepsSettlementDelay(t *testing.T) {
	var slept time.Duration
	coord := Coordinator{
		API:   &fakeAPI{},
		Sleep: func(d time.Duration) { slept = d },
	}
	if _, err := coord.Run(context.Background(), domain.CreateBookingRequest{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if slept != 2*time.Second {
		t.Errorf("default settlement delay %v, want 2s", slept)
	}

	coord.SettlementDelay = 50 * time.Millisecond
	coord.Run(context.Background(), domain.CreateBookingRequest{})
	if slept != 50*time.Millisecond {
		t.Errorf("settlement delay %v, want 50ms", slept)
	}
}

func TestDefaultTransactionIDs(t *testing.T) {
	coord := Coordinator{}
	a := coord.transactionID()
	b := coord.transactionID()
	if !strings.HasPrefix(a, "TXN") {
		t.Errorf("transaction id %q missing TXN prefix", a)
	}
	if a == b {
		t.Errorf("consecutive transaction ids collided: %q", a)
	}
}
