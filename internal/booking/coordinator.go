// Package booking sequences the payment handshake against the booking
// service: create booking, settlement delay, confirm payment. The
// sequence runs once per user-initiated payment attempt; nothing here
// retries.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
	"github.com/google/uuid"
)

// API is the slice of the gateway client the coordinator needs.
type API interface {
	CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (domain.BookingRecord, error)
	ConfirmPayment(ctx context.Context, bookingReference, transactionID string) (domain.BookingRecord, error)
}

// Result carries the booking as the wizard should hold it after the
// sequence. PaymentConfirmed false means step 3 failed and the record
// is still PENDING client-side; the wizard advances regardless.
type Result struct {
	Booking          domain.BookingRecord
	TransactionID    string
	PaymentConfirmed bool
}

type Coordinator struct {
	API API

	// SettlementDelay is the fixed wait between booking creation and
	// payment confirmation. Zero means the 2s default.
	SettlementDelay time.Duration

	// Sleep is injectable so tests skip the delay.
	Sleep func(time.Duration)

	// NewTransactionID is injectable so tests pin ids.
	NewTransactionID func() string
}

// Run executes the three steps strictly in order. A create failure
// aborts before the delay; the confirmation call is never reached.
func (c Coordinator) Run(ctx context.Context, req domain.CreateBookingRequest) (Result, error) {
	var out Result

	record, err := c.API.CreateBooking(ctx, req)
	if err != nil {
		utils.LogEvent("booking", "create", fmt.Sprintf("schedule_id=%d err=%v", req.ScheduleID, err))
		return out, err
	}
	utils.LogEvent("booking", "create", "ref="+record.BookingReference)
	out.Booking = record

	// UX affordance from the reference flow, not a correctness
	// requirement. Not cancellable.
	c.sleep(c.settlementDelay())

	out.TransactionID = c.transactionID()
	confirmed, err := c.API.ConfirmPayment(ctx, record.BookingReference, out.TransactionID)
	if err != nil {
		// Soft failure: booking stays PENDING but remains valid.
		utils.LogEvent("booking", "confirm_payment", fmt.Sprintf("ref=%s err=%v", record.BookingReference, err))
		return out, nil
	}

	out.Booking = confirmed
	out.PaymentConfirmed = true
	utils.LogEvent("booking", "confirm_payment", fmt.Sprintf("ref=%s status=%s", confirmed.BookingReference, confirmed.PaymentStatus))
	return out, nil
}

func (c Coordinator) settlementDelay() time.Duration {
	if c.SettlementDelay > 0 {
		return c.SettlementDelay
	}
	return 2 * time.Second
}

func (c Coordinator) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (c Coordinator) transactionID() string {
	if c.NewTransactionID != nil {
		return c.NewTransactionID()
	}
	// Timestamp-derived like the reference flow, with a uuid suffix so
	// two attempts in the same millisecond stay distinct.
	return fmt.Sprintf("TXN%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
