// Package wizard owns the booking flow's step progression. All session
// mutation funnels through the Wizard's transition methods; a failed
// guard leaves the session untouched and reports a ValidationError for
// the UI to show as a warning.
package wizard

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"

	"github.com/abi124-max/SmartFare-managementAbi/internal/booking"
	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/seatmap"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
	"github.com/go-playground/validator/v10"
)

// Gateway is the slice of the API client the wizard calls directly.
type Gateway interface {
	Locations(ctx context.Context) ([]domain.Location, error)
	Search(ctx context.Context, fromLocationID, toLocationID int64, travelDate string) ([]domain.TripOffer, error)
}

// Transactor runs the booking/payment sequence for the Payment step.
type Transactor interface {
	Run(ctx context.Context, req domain.CreateBookingRequest) (booking.Result, error)
}

type Wizard struct {
	Gateway    Gateway
	Transactor Transactor

	// Rand seeds seat-map derivation; nil uses the shared source.
	Rand *rand.Rand

	validate *validator.Validate
	session  Session

	// busy guards the suspension-point transitions (search, payment)
	// against rapid double submission.
	busy atomic.Bool
}

func New(gateway Gateway, transactor Transactor) *Wizard {
	return &Wizard{
		Gateway:    gateway,
		Transactor: transactor,
		validate:   domain.NewValidator(),
		session:    newSession(),
	}
}

// Session exposes the current state for rendering. Callers must not
// mutate it; transitions go through the methods below.
func (w *Wizard) Session() *Session {
	return &w.session
}

// Busy reports whether a suspension-point transition is in flight.
func (w *Wizard) Busy() bool {
	return w.busy.Load()
}

// LoadLocations fills the reference list, degrading to the hardcoded
// fallback rather than blocking the app. The returned flag tells the
// UI whether the fallback was used.
func (w *Wizard) LoadLocations(ctx context.Context) bool {
	locations, err := w.Gateway.Locations(ctx)
	if err != nil || len(locations) == 0 {
		utils.LogEvent("wizard", "load_locations", fmt.Sprintf("fallback err=%v", err))
		w.session.Locations = domain.FallbackLocations()
		return true
	}
	w.session.Locations = locations
	return false
}

// SubmitSearch guards the Location step inputs, runs the trip search
// and advances to BusSelection. The result set is replaced wholesale;
// re-running the same search is safe.
func (w *Wizard) SubmitSearch(ctx context.Context, form SearchForm) error {
	if !w.busy.CompareAndSwap(false, true) {
		return domain.ValidationError{Msg: "another request is still in progress"}
	}
	defer w.busy.Store(false)

	if form.FromLocationID == 0 || form.ToLocationID == 0 || utils.TrimOrEmpty(form.TravelDate) == "" {
		return domain.ValidationError{Msg: "please fill in all fields"}
	}
	if form.FromLocationID == form.ToLocationID {
		return domain.ValidationError{Msg: "from and to locations cannot be the same"}
	}

	results, err := w.Gateway.Search(ctx, form.FromLocationID, form.ToLocationID, form.TravelDate)
	if err != nil {
		return err
	}

	w.session.Form = form
	w.session.Results = results
	w.session.Step = StepBusSelection
	utils.LogEvent("wizard", "search", fmt.Sprintf("from=%d to=%d date=%s results=%d",
		form.FromLocationID, form.ToLocationID, form.TravelDate, len(results)))
	return nil
}

// SelectTrip picks an offer from the current result set, derives its
// seat map and advances to the Passenger step. Re-selecting the same
// trip re-derives the map; any previous seat pick is discarded with it.
func (w *Wizard) SelectTrip(offerID int64) error {
	offer := w.findOffer(offerID)
	if offer == nil {
		return domain.ValidationError{Field: "bus", Msg: "please select a bus from the results"}
	}

	selected := *offer
	w.session.SelectedTrip = &selected
	w.session.SeatMap = seatmap.Derive(selected.Bus.TotalSeats, selected.AvailableSeats, w.Rand)
	w.session.SelectedSeat = 0
	w.session.Step = StepPassenger
	utils.LogEvent("wizard", "select_trip", fmt.Sprintf("schedule_id=%d bus=%s", selected.ID, selected.Bus.BusNumber))
	return nil
}

// SelectSeat picks a seat in the derived map. An occupied seat leaves
// the previous selection in place; an available one replaces it.
func (w *Wizard) SelectSeat(seatIndex int) error {
	entry, err := seatmap.Select(w.session.SeatMap, seatIndex)
	if err != nil {
		return err
	}
	w.session.SelectedSeat = entry.SeatIndex
	return nil
}

// SubmitPassenger guards the passenger inputs plus the seat pick and
// advances to Payment. Form values are retained either way.
func (w *Wizard) SubmitPassenger(input domain.PassengerInput) error {
	input.Name = utils.NormalizeSpace(input.Name)
	input.Phone = utils.TrimOrEmpty(input.Phone)

	if w.session.SelectedSeat == 0 {
		return domain.ValidationError{Field: "seat", Msg: "please select a seat"}
	}
	if err := w.validate.Struct(input); err != nil {
		if input.Name == "" {
			return domain.ValidationError{Field: "name", Msg: "please enter the passenger name", Err: err}
		}
		return domain.ValidationError{Field: "phone", Msg: "please enter a valid phone number", Err: err}
	}

	w.session.Passenger = input
	w.session.Step = StepPayment
	return nil
}

// SubmitPayment guards the UPI identifier, runs the booking sequence
// once and advances to Ticket on success. A create failure keeps the
// wizard at Payment; a payment-confirmation failure still advances
// with the booking left PENDING.
func (w *Wizard) SubmitPayment(ctx context.Context, upiID string) error {
	if !w.busy.CompareAndSwap(false, true) {
		return domain.ValidationError{Msg: "payment is already being processed"}
	}
	defer w.busy.Store(false)

	upiID = utils.TrimOrEmpty(upiID)
	if upiID == "" {
		return domain.ValidationError{Field: "upi", Msg: "please enter your UPI ID"}
	}
	if !domain.ValidUPI(upiID) {
		return domain.ValidationError{Field: "upi", Msg: "please enter a valid UPI ID"}
	}
	if w.session.SelectedTrip == nil || w.session.SelectedSeat == 0 {
		return domain.ValidationError{Msg: "booking details are incomplete"}
	}

	result, err := w.Transactor.Run(ctx, domain.CreateBookingRequest{
		PassengerName:  w.session.Passenger.Name,
		PassengerPhone: w.session.Passenger.Phone,
		ScheduleID:     w.session.SelectedTrip.ID,
		SeatNumber:     w.session.SeatNumber(),
	})
	if err != nil {
		return err
	}

	record := result.Booking
	w.session.UPIID = upiID
	w.session.Booking = &record
	w.session.PaymentConfirmed = result.PaymentConfirmed
	w.session.Step = StepTicket
	return nil
}

// Back jumps to an earlier step unconditionally. Forms, selections and
// any booking stay in place until overwritten.
func (w *Wizard) Back(step Step) error {
	if step >= w.session.Step {
		return domain.ValidationError{Msg: "can only navigate to an earlier step"}
	}
	w.session.Step = step
	return nil
}

// Reset starts the wizard over. The location reference list survives;
// it is fetched once per session.
func (w *Wizard) Reset() {
	locations := w.session.Locations
	w.session = newSession()
	w.session.Locations = locations
}

func (w *Wizard) findOffer(offerID int64) *domain.TripOffer {
	for i := range w.session.Results {
		if w.session.Results[i].ID == offerID {
			return &w.session.Results[i]
		}
	}
	return nil
}

func seatLabel(seatIndex int) string {
	return "A" + strconv.Itoa(seatIndex)
}
