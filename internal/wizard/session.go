package wizard

import (
	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/seatmap"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
)

// Step is one screen of the wizard. Steps are ordered and linear;
// backward navigation is always allowed, forward transitions are
// guarded.
type Step int

const (
	StepLocation Step = iota + 1
	StepBusSelection
	StepPassenger
	StepPayment
	StepTicket
)

func (s Step) String() string {
	switch s {
	case StepLocation:
		return "Location"
	case StepBusSelection:
		return "BusSelection"
	case StepPassenger:
		return "Passenger"
	case StepPayment:
		return "Payment"
	case StepTicket:
		return "Ticket"
	}
	return "Unknown"
}

// SearchForm holds the location step inputs. A zero location id means
// "not chosen".
type SearchForm struct {
	FromLocationID int64
	ToLocationID   int64
	TravelDate     string
}

// Session is the single mutable state of a wizard run. It lives for
// the process and is reset, never persisted. SelectedTrip and Booking
// are replaced wholesale on each transition, never partially mutated.
type Session struct {
	Step Step

	Locations []domain.Location

	Form    SearchForm
	Results []domain.TripOffer

	SelectedTrip *domain.TripOffer
	SeatMap      []seatmap.Entry

	// SelectedSeat is the 1-based seat index; 0 means none selected.
	SelectedSeat int

	Passenger domain.PassengerInput
	UPIID     string

	Booking          *domain.BookingRecord
	PaymentConfirmed bool
}

func newSession() Session {
	return Session{
		Step: StepLocation,
		Form: SearchForm{TravelDate: utils.Today()},
	}
}

// SeatNumber renders the selected seat the way the booking service
// expects it, e.g. seat 3 becomes "A3".
func (s *Session) SeatNumber() string {
	if s.SelectedSeat == 0 {
		return ""
	}
	return seatLabel(s.SelectedSeat)
}
