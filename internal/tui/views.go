package tui

import (
	"fmt"
	"strings"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
	"github.com/abi124-max/SmartFare-managementAbi/internal/wizard"
	"github.com/charmbracelet/lipgloss"
)

const seatsPerRow = 4

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SMART FARE"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render("Bus Ticket Booking"))
	b.WriteString("  ")
	b.WriteString(progressStyle.Render(m.progressLine()))
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.spin.View())
		b.WriteString(" " + m.busyLabel + "\n")
		return b.String()
	}

	switch m.phase {
	case phaseSelectFrom:
		b.WriteString(m.fromList.View())
		b.WriteString("\n" + helpStyle.Render("enter select · q quit"))
	case phaseSelectTo:
		b.WriteString(m.toList.View())
		b.WriteString("\n" + helpStyle.Render("enter select · esc back · q quit"))
	case phaseDate:
		b.WriteString(m.dateView())
	case phaseBusList:
		b.WriteString(m.busView())
	case phasePassenger:
		b.WriteString(m.passengerView())
	case phasePayment:
		b.WriteString(m.paymentView())
	case phaseTicket:
		b.WriteString(m.ticketView())
	}

	if m.toast != "" {
		b.WriteString("\n\n")
		switch m.toastSev {
		case sevSuccess:
			b.WriteString(toastSuccessStyle.Render(m.toast))
		case sevWarning:
			b.WriteString(toastWarningStyle.Render(m.toast))
		default:
			b.WriteString(toastErrorStyle.Render(m.toast))
		}
	}

	return b.String()
}

func (m Model) progressLine() string {
	step := m.wiz.Session().Step
	return fmt.Sprintf("Step %d of %d", int(step), int(wizard.StepTicket))
}

func (m Model) locationName(id int64) string {
	for _, loc := range m.wiz.Session().Locations {
		if loc.ID == id {
			return loc.Name
		}
	}
	return "?"
}

func (m Model) dateView() string {
	var b strings.Builder
	b.WriteString(valueStyle.Render(m.locationName(m.form.FromLocationID)))
	b.WriteString(" → ")
	b.WriteString(valueStyle.Render(m.locationName(m.form.ToLocationID)))
	b.WriteString("\n\n")
	b.WriteString("Travel date: " + m.dateInput.View() + "\n")
	b.WriteString("\n" + helpStyle.Render("enter search · ctrl+s swap locations · esc back"))
	return b.String()
}

func (m Model) busView() string {
	chips := []struct{ key, name, label string }{
		{"1", "all", "All"},
		{"2", "ac", "AC"},
		{"3", "non-ac", "Non-AC"},
		{"4", "available", "Seats left"},
	}
	var row []string
	for _, chip := range chips {
		label := chip.key + ":" + chip.label
		if m.filter == chip.name {
			row = append(row, focusedStyle.Render("["+label+"]"))
		} else {
			row = append(row, helpStyle.Render(" "+label+" "))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(row, " "))
	b.WriteString("\n\n")
	b.WriteString(m.busList.View())
	b.WriteString("\n" + helpStyle.Render("enter select · 1-4 filter · esc back · q quit"))
	return b.String()
}

func (m Model) passengerView() string {
	session := m.wiz.Session()
	var b strings.Builder

	if trip := session.SelectedTrip; trip != nil {
		summary := fmt.Sprintf("%s · %s · %s  %s → %s",
			trip.Bus.BusNumber,
			trip.Bus.OperatorName,
			fareStyle.Render(utils.FormatRupee(trip.Fare)),
			utils.FormatClock(trip.DepartureTime),
			utils.FormatClock(trip.ArrivalTime))
		b.WriteString(panelStyle.Render(summary))
		b.WriteString("\n\n")
	}

	b.WriteString(m.seatGridView())
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Name") + m.nameInput.View() + "\n")
	b.WriteString(labelStyle.Render("Phone") + m.phoneInput.View() + "\n")

	b.WriteString("\n" + helpStyle.Render("tab cycle seat/fields · enter pick seat / continue · esc back"))
	return b.String()
}

func (m Model) seatGridView() string {
	session := m.wiz.Session()
	var b strings.Builder

	legend := seatAvailableStyle.Render("□ available") + "  " +
		seatOccupiedStyle.Render("■ booked") + "  " +
		seatSelectedStyle.Render(" ■ yours ")
	b.WriteString(legend + "\n\n")

	for i, entry := range session.SeatMap {
		label := fmt.Sprintf("%3d", entry.SeatIndex)
		var cell string
		switch {
		case entry.SeatIndex == session.SelectedSeat:
			cell = seatSelectedStyle.Render(label)
		case entry.Occupied:
			cell = seatOccupiedStyle.Render(label)
		default:
			cell = seatAvailableStyle.Render(label)
		}
		if m.focus == 0 && entry.SeatIndex == m.seatCursor {
			cell = seatCursorStyle.Render(cell)
		}
		b.WriteString(cell)
		if (i+1)%seatsPerRow == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString("  ")
			// Aisle gap between the 2nd and 3rd seat of a row.
			if (i+1)%seatsPerRow == 2 {
				b.WriteString("  ")
			}
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) paymentView() string {
	session := m.wiz.Session()
	var b strings.Builder

	if trip := session.SelectedTrip; trip != nil {
		rows := []string{
			labelStyle.Render("Passenger") + valueStyle.Render(session.Passenger.Name),
			labelStyle.Render("Phone") + valueStyle.Render(session.Passenger.Phone),
			labelStyle.Render("Bus") + valueStyle.Render(trip.Bus.BusNumber),
			labelStyle.Render("Route") + valueStyle.Render(trip.Route.FromLocation.Name+" → "+trip.Route.ToLocation.Name),
			labelStyle.Render("Seat") + valueStyle.Render(session.SeatNumber()),
			labelStyle.Render("Total") + fareStyle.Render(utils.FormatRupee(trip.Fare)),
		}
		b.WriteString(panelStyle.Render(strings.Join(rows, "\n")))
		b.WriteString("\n\n")
	}

	b.WriteString("UPI ID: " + m.upiInput.View() + "\n")
	b.WriteString("\n" + helpStyle.Render("enter pay · esc back"))
	return b.String()
}

func (m Model) ticketView() string {
	session := m.wiz.Session()
	booking := session.Booking
	trip := session.SelectedTrip
	if booking == nil || trip == nil {
		return helpStyle.Render("No ticket data available")
	}

	status := booking.PaymentStatus
	statusStyle := fareStyle
	if status != domain.PaymentPaid {
		statusStyle = toastWarningStyle
	}

	rows := []string{
		lipgloss.NewStyle().Bold(true).Render("BUS E-TICKET"),
		"",
		labelStyle.Render("Booking") + valueStyle.Render(booking.BookingReference),
		labelStyle.Render("Passenger") + valueStyle.Render(booking.Passenger.Name),
		labelStyle.Render("Phone") + valueStyle.Render(booking.Passenger.Phone),
		labelStyle.Render("Route") + valueStyle.Render(trip.Route.FromLocation.Name+" → "+trip.Route.ToLocation.Name),
		labelStyle.Render("Bus") + valueStyle.Render(trip.Bus.OperatorName+" ("+trip.Bus.BusNumber+")"),
		labelStyle.Render("Seat") + valueStyle.Render(booking.SeatNumber),
		labelStyle.Render("Date") + valueStyle.Render(trip.ScheduleDate),
		labelStyle.Render("Time") + valueStyle.Render(utils.FormatClock(trip.DepartureTime)),
		labelStyle.Render("Fare") + fareStyle.Render(utils.FormatRupee(booking.FareAmount)),
		labelStyle.Render("Status") + statusStyle.Render(status),
	}

	var b strings.Builder
	b.WriteString(ticketStyle.Render(strings.Join(rows, "\n")))
	if m.ticketPath != "" {
		b.WriteString("\n" + helpStyle.Render("saved: "+m.ticketPath))
	}
	b.WriteString("\n\n" + helpStyle.Render("d download · s share · r new booking · q quit"))
	return b.String()
}
