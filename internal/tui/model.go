// Package tui drives the booking wizard in the terminal: one screen
// per wizard step, transient toast notices instead of blocking
// dialogs, and a spinner over every suspension point.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/ticket"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
	"github.com/abi124-max/SmartFare-managementAbi/internal/wizard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// phase is the TUI-level sub-state. The Location wizard step spans
// three screens (from, to, date); every other step maps to one.
type phase int

const (
	phaseLoading phase = iota
	phaseSelectFrom
	phaseSelectTo
	phaseDate
	phaseBusList
	phasePassenger
	phasePayment
	phaseTicket
)

type severity int

const (
	sevSuccess severity = iota
	sevWarning
	sevError
)

const toastLifetime = 4 * time.Second

type (
	locationsLoadedMsg struct{ fallback bool }
	searchDoneMsg      struct{ err error }
	paymentDoneMsg     struct{ err error }
	downloadDoneMsg    struct {
		path string
		err  error
	}
	shareDoneMsg struct {
		desc string
		err  error
	}
	toastClearMsg struct{ gen int }
)

type Model struct {
	wiz      *wizard.Wizard
	renderer *ticket.Renderer

	phase phase

	fromList list.Model
	toList   list.Model
	busList  list.Model

	dateInput  textinput.Model
	nameInput  textinput.Model
	phoneInput textinput.Model
	upiInput   textinput.Model

	spin      spinner.Model
	busy      bool
	busyLabel string

	form   wizard.SearchForm
	filter string

	// Passenger screen focus: 0 seat grid, 1 name, 2 phone.
	focus      int
	seatCursor int

	toast      string
	toastSev   severity
	toastGen   int
	ticketPath string

	width  int
	height int
}

func New(wiz *wizard.Wizard, renderer *ticket.Renderer) Model {
	newList := func(title string) list.Model {
		l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
		l.Title = title
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		return l
	}

	dateInput := textinput.New()
	dateInput.Placeholder = "YYYY-MM-DD"
	dateInput.CharLimit = 10
	dateInput.SetValue(utils.Today())

	nameInput := textinput.New()
	nameInput.Placeholder = "Passenger name"
	nameInput.CharLimit = 64

	phoneInput := textinput.New()
	phoneInput.Placeholder = "Phone number"
	phoneInput.CharLimit = 20

	upiInput := textinput.New()
	upiInput.Placeholder = "yourname@bank"
	upiInput.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		wiz:        wiz,
		renderer:   renderer,
		phase:      phaseLoading,
		fromList:   newList("Choose departure point"),
		toList:     newList("Choose destination"),
		busList:    newList("Available buses"),
		dateInput:  dateInput,
		nameInput:  nameInput,
		phoneInput: phoneInput,
		upiInput:   upiInput,
		spin:       spin,
		filter:     "all",
		busyLabel:  "Loading locations...",
		busy:       true,
		seatCursor: 1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadLocationsCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listHeight := msg.Height - 8
		if listHeight < 5 {
			listHeight = 5
		}
		m.fromList.SetSize(msg.Width-4, listHeight)
		m.toList.SetSize(msg.Width-4, listHeight)
		m.busList.SetSize(msg.Width-4, listHeight)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case toastClearMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
		}
		return m, nil

	case locationsLoadedMsg:
		m.busy = false
		m.populateLocationLists()
		m.phase = phaseSelectFrom
		if msg.fallback {
			return m.showToast("Could not reach the booking service; using offline locations", sevWarning)
		}
		return m.showToast("Locations loaded successfully", sevSuccess)

	case searchDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.showToast(noticeFor(msg.err, "Failed to search buses. Please try again."), severityFor(msg.err))
		}
		count := len(m.wiz.Session().Results)
		m.filter = "all"
		m.populateBusList()
		m.phase = phaseBusList
		if count == 0 {
			return m.showToast("No buses found for the selected route and date", sevWarning)
		}
		return m.showToast("Found buses for your route!", sevSuccess)

	case paymentDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.showToast(noticeFor(msg.err, "Payment failed. Please try again."), severityFor(msg.err))
		}
		m.phase = phaseTicket
		if !m.wiz.Session().PaymentConfirmed {
			return m.showToast("Booking confirmed; payment is still pending", sevWarning)
		}
		return m.showToast("Payment successful! Your ticket is ready.", sevSuccess)

	case downloadDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.showToast(noticeFor(msg.err, "Failed to download ticket. Please try again."), sevError)
		}
		m.ticketPath = msg.path
		return m.showToast("Ticket saved to "+msg.path, sevSuccess)

	case shareDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.showToast(noticeFor(msg.err, "Failed to share ticket."), sevError)
		}
		return m.showToast(strings.ToUpper(msg.desc[:1])+msg.desc[1:], sevSuccess)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch m.phase {
	case phaseSelectFrom:
		return m.keySelectFrom(msg)
	case phaseSelectTo:
		return m.keySelectTo(msg)
	case phaseDate:
		return m.keyDate(msg)
	case phaseBusList:
		return m.keyBusList(msg)
	case phasePassenger:
		return m.keyPassenger(msg)
	case phasePayment:
		return m.keyPayment(msg)
	case phaseTicket:
		return m.keyTicket(msg)
	}
	return m, nil
}

func (m Model) keySelectFrom(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if item, ok := m.fromList.SelectedItem().(locationItem); ok {
			m.form.FromLocationID = item.loc.ID
			m.populateToList()
			m.phase = phaseSelectTo
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.fromList, cmd = m.fromList.Update(msg)
	return m, cmd
}

func (m Model) keySelectTo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.phase = phaseSelectFrom
		return m, nil
	case "enter":
		if item, ok := m.toList.SelectedItem().(locationItem); ok {
			m.form.ToLocationID = item.loc.ID
			m.phase = phaseDate
			m.dateInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.toList, cmd = m.toList.Update(msg)
	return m, cmd
}

func (m Model) keyDate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dateInput.Blur()
		m.phase = phaseSelectTo
		return m, nil
	case "ctrl+s":
		m.form.FromLocationID, m.form.ToLocationID = m.form.ToLocationID, m.form.FromLocationID
		return m.showToast("Locations swapped", sevSuccess)
	case "enter":
		date := utils.TrimOrEmpty(m.dateInput.Value())
		if _, err := utils.ParseDate(date); err != nil {
			return m.showToast("Please enter a valid date (YYYY-MM-DD)", sevWarning)
		}
		m.form.TravelDate = date
		m.busy = true
		m.busyLabel = "Searching buses..."
		return m, tea.Batch(m.spin.Tick, m.searchCmd(m.form))
	}
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m Model) keyBusList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		_ = m.wiz.Back(wizard.StepLocation)
		m.phase = phaseDate
		m.dateInput.Focus()
		return m, textinput.Blink
	case "1", "2", "3", "4":
		m.filter = map[string]string{"1": "all", "2": "ac", "3": "non-ac", "4": "available"}[msg.String()]
		m.populateBusList()
		return m, nil
	case "enter":
		item, ok := m.busList.SelectedItem().(tripItem)
		if !ok {
			return m, nil
		}
		if err := m.wiz.SelectTrip(item.offer.ID); err != nil {
			return m.showToast(noticeFor(err, "Please select a bus"), severityFor(err))
		}
		m.seatCursor = 1
		m.focus = 0
		m.nameInput.Blur()
		m.phoneInput.Blur()
		m.phase = phasePassenger
		return m.showToast("Bus selected successfully", sevSuccess)
	}
	var cmd tea.Cmd
	m.busList, cmd = m.busList.Update(msg)
	return m, cmd
}

func (m Model) keyPassenger(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.wiz.Session()

	if msg.String() == "esc" {
		_ = m.wiz.Back(wizard.StepBusSelection)
		m.nameInput.Blur()
		m.phoneInput.Blur()
		m.phase = phaseBusList
		return m, nil
	}

	if msg.String() == "tab" || msg.String() == "shift+tab" {
		delta := 1
		if msg.String() == "shift+tab" {
			delta = 2 // modulo 3 this is -1
		}
		m.focus = (m.focus + delta) % 3
		m.nameInput.Blur()
		m.phoneInput.Blur()
		switch m.focus {
		case 1:
			m.nameInput.Focus()
			return m, textinput.Blink
		case 2:
			m.phoneInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	if m.focus == 0 {
		total := 0
		if session.SelectedTrip != nil {
			total = session.SelectedTrip.Bus.TotalSeats
		}
		switch msg.String() {
		case "left", "h":
			if m.seatCursor > 1 {
				m.seatCursor--
			}
		case "right", "l":
			if m.seatCursor < total {
				m.seatCursor++
			}
		case "up", "k":
			if m.seatCursor > seatsPerRow {
				m.seatCursor -= seatsPerRow
			}
		case "down", "j":
			if m.seatCursor+seatsPerRow <= total {
				m.seatCursor += seatsPerRow
			}
		case "enter", " ":
			if err := m.wiz.SelectSeat(m.seatCursor); err != nil {
				return m.showToast(noticeFor(err, "This seat is already booked"), sevWarning)
			}
			return m.showToast(session.SeatNumber()+" selected", sevSuccess)
		}
		return m, nil
	}

	if msg.String() == "enter" {
		input := domain.PassengerInput{
			Name:  m.nameInput.Value(),
			Phone: m.phoneInput.Value(),
		}
		if err := m.wiz.SubmitPassenger(input); err != nil {
			return m.showToast(noticeFor(err, "Please fill in all details and select a seat"), sevWarning)
		}
		m.nameInput.Blur()
		m.phoneInput.Blur()
		m.upiInput.Focus()
		m.phase = phasePayment
		return m, textinput.Blink
	}

	return m.updateFocused(msg)
}

func (m Model) keyPayment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		_ = m.wiz.Back(wizard.StepPassenger)
		m.upiInput.Blur()
		m.focus = 1
		m.nameInput.Focus()
		m.phase = phasePassenger
		return m, textinput.Blink
	case "enter":
		upi := m.upiInput.Value()
		if utils.TrimOrEmpty(upi) == "" {
			return m.showToast("Please enter your UPI ID", sevWarning)
		}
		if !domain.ValidUPI(utils.TrimOrEmpty(upi)) {
			return m.showToast("Please enter a valid UPI ID", sevWarning)
		}
		m.busy = true
		m.busyLabel = "Processing payment..."
		return m, tea.Batch(m.spin.Tick, m.payCmd(upi))
	}
	var cmd tea.Cmd
	m.upiInput, cmd = m.upiInput.Update(msg)
	return m, cmd
}

func (m Model) keyTicket(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "d":
		m.busy = true
		m.busyLabel = "Generating ticket..."
		return m, tea.Batch(m.spin.Tick, m.downloadCmd())
	case "s":
		m.busy = true
		m.busyLabel = "Sharing ticket..."
		return m, tea.Batch(m.spin.Tick, m.shareCmd())
	case "r":
		m.wiz.Reset()
		m.form = wizard.SearchForm{TravelDate: utils.Today()}
		m.dateInput.SetValue(utils.Today())
		m.nameInput.SetValue("")
		m.phoneInput.SetValue("")
		m.upiInput.SetValue("")
		m.ticketPath = ""
		m.populateLocationLists()
		m.phase = phaseSelectFrom
		return m.showToast("Starting a new booking", sevSuccess)
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.nameInput.Focused():
		m.nameInput, cmd = m.nameInput.Update(msg)
	case m.phoneInput.Focused():
		m.phoneInput, cmd = m.phoneInput.Update(msg)
	case m.upiInput.Focused():
		m.upiInput, cmd = m.upiInput.Update(msg)
	case m.dateInput.Focused():
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) populateLocationLists() {
	session := m.wiz.Session()
	items := make([]list.Item, 0, len(session.Locations))
	for _, loc := range session.Locations {
		items = append(items, locationItem{loc: loc})
	}
	m.fromList.SetItems(items)
	m.toList.SetItems(items)
}

// populateToList hides the chosen departure point, like the reference
// UI filters its destination dropdown.
func (m *Model) populateToList() {
	session := m.wiz.Session()
	items := make([]list.Item, 0, len(session.Locations))
	for _, loc := range session.Locations {
		if loc.ID == m.form.FromLocationID {
			continue
		}
		items = append(items, locationItem{loc: loc})
	}
	m.toList.SetItems(items)
}

func (m *Model) populateBusList() {
	session := m.wiz.Session()
	items := make([]list.Item, 0, len(session.Results))
	for _, offer := range session.Results {
		typeName := strings.ToLower(offer.Bus.BusType.TypeName)
		switch m.filter {
		case "ac":
			if !strings.Contains(typeName, "ac") {
				continue
			}
		case "non-ac":
			if strings.Contains(typeName, "ac") {
				continue
			}
		case "available":
			if offer.AvailableSeats <= 10 {
				continue
			}
		}
		items = append(items, tripItem{offer: offer})
	}
	m.busList.SetItems(items)
}

func (m Model) showToast(text string, sev severity) (Model, tea.Cmd) {
	m.toast = text
	m.toastSev = sev
	m.toastGen++
	gen := m.toastGen
	return m, tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastClearMsg{gen: gen}
	})
}

func (m Model) loadLocationsCmd() tea.Cmd {
	wiz := m.wiz
	return func() tea.Msg {
		fallback := wiz.LoadLocations(context.Background())
		return locationsLoadedMsg{fallback: fallback}
	}
}

func (m Model) searchCmd(form wizard.SearchForm) tea.Cmd {
	wiz := m.wiz
	return func() tea.Msg {
		return searchDoneMsg{err: wiz.SubmitSearch(context.Background(), form)}
	}
}

func (m Model) payCmd(upiID string) tea.Cmd {
	wiz := m.wiz
	return func() tea.Msg {
		return paymentDoneMsg{err: wiz.SubmitPayment(context.Background(), upiID)}
	}
}

func (m Model) downloadCmd() tea.Cmd {
	session := m.wiz.Session()
	renderer := m.renderer
	if session.Booking == nil || session.SelectedTrip == nil {
		return func() tea.Msg {
			return downloadDoneMsg{err: domain.ValidationError{Msg: "no ticket data available"}}
		}
	}
	record, trip := *session.Booking, *session.SelectedTrip
	return func() tea.Msg {
		path, err := renderer.Download(context.Background(), record, trip)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (m Model) shareCmd() tea.Cmd {
	session := m.wiz.Session()
	renderer := m.renderer
	if session.Booking == nil || session.SelectedTrip == nil {
		return func() tea.Msg {
			return shareDoneMsg{err: domain.ValidationError{Msg: "no ticket data available"}}
		}
	}
	record, trip := *session.Booking, *session.SelectedTrip
	return func() tea.Msg {
		desc, err := renderer.Share(record, trip)
		return shareDoneMsg{desc: desc, err: err}
	}
}

// noticeFor keeps validation and domain failures readable while not
// leaking transport details into the toast line.
func noticeFor(err error, fallback string) string {
	switch {
	case err == nil:
		return fallback
	case domain.IsValidation(err), domain.IsSeatUnavailable(err), domain.IsBookingFailed(err):
		return capitalize(err.Error())
	case domain.IsArtifact(err):
		return capitalize(err.Error())
	default:
		return fallback
	}
}

func severityFor(err error) severity {
	switch {
	case domain.IsValidation(err), domain.IsSeatUnavailable(err):
		return sevWarning
	default:
		return sevError
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
