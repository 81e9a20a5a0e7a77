// SmartFare is a terminal booking wizard for scheduled bus trips: pick
// a route, choose a bus and seat, pay, and walk away with a ticket
// artifact. The booking service itself is external; see
// cmd/smartfare-stub for a local double.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/abi124-max/SmartFare-managementAbi/internal/api"
	"github.com/abi124-max/SmartFare-managementAbi/internal/booking"
	"github.com/abi124-max/SmartFare-managementAbi/internal/config"
	"github.com/abi124-max/SmartFare-managementAbi/internal/ticket"
	"github.com/abi124-max/SmartFare-managementAbi/internal/tui"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
	"github.com/abi124-max/SmartFare-managementAbi/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	env := config.LoadEnv()

	// The TUI owns the terminal; logging goes to a file or nowhere.
	logFile, err := utils.RedirectLog(env.LogFile)
	if err != nil {
		log.Fatalf("cannot open log file %s: %v", env.LogFile, err)
	}
	defer logFile.Close()

	client := api.NewClient(env.APIBaseURL)
	wiz := wizard.New(client, booking.Coordinator{API: client})
	renderer := ticket.NewRenderer(client, env.QRFallbackURL, env.OutputDir)

	program := tea.NewProgram(tui.New(wiz, renderer), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "smartfare: %v\n", err)
		os.Exit(1)
	}
}
