package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	// APIBaseURL is the base path of the external booking service,
	// e.g. http://localhost:8081/api.
	APIBaseURL string

	// QRFallbackURL is the public QR renderer used when the booking
	// service cannot provide a QR image.
	QRFallbackURL string

	// OutputDir is where downloaded ticket artifacts are written.
	OutputDir string

	// LogFile, when set, receives log output while the TUI owns the
	// terminal. Empty means logging is discarded during the wizard.
	LogFile string

	// Stub server settings.
	AppAddr string
	GinMode string
}

func LoadEnv() Env {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	apiBase := strings.TrimSpace(os.Getenv("SMARTFARE_API_URL"))
	if apiBase == "" {
		apiBase = "http://localhost:8081/api"
	}
	apiBase = strings.TrimRight(apiBase, "/")

	qrFallback := strings.TrimSpace(os.Getenv("SMARTFARE_QR_FALLBACK_URL"))
	if qrFallback == "" {
		qrFallback = "https://api.qrserver.com/v1/create-qr-code/"
	}

	outputDir := strings.TrimSpace(os.Getenv("SMARTFARE_OUTPUT_DIR"))
	if outputDir == "" {
		outputDir = "."
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8081"
	}

	return Env{
		APIBaseURL:    apiBase,
		QRFallbackURL: qrFallback,
		OutputDir:     outputDir,
		LogFile:       strings.TrimSpace(os.Getenv("SMARTFARE_LOG")),
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
	}
}
