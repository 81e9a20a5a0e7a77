// Package ticket renders the downloadable and shareable artifact for a
// confirmed booking: QR resolution with a public-service fallback,
// preload, off-screen composition, codec rasterization and delivery.
// Nothing in this package touches the wizard session; a failed artifact
// leaves the booking valid.
package ticket

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
)

const defaultFallbackQRBase = "https://api.qrserver.com/v1/create-qr-code/"

// QRAPI is the slice of the gateway client the renderer needs.
type QRAPI interface {
	FetchQR(ctx context.Context, bookingReference string) (string, error)
}

type Renderer struct {
	API QRAPI

	// HTTP fetches QR images; nil uses http.DefaultClient.
	HTTP *http.Client

	// FallbackQRBase overrides the public QR service endpoint.
	FallbackQRBase string

	// OutputDir receives downloaded artifacts; empty means the
	// working directory.
	OutputDir string

	// RasterTimeout bounds the codec call. Zero means 30s.
	RasterTimeout time.Duration

	// LoadCodec is injectable for tests; nil loads the PDF codec.
	LoadCodec func() (Codec, error)

	codec lazyCodec
	init  bool
}

func NewRenderer(api QRAPI, fallbackQRBase, outputDir string) *Renderer {
	return &Renderer{
		API:            api,
		FallbackQRBase: fallbackQRBase,
		OutputDir:      outputDir,
	}
}

// Download produces the ticket artifact and writes it next to the
// user's files. Returns the written path.
func (r *Renderer) Download(ctx context.Context, record domain.BookingRecord, trip domain.TripOffer) (string, error) {
	src := r.resolveQR(ctx, record, trip)

	// The QR fetch must finish, success or error, before the codec
	// runs; the codec never samples a half-loaded image.
	qr, err := r.preloadQR(ctx, src)
	if err != nil {
		return "", err
	}

	codec, err := r.loadCodec()
	if err != nil {
		return "", err
	}

	rasterCtx, cancel := context.WithTimeout(ctx, r.rasterTimeout())
	defer cancel()
	data, err := rasterize(rasterCtx, codec, compose(record, trip), qr)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("SmartFare-Ticket-%s.pdf", utils.SafeFilenamePart(record.BookingReference))
	path := filepath.Join(r.outputDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.ArtifactError{Stage: domain.StageDeliver, Err: err}
	}
	utils.LogEvent("ticket", "download", "path="+path)
	return path, nil
}

// Share offers the lightweight companion flow: clipboard copy of the
// plain-text summary, falling back to a text file when no clipboard
// route exists. Returns a human description of what happened.
func (r *Renderer) Share(record domain.BookingRecord, trip domain.TripOffer) (string, error) {
	text := shareText(record, trip)

	if err := copyToClipboard(text); err == nil {
		utils.LogEvent("ticket", "share", "ref="+record.BookingReference+" via=clipboard")
		return "ticket details copied to clipboard", nil
	}

	name := fmt.Sprintf("SmartFare_Ticket_%s.txt", utils.SafeFilenamePart(record.BookingReference))
	path := filepath.Join(r.outputDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", domain.ArtifactError{Stage: domain.StageDeliver, Err: err}
	}
	utils.LogEvent("ticket", "share", "ref="+record.BookingReference+" via=file")
	return "ticket summary saved to " + path, nil
}

func (r *Renderer) loadCodec() (Codec, error) {
	if !r.init {
		load := r.LoadCodec
		if load == nil {
			load = newPDFCodec
		}
		r.codec.load = load
		r.init = true
	}
	return r.codec.get()
}

func (r *Renderer) httpClient() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return http.DefaultClient
}

func (r *Renderer) fallbackBase() string {
	if r.FallbackQRBase != "" {
		return r.FallbackQRBase
	}
	return defaultFallbackQRBase
}

func (r *Renderer) outputDir() string {
	if r.OutputDir != "" {
		return r.OutputDir
	}
	return "."
}

func (r *Renderer) rasterTimeout() time.Duration {
	if r.RasterTimeout > 0 {
		return r.RasterTimeout
	}
	return 30 * time.Second
}
