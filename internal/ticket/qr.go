package ticket

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	// Decoders for the QR preload check.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/abi124-max/SmartFare-managementAbi/internal/utils"
)

// QRImage is a preloaded, decode-checked QR ready for composition.
type QRImage struct {
	// Source is the data URI or URL the image came from.
	Source string
	Bytes  []byte
	// Format is the registered image format name (png, jpeg, gif).
	Format string
	Width  int
	Height int
}

// resolveQR runs the ordered fallback chain: the booking service
// first, then the public QR renderer with the pipe-delimited summary.
// A primary failure is recovered here, never surfaced.
func (r *Renderer) resolveQR(ctx context.Context, record domain.BookingRecord, trip domain.TripOffer) string {
	src, err := r.API.FetchQR(ctx, record.BookingReference)
	if err == nil {
		return src
	}
	utils.LogEvent("ticket", "qr_fallback", fmt.Sprintf("ref=%s err=%v", record.BookingReference, err))
	return r.fallbackQRURL(record, trip)
}

func (r *Renderer) fallbackQRURL(record domain.BookingRecord, trip domain.TripOffer) string {
	payload := fmt.Sprintf("BOOKING:%s|PASSENGER:%s|BUS:%s|SEAT:%s|DATE:%s|FARE:%s",
		record.BookingReference,
		record.Passenger.Name,
		trip.Bus.BusNumber,
		record.SeatNumber,
		trip.ScheduleDate,
		strconv.FormatFloat(record.FareAmount, 'f', -1, 64),
	)
	base := strings.TrimRight(r.fallbackBase(), "?")
	return base + "?size=200x200&format=png&data=" + url.QueryEscape(payload)
}

// preloadQR fetches and decode-checks the resolved QR source. After
// the fallback chain has already run, a preload failure is terminal
// for artifact generation.
func (r *Renderer) preloadQR(ctx context.Context, src string) (QRImage, error) {
	raw, err := r.fetchImage(ctx, src)
	if err != nil {
		return QRImage{}, domain.ArtifactError{Stage: domain.StagePreload, Err: err}
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return QRImage{}, domain.ArtifactError{Stage: domain.StagePreload, Err: fmt.Errorf("decode qr: %w", err)}
	}

	return QRImage{
		Source: src,
		Bytes:  raw,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (r *Renderer) fetchImage(ctx context.Context, src string) ([]byte, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("qr image: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 4<<20))
}

func decodeDataURI(src string) ([]byte, error) {
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data uri")
	}
	meta, data := src[:comma], src[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		decoded, err := url.PathUnescape(data)
		if err != nil {
			return nil, err
		}
		return []byte(decoded), nil
	}
	return base64.StdEncoding.DecodeString(data)
}
