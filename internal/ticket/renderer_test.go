package ticket

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
)

type fakeQRAPI struct {
	src string
	err error
}

func (f fakeQRAPI) FetchQR(ctx context.Context, ref string) (string, error) {
	return f.src, f.err
}

type fakeCodec struct {
	data []byte
	err  error
	wait time.Duration

	lastComp Composition
	lastQR   QRImage
}

func (f *fakeCodec) Rasterize(comp Composition, qr QRImage) ([]byte, error) {
	f.lastComp = comp
	f.lastQR = qr
	if f.wait > 0 {
		time.Sleep(f.wait)
	}
	return f.data, f.err
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func testRecord() domain.BookingRecord {
	return domain.BookingRecord{
		BookingReference: "SF1700000000000ABCD1234",
		Passenger:        domain.Passenger{Name: "Priya Raman", Phone: "9876543210"},
		SeatNumber:       "A3",
		FareAmount:       45.5,
		PaymentStatus:    domain.PaymentPaid,
	}
}

func testTrip() domain.TripOffer {
	return domain.TripOffer{
		ID: 11,
		Bus: domain.Bus{
			BusNumber:    "TN09N2345",
			OperatorName: "MTC Chennai",
			BusType:      domain.BusType{TypeName: "AC Deluxe"},
			TotalSeats:   40,
		},
		Route: domain.Route{
			FromLocation: domain.Location{Name: "Chennai Central"},
			ToLocation:   domain.Location{Name: "Tambaram"},
		},
		Fare:          45.5,
		DepartureTime: "06:00:00",
		ArrivalTime:   "07:15:00",
		ScheduleDate:  "2024-06-15",
	}
}

func TestFallbackQRURL(t *testing.T) {
	r := NewRenderer(fakeQRAPI{}, "", "")
	got := r.fallbackQRURL(testRecord(), testTrip())

	if !strings.HasPrefix(got, defaultFallbackQRBase+"?size=200x200&format=png&data=") {
		t.Fatalf("unexpected url prefix: %s", got)
	}
	for _, part := range []string{
		"BOOKING%3ASF1700000000000ABCD1234",
		"SEAT%3AA3",
		"BUS%3ATN09N2345",
		"FARE%3A45.5",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("url missing %s: %s", part, got)
		}
	}
}

func TestResolveQRPrefersPrimary(t *testing.T) {
	r := NewRenderer(fakeQRAPI{src: "data:image/png;base64,AAAA"}, "", "")
	if got := r.resolveQR(context.Background(), testRecord(), testTrip()); got != "data:image/png;base64,AAAA" {
		t.Errorf("primary source not used: %s", got)
	}

	r = NewRenderer(fakeQRAPI{err: errors.New("down")}, "", "")
	if got := r.resolveQR(context.Background(), testRecord(), testTrip()); !strings.HasPrefix(got, defaultFallbackQRBase) {
		t.Errorf("fallback not used: %s", got)
	}
}

func TestPreloadQR(t *testing.T) {
	r := NewRenderer(fakeQRAPI{}, "", "")

	qr, err := r.preloadQR(context.Background(), pngDataURI(t))
	if err != nil {
		t.Fatalf("preload: %v", err)
	}
	if qr.Format != "png" || qr.Width != 8 || qr.Height != 8 {
		t.Errorf("unexpected qr %+v", qr)
	}

	_, err = r.preloadQR(context.Background(), "data:image/png;base64,bm90LWFuLWltYWdl")
	var artErr domain.ArtifactError
	if !errors.As(err, &artErr) || artErr.Stage != domain.StagePreload {
		t.Fatalf("expected preload ArtifactError, got %v", err)
	}
}

func TestPreloadQRFromHTTP(t *testing.T) {
	var buf bytes.Buffer
	png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	r := NewRenderer(fakeQRAPI{}, "", "")
	qr, err := r.preloadQR(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("preload over http: %v", err)
	}
	if qr.Width != 4 {
		t.Errorf("unexpected width %d", qr.Width)
	}
}

func TestDownloadWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	codec := &fakeCodec{data: []byte("%PDF-fake")}
	r := NewRenderer(fakeQRAPI{src: pngDataURI(t)}, "", dir)
	r.LoadCodec = func() (Codec, error) { return codec, nil }

	path, err := r.Download(context.Background(), testRecord(), testTrip())
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	want := filepath.Join(dir, "SmartFare-Ticket-SF1700000000000ABCD1234.pdf")
	if path != want {
		t.Errorf("path %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(data, codec.data) {
		t.Fatalf("artifact not written: %v", err)
	}

	if codec.lastComp.BookingReference != "SF1700000000000ABCD1234" {
		t.Errorf("composition not handed to the codec: %+v", codec.lastComp)
	}
	if codec.lastQR.Format != "png" {
		t.Errorf("qr not preloaded before rasterize: %+v", codec.lastQR)
	}
}

func TestDownloadCodecLoadFailureMemoized(t *testing.T) {
	loads := 0
	r := NewRenderer(fakeQRAPI{src: pngDataURI(t)}, "", t.TempDir())
	r.LoadCodec = func() (Codec, error) {
		loads++
		return nil, errors.New("font pack missing")
	}

	for i := 0; i < 2; i++ {
		_, err := r.Download(context.Background(), testRecord(), testTrip())
		var artErr domain.ArtifactError
		if !errors.As(err, &artErr) || artErr.Stage != domain.StageCodec {
			t.Fatalf("expected codec ArtifactError, got %v", err)
		}
	}
	if loads != 1 {
		t.Errorf("codec loaded %d times, want 1", loads)
	}
}

func TestDownloadRasterTimeout(t *testing.T) {
	codec := &fakeCodec{data: []byte("x"), wait: 200 * time.Millisecond}
	r := NewRenderer(fakeQRAPI{src: pngDataURI(t)}, "", t.TempDir())
	r.LoadCodec = func() (Codec, error) { return codec, nil }
	r.RasterTimeout = 10 * time.Millisecond

	_, err := r.Download(context.Background(), testRecord(), testTrip())
	var artErr domain.ArtifactError
	if !errors.As(err, &artErr) || artErr.Stage != domain.StageRasterize {
		t.Fatalf("expected rasterize ArtifactError, got %v", err)
	}
}

func TestPDFCodecProducesDocument(t *testing.T) {
	codec, err := newPDFCodec()
	if err != nil {
		t.Fatalf("load codec: %v", err)
	}

	var buf bytes.Buffer
	png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 21, 21)))
	data, err := codec.Rasterize(compose(testRecord(), testTrip()), QRImage{
		Bytes:  buf.Bytes(),
		Format: "png",
		Width:  21,
		Height: 21,
	})
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("artifact is not a PDF, starts with %q", data[:min(8, len(data))])
	}
}

func TestShareText(t *testing.T) {
	text := shareText(testRecord(), testTrip())
	for _, want := range []string{
		"Booking: SF1700000000000ABCD1234",
		"Passenger: Priya Raman",
		"Seat: A3",
		"Route: Chennai Central -> Tambaram",
		"Fare: ₹45.50",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("share text missing %q:\n%s", want, text)
		}
	}
}

func TestAsciiCurrency(t *testing.T) {
	if got := asciiCurrency("Total Fare: ₹1,250"); got != "Total Fare: Rs. 1,250" {
		t.Errorf("asciiCurrency: %q", got)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
