package ticket

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/phpdave11/gofpdf"
)

// Codec materializes a composed ticket into artifact bytes. The
// production codec is gofpdf; tests swap in fakes.
type Codec interface {
	Rasterize(comp Composition, qr QRImage) ([]byte, error)
}

// lazyCodec defers codec construction until the first download and
// memoizes the result for the rest of the session, including a failed
// load. Mirrors the reference flow's load-once contract for its
// rendering library.
type lazyCodec struct {
	load  func() (Codec, error)
	once  sync.Once
	codec Codec
	err   error
}

func (l *lazyCodec) get() (Codec, error) {
	l.once.Do(func() {
		l.codec, l.err = l.load()
	})
	if l.err != nil {
		return nil, domain.ArtifactError{Stage: domain.StageCodec, Err: l.err}
	}
	return l.codec, nil
}

// rasterize invokes the codec with a deadline so a wedged render
// cannot hang the wizard. The render itself is not interrupted; the
// caller just stops waiting.
func rasterize(ctx context.Context, codec Codec, comp Composition, qr QRImage) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := codec.Rasterize(comp, qr)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, domain.ArtifactError{Stage: domain.StageRasterize, Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			return nil, domain.ArtifactError{Stage: domain.StageRasterize, Err: res.err}
		}
		return res.data, nil
	}
}

type pdfCodec struct{}

// newPDFCodec probes gofpdf with a throwaway page so font problems
// surface as a codec-load failure instead of a broken artifact.
func newPDFCodec() (Codec, error) {
	probe := gofpdf.New("P", "mm", "A6", "")
	probe.AddPage()
	probe.SetFont("Helvetica", "", 10)
	probe.Cell(0, 5, "probe")
	if err := probe.Error(); err != nil {
		return nil, err
	}
	return pdfCodec{}, nil
}

func (pdfCodec) Rasterize(comp Composition, qr QRImage) ([]byte, error) {
	// Narrow portrait page, sized like the mobile ticket card.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 100, Ht: 210},
	})
	pdf.SetTitle("SmartFare E-Ticket", true)
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	// Header band.
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, comp.Title, "", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, comp.Subtitle, "", 1, "C", true, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(30, 64, 175)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 4, "BOOKING ID", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(41, 9, 92)
	pdf.CellFormat(0, 7, comp.BookingReference, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetTextColor(51, 51, 51)
	writeSection(pdf, comp.Passenger)
	writeSection(pdf, comp.Journey)
	writeSection(pdf, comp.Details)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, asciiCurrency(comp.FareLine), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(16, 185, 129)
	pdf.CellFormat(0, 6, comp.PaymentStatus, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Boarding-pass QR, centered.
	if len(qr.Bytes) > 0 {
		imageType := strings.ToUpper(qr.Format)
		if imageType == "JPEG" {
			imageType = "JPG"
		}
		opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
		pdf.RegisterImageOptionsReader("boarding-qr", opts, bytes.NewReader(qr.Bytes))
		pageWidth, _ := pdf.GetPageSize()
		side := 42.0
		pdf.ImageOptions("boarding-qr", (pageWidth-side)/2, pdf.GetY(), side, side, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + side + 3)
	}

	pdf.SetTextColor(30, 64, 175)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, comp.QRCaption, "", "C", false)
	pdf.Ln(3)

	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, comp.Footer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(28, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

// asciiCurrency swaps the rupee sign for "Rs." because the core PDF
// fonts cover cp1252 only.
func asciiCurrency(s string) string {
	return strings.ReplaceAll(s, "₹", "Rs. ")
}
