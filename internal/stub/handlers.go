package stub

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"

	"github.com/abi124-max/SmartFare-managementAbi/internal/domain"
	"github.com/gin-gonic/gin"
)

type handlers struct {
	store *Store
}

func (h handlers) locations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Locations())
}

func (h handlers) search(c *gin.Context) {
	var q struct {
		FromLocationID int64  `form:"fromLocationId" binding:"required"`
		ToLocationID   int64  `form:"toLocationId" binding:"required"`
		TravelDate     string `form:"travelDate" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromLocationId, toLocationId and travelDate are required"})
		return
	}

	offers, err := h.store.Search(q.FromLocationID, q.ToLocationID, q.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if offers == nil {
		offers = []domain.TripOffer{}
	}
	c.JSON(http.StatusOK, offers)
}

func (h handlers) createBooking(c *gin.Context) {
	var req domain.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking payload"})
		return
	}

	record, err := h.store.CreateBooking(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h handlers) confirmPayment(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transactionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionId is required"})
		return
	}

	record, err := h.store.ConfirmPayment(c.Param("bookingReference"), req.TransactionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h handlers) qr(c *gin.Context) {
	record, _, ok := h.store.Booking(c.Param("bookingReference"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qrCode": placeholderQRDataURI(record.BookingReference),
	})
}

func (h handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// placeholderQRDataURI renders a deterministic checkerboard PNG seeded
// by the booking reference. Not scannable; it exists so the ticket
// pipeline has a decodable image to embed during development.
func placeholderQRDataURI(seed string) string {
	const cells = 21
	const scale = 8
	img := image.NewGray(image.Rect(0, 0, cells*scale, cells*scale))

	state := uint32(2166136261)
	for _, b := range []byte(seed) {
		state = (state ^ uint32(b)) * 16777619
	}
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			state = state*1664525 + 1013904223
			shade := color.Gray{Y: 255}
			if state&0x10000 != 0 {
				shade = color.Gray{Y: 0}
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(x*scale+dx, y*scale+dy, shade)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
