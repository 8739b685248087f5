package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes the order tracking link handed to the delivery agent.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	return qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) TrackingURL(orderID int) string {
	return fmt.Sprintf("%s/track.html?order_id=%d", g.BaseURL, orderID)
}
