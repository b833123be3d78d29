package service

import "github.com/google/uuid"

// QRCodeService defines the interface for order pickup QR codes.
// The code is shown by the customer at handoff and parsed by the merchant.
type QRCodeService interface {
	// GeneratePickupQR renders a PNG QR code identifying an order.
	GeneratePickupQR(orderID uuid.UUID) ([]byte, error)

	// ParsePickupQR extracts the order ID from scanned QR payload data.
	ParsePickupQR(qrData string) (uuid.UUID, error)
}
