package services

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// EncodeQR renders the short URL as a PNG QR code and returns it
// base64-encoded, ready to be stored on the link row. Pure function,
// invoked once at link creation.
func EncodeQR(shortURL string) (string, error) {
	png, err := qrcode.Encode(shortURL, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
