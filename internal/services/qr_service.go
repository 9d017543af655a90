package services

import (
	"github.com/skip2/go-qrcode"
)

// QRService renders PNG QR codes for short links, shown on the URL detail
// page.
type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

func (s *QRService) GeneratePNG(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
