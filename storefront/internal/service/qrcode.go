package service

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	qrData := strings.TrimRight(g.BaseURL, "/") + "/order/status?orderId=" + url.QueryEscape(orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
