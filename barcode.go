package docfold

import (
	"context"
	"fmt"
	"strings"
)

// Barcode symbologies accepted by RenderBarcode.
const (
	BarcodeAztec      = "aztec"
	BarcodeCodabar    = "codabar"
	BarcodeCode128    = "code128"
	BarcodeCode39     = "code39"
	BarcodeCode93     = "code93"
	BarcodeDataMatrix = "datamatrix"
	BarcodeEAN8       = "ean8"
	BarcodeEAN13      = "ean13"
	BarcodePDF417     = "pdf417"
	BarcodeQR         = "qr"
	Barcode2of5       = "2of5"
	Barcode2of5i      = "2of5i"
)

var barcodeFormats = map[string]bool{
	BarcodeAztec:      true,
	BarcodeCodabar:    true,
	BarcodeCode128:    true,
	BarcodeCode39:     true,
	BarcodeCode93:     true,
	BarcodeDataMatrix: true,
	BarcodeEAN8:       true,
	BarcodeEAN13:      true,
	BarcodePDF417:     true,
	BarcodeQR:         true,
	Barcode2of5:       true,
	Barcode2of5i:      true,
}

// BarcodeRequest encodes a value as a barcode image. Unlike every other write
// operation this is sent as a plain JSON body, not multipart form data.
type BarcodeRequest struct {
	// Data is the value to encode. Required.
	Data string `json:"data"`
	// Format is the barcode symbology, e.g. BarcodeQR. Required.
	Format string `json:"format"`
	// Width and Height are in pixels; the server picks defaults per
	// symbology when omitted.
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`
	// ShowText prints the encoded value under the bars where the symbology
	// supports it.
	ShowText *bool `json:"show_text,omitempty"`
}

// RenderBarcode renders a barcode and returns the image bytes.
func (c *Client) RenderBarcode(ctx context.Context, req BarcodeRequest) ([]byte, error) {
	if req.Data == "" {
		return nil, ErrMissingData
	}
	req.Format = strings.ToLower(req.Format)
	if !barcodeFormats[req.Format] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.Format)
	}
	return c.postJSON(ctx, "/render/barcode", req)
}
