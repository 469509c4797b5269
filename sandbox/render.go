package sandbox

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/aztec"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
	"github.com/boombuler/barcode/twooffive"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/docfold/docfold-go"
)

// renderPDF produces a minimal but structurally valid PDF with the given
// number of pages, each showing the title and its page number. Offsets in
// the xref table are exact so strict readers accept the output.
func renderPDF(title string, pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	var buf bytes.Buffer
	var offsets []int

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	fontObj := 3 + 2*pages

	addObj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	addObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))

	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, 3+pages+i))
	}
	for i := 0; i < pages; i++ {
		text := fmt.Sprintf("%s - page %d of %d", escapePDFText(title), i+1, pages)
		stream := fmt.Sprintf("BT /F1 12 Tf 72 770 Td (%s) Tj ET", text)
		addObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	addObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

var pdfTextEscaper = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)

func escapePDFText(s string) string {
	return pdfTextEscaper.Replace(s)
}

// renderBarcode encodes the request's data in the requested symbology and
// returns a PNG.
func renderBarcode(req docfold.BarcodeRequest) ([]byte, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch req.Format {
	case docfold.BarcodeQR:
		bc, err = qr.Encode(req.Data, qr.M, qr.Auto)
	case docfold.BarcodeAztec:
		bc, err = aztec.Encode([]byte(req.Data), aztec.DEFAULT_EC_PERCENT, 0)
	case docfold.BarcodeDataMatrix:
		bc, err = datamatrix.Encode(req.Data)
	case docfold.BarcodeCode128:
		bc, err = code128.Encode(req.Data)
	case docfold.BarcodeCode39:
		bc, err = code39.Encode(req.Data, false, true)
	case docfold.BarcodeCode93:
		bc, err = code93.Encode(req.Data, false, true)
	case docfold.BarcodeCodabar:
		bc, err = codabar.Encode(req.Data)
	case docfold.BarcodeEAN8, docfold.BarcodeEAN13:
		bc, err = ean.Encode(req.Data)
	case docfold.BarcodePDF417:
		bc, err = pdf417.Encode(req.Data, 2)
	case docfold.Barcode2of5:
		bc, err = twooffive.Encode(req.Data, false)
	case docfold.Barcode2of5i:
		bc, err = twooffive.Encode(req.Data, true)
	default:
		return nil, fmt.Errorf("unsupported barcode format %q", req.Format)
	}
	if err != nil {
		return nil, err
	}

	width, height := barcodeSize(bc, req.Width, req.Height)
	if scaled, serr := barcode.Scale(bc, width, height); serr == nil {
		bc = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, bc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// barcodeSize picks output dimensions: explicit request values win, 2D
// symbologies default to a square, linear ones to a wide strip.
func barcodeSize(bc barcode.Barcode, w, h *int) (int, int) {
	width, height := 256, 96
	if bc.Metadata().Dimensions == 2 {
		height = 256
	}
	if w != nil && *w > 0 {
		width = *w
	}
	if h != nil && *h > 0 {
		height = *h
	}
	return width, height
}

// renderImage produces a placeholder gradient image encoded in the given
// format.
func renderImage(format string, width, height int) ([]byte, error) {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: 0x7f,
				A: 0xff,
			})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	case "tif", "tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func imageContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	}
	return "application/octet-stream"
}
