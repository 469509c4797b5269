package docfold

import (
	"context"
	"fmt"
	"strings"
)

// imageFormats are the output formats accepted by PDFToImage and validated
// locally before any request is made.
var imageFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"tiff": true,
}

// Merge source count limits enforced before any request is made.
const (
	mergeMinFiles = 2
	mergeMaxFiles = 100
)

// PageRange selects an inclusive 1-based page interval of a source document.
// A To of 0 means through the last page.
type PageRange struct {
	From int `json:"from"`
	To   int `json:"to,omitempty"`
}

// SplitPDFRequest extracts page ranges from a PDF document.
type SplitPDFRequest struct {
	// File is the source PDF. Required.
	File Input
	// Splits lists the page ranges to extract. At least one is required.
	Splits []PageRange
}

// MergePDFsRequest concatenates between 2 and 100 PDF documents in order.
type MergePDFsRequest struct {
	Files []Input
}

// SetPDFMetadataRequest applies document metadata to a PDF.
type SetPDFMetadataRequest struct {
	File     Input
	Metadata Metadata
}

// CompressPDFRequest reduces the size of a PDF document.
type CompressPDFRequest struct {
	File    Input
	Options *CompressOptions
}

// EncryptPDFRequest password-protects a PDF document.
type EncryptPDFRequest struct {
	File    Input
	Options EncryptOptions
}

// PDFToImageRequest converts the pages of a PDF into an image.
type PDFToImageRequest struct {
	File Input
	// Format is the image output format: jpg, jpeg, png, gif, bmp, tif or
	// tiff. Required.
	Format  string
	Options *RenderOptions
}

// SplitPDF extracts the pages selected by the request's ranges and returns
// them as a single PDF document.
func (c *Client) SplitPDF(ctx context.Context, req SplitPDFRequest) ([]byte, error) {
	f, err := splitForm(req)
	if err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/pdf/split", f)
}

// SplitPDFZip extracts the pages selected by the request's ranges and returns
// a zip archive with one PDF per range, in order. Unpack it with ExtractZip.
func (c *Client) SplitPDFZip(ctx context.Context, req SplitPDFRequest) ([]byte, error) {
	f, err := splitForm(req)
	if err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/pdf/split-zip", f)
}

func splitForm(req SplitPDFRequest) (*form, error) {
	if len(req.Splits) == 0 {
		return nil, ErrNoSplits
	}
	f := newForm()
	if err := addPDFPart(f, req.File); err != nil {
		return nil, err
	}
	if err := f.json(partSplits, req.Splits); err != nil {
		return nil, err
	}
	return f, nil
}

// MergePDFs concatenates the given PDF documents in order and returns the
// combined document. Between 2 and 100 files are accepted; the count is
// checked before any file is read or any request is made.
func (c *Client) MergePDFs(ctx context.Context, req MergePDFsRequest) ([]byte, error) {
	if len(req.Files) < mergeMinFiles || len(req.Files) > mergeMaxFiles {
		return nil, ErrMergeFileCount
	}
	f := newForm()
	for _, in := range req.Files {
		if err := addPDFPart(f, in); err != nil {
			return nil, err
		}
	}
	return c.postForm(ctx, "/pdf/merge", f)
}

// SetPDFMetadata applies the given document metadata and returns the updated
// PDF.
func (c *Client) SetPDFMetadata(ctx context.Context, req SetPDFMetadataRequest) ([]byte, error) {
	f := newForm()
	if err := addPDFPart(f, req.File); err != nil {
		return nil, err
	}
	if err := f.json(partMetadata, req.Metadata); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/pdf/metadata", f)
}

// CompressPDF reduces the size of a PDF document and returns the result.
func (c *Client) CompressPDF(ctx context.Context, req CompressPDFRequest) ([]byte, error) {
	f := newForm()
	if err := addPDFPart(f, req.File); err != nil {
		return nil, err
	}
	if req.Options != nil {
		if err := f.json(partOptions, req.Options); err != nil {
			return nil, err
		}
	}
	return c.postForm(ctx, "/pdf/compress", f)
}

// EncryptPDF password-protects a PDF document and returns the encrypted
// result. At least one of the user and owner passwords must be set.
func (c *Client) EncryptPDF(ctx context.Context, req EncryptPDFRequest) ([]byte, error) {
	if req.Options.UserPassword == "" && req.Options.OwnerPassword == "" {
		return nil, ErrMissingPassword
	}
	f := newForm()
	if err := addPDFPart(f, req.File); err != nil {
		return nil, err
	}
	if err := f.json(partOptions, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/pdf/encrypt", f)
}

// PDFToImage converts a PDF document into an image of the given format.
func (c *Client) PDFToImage(ctx context.Context, req PDFToImageRequest) ([]byte, error) {
	format := strings.ToLower(req.Format)
	if !imageFormats[format] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.Format)
	}
	f := newForm()
	if err := addPDFPart(f, req.File); err != nil {
		return nil, err
	}
	if req.Options != nil {
		if err := f.json(partOptions, req.Options); err != nil {
			return nil, err
		}
	}
	return c.postForm(ctx, "/pdf/image/"+format, f)
}

// addPDFPart attaches a source PDF under the fixed "file" part name. PDF
// parts are always tagged application/pdf; their content is not sniffed.
func addPDFPart(f *form, in Input) error {
	data, filename, err := in.read()
	if err != nil {
		return err
	}
	name := partName(filename, "", fallbackPDF)
	return f.file(partFile, name, data, contentTypePDF)
}
