package docfold

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Output formats accepted by the render endpoints.
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
)

// normalizeFormat lowercases and validates a render output format, defaulting
// to pdf when empty.
func normalizeFormat(format string) (string, error) {
	if format == "" {
		return FormatPDF, nil
	}
	format = strings.ToLower(format)
	switch format {
	case FormatPDF, FormatHTML:
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// formatContentType maps a template source format to the Content-Type its
// file parts are sent with. Unknown formats fall back to octet-stream in the
// form layer.
func formatContentType(format string) string {
	switch strings.ToLower(format) {
	case FormatHTML:
		return "text/html"
	case "css":
		return "text/css"
	case FormatPDF:
		return contentTypePDF
	}
	return ""
}

// RenderRequest renders a stored template with the given data.
type RenderRequest struct {
	// TemplateID identifies the stored template. Required.
	TemplateID string
	// Format is the output format, pdf or html. Empty means pdf.
	Format string
	// Data fills the template placeholders. Nil renders with no data.
	Data RenderData
	// Options override the template's layout for this call only.
	Options *RenderOptions
}

// RenderBatchRequest renders a stored template once per data object.
type RenderBatchRequest struct {
	TemplateID string
	Format     string
	// Data holds one entry per requested document.
	Data []RenderData
	Options *RenderOptions
}

// RenderContentRequest renders ad-hoc template content without storing it.
type RenderContentRequest struct {
	// Content is the template source. Required.
	Content Input
	// Header and Footer are optional page header/footer sources.
	Header Input
	Footer Input
	// Template carries layout settings for the ad-hoc render. Nil uses a
	// default html template with the title header disabled.
	Template *Template
	Format   string
	Data     RenderData
	Options  *RenderOptions
}

// RenderContentBatchRequest renders ad-hoc content once per data object.
type RenderContentBatchRequest struct {
	Content  Input
	Header   Input
	Footer   Input
	Template *Template
	Format   string
	Data     []RenderData
	Options  *RenderOptions
}

// RenderURLRequest renders the page at a public URL to PDF.
type RenderURLRequest struct {
	// URL is the address to fetch and render. Required.
	URL string
	Options *RenderOptions
}

// RenderImageRequest converts an image with the given render options.
type RenderImageRequest struct {
	// Image is the source image. Required.
	Image   Input
	Options *RenderOptions
}

// Render renders a stored template and returns the produced document.
func (c *Client) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if req.TemplateID == "" {
		return nil, ErrMissingTemplateID
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}

	f := newForm()
	data := req.Data
	if data == nil {
		data = RenderData{}
	}
	if err := f.json(partRenderData, data); err != nil {
		return nil, err
	}
	if err := addRenderOptions(f, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/render/"+format+"/"+url.PathEscape(req.TemplateID), f)
}

// RenderBatch renders a stored template once per data entry and returns a zip
// archive with one document per entry, in order. Unpack it with ExtractZip.
func (c *Client) RenderBatch(ctx context.Context, req RenderBatchRequest) ([]byte, error) {
	if req.TemplateID == "" {
		return nil, ErrMissingTemplateID
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}

	f := newForm()
	data := req.Data
	if data == nil {
		data = []RenderData{}
	}
	if err := f.json(partRenderData, data); err != nil {
		return nil, err
	}
	if err := addRenderOptions(f, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/render/"+format+"/batch/"+url.PathEscape(req.TemplateID), f)
}

// RenderContent renders template content supplied with the call and returns
// the produced document. The content is not stored.
func (c *Client) RenderContent(ctx context.Context, req RenderContentRequest) ([]byte, error) {
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}

	f := newForm()
	if err := addContentParts(f, req.Content, req.Header, req.Footer, req.Template); err != nil {
		return nil, err
	}
	data := req.Data
	if data == nil {
		data = RenderData{}
	}
	if err := f.json(partRenderData, data); err != nil {
		return nil, err
	}
	if err := addRenderOptions(f, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/render/"+format, f)
}

// RenderContentBatch renders ad-hoc content once per data entry and returns a
// zip archive with one document per entry, in order.
func (c *Client) RenderContentBatch(ctx context.Context, req RenderContentBatchRequest) ([]byte, error) {
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}

	f := newForm()
	if err := addContentParts(f, req.Content, req.Header, req.Footer, req.Template); err != nil {
		return nil, err
	}
	data := req.Data
	if data == nil {
		data = []RenderData{}
	}
	if err := f.json(partRenderData, data); err != nil {
		return nil, err
	}
	if err := addRenderOptions(f, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/render/"+format+"/batch", f)
}

// RenderURL renders the page at a public URL and returns the PDF.
func (c *Client) RenderURL(ctx context.Context, req RenderURLRequest) ([]byte, error) {
	if req.URL == "" {
		return nil, ErrMissingURL
	}
	f := newForm()
	if err := f.text(partURL, req.URL); err != nil {
		return nil, err
	}
	if err := addRenderOptions(f, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/pdf/url", f)
}

// RenderImage converts an image according to the render options and returns
// the result.
func (c *Client) RenderImage(ctx context.Context, req RenderImageRequest) ([]byte, error) {
	data, filename, err := req.Image.read()
	if err != nil {
		return nil, err
	}
	f := newForm()
	name := partName(filename, "", fallbackImage)
	if err := f.file(partFileData, name, data, sniffContentType(data)); err != nil {
		return nil, err
	}
	if err := addRenderOptions(f, req.Options); err != nil {
		return nil, err
	}
	return c.postForm(ctx, "/render/img", f)
}

// GetImage fetches a previously rendered image by ID.
func (c *Client) GetImage(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return c.getBytes(ctx, "/img/"+url.PathEscape(id))
}

// addContentParts attaches the ad-hoc template content, optional header and
// footer files and the template settings to a render form.
func addContentParts(f *form, content, header, footer Input, tmpl *Template) error {
	data, filename, err := content.read()
	if err != nil {
		return err
	}

	t := defaultContentTemplate()
	if tmpl != nil {
		t = tmpl.forCreate()
	}
	ct := formatContentType(t.Format)

	name := partName(filename, t.Format, "file."+FormatHTML)
	if err := f.file(partFileData, name, data, ct); err != nil {
		return err
	}

	if !header.IsZero() {
		data, filename, err := header.read()
		if err != nil {
			return fmt.Errorf("header: %w", err)
		}
		name := partName(filename, "", fallbackHeader)
		if err := f.file(partHeaderData, name, data, ct); err != nil {
			return err
		}
	}
	if !footer.IsZero() {
		data, filename, err := footer.read()
		if err != nil {
			return fmt.Errorf("footer: %w", err)
		}
		name := partName(filename, "", fallbackFooter)
		if err := f.file(partFooterData, name, data, ct); err != nil {
			return err
		}
	}

	return f.json(partTemplateData, t)
}

// defaultContentTemplate is the template sent for ad-hoc renders when the
// caller supplies none. The title header is disabled explicitly so one-off
// documents come out without the stored-template chrome.
func defaultContentTemplate() Template {
	return Template{
		Format:             FormatHTML,
		TitleHeaderEnabled: Bool(false),
	}
}

func addRenderOptions(f *form, opts *RenderOptions) error {
	if opts == nil {
		return nil
	}
	return f.json(partRenderOptions, opts)
}

// LoadRenderData reads a JSON object from a file for use as render data.
func LoadRenderData(path string) (RenderData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data RenderData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("docfold: parse render data %s: %w", path, err)
	}
	return data, nil
}

// LoadBatchRenderData reads a JSON array of objects from a file for use as
// batch render data.
func LoadBatchRenderData(path string) ([]RenderData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data []RenderData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("docfold: parse batch render data %s: %w", path, err)
	}
	return data, nil
}
