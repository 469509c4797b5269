package docfold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/docfold/docfold-go/internal/sniff"
)

// Multipart part names are a fixed contract with the service; the server
// resolves payloads by these names and nothing here is configurable.
const (
	partFileData      = "file_data"       // primary file for template/style/image creation and ad-hoc renders
	partFile          = "file"            // primary file for PDF post-processing operations
	partHeaderData    = "header_data"     // optional template header file
	partFooterData    = "footer_data"     // optional template footer file
	partTemplateData  = "template_data"   // Template JSON
	partRenderData    = "render_data"     // render data object or array
	partRenderOptions = "render_options"  // RenderOptions JSON
	partOptions       = "options"         // options JSON for PDF operations
	partMetadata      = "metadata"        // Metadata JSON
	partSplits        = "splits"          // page range array for split operations
	partURL           = "url"             // target URL for RenderURL
)

// Fallback filenames used when a part's source has no name and no format is
// known.
const (
	fallbackPDF    = "file.pdf"
	fallbackImage  = "image"
	fallbackHeader = "header.html"
	fallbackFooter = "footer.html"
)

const contentTypePDF = "application/pdf"

// form assembles a multipart/form-data request body. File parts carry an
// explicit Content-Type; JSON parts serialize structured values with unset
// optional fields omitted rather than sent as null.
type form struct {
	buf bytes.Buffer
	mw  *multipart.Writer
}

func newForm() *form {
	f := &form{}
	f.mw = multipart.NewWriter(&f.buf)
	return f
}

// file adds a binary part under the given part name and filename. An empty
// contentType falls back to application/octet-stream.
func (f *form) file(name, filename string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(name), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	part, err := f.mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("docfold: create form part %s: %w", name, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("docfold: write form part %s: %w", name, err)
	}
	return nil
}

// json adds a structured part serialized as JSON.
func (f *form) json(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("docfold: marshal form part %s: %w", name, err)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(name)))
	h.Set("Content-Type", "application/json")
	part, err := f.mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("docfold: create form part %s: %w", name, err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("docfold: write form part %s: %w", name, err)
	}
	return nil
}

// text adds a plain form field.
func (f *form) text(name, value string) error {
	if err := f.mw.WriteField(name, value); err != nil {
		return fmt.Errorf("docfold: write form field %s: %w", name, err)
	}
	return nil
}

// close finalizes the body; no parts may be added afterwards.
func (f *form) close() error {
	return f.mw.Close()
}

func (f *form) contentType() string {
	return f.mw.FormDataContentType()
}

func (f *form) bytes() []byte {
	return f.buf.Bytes()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// sniffContentType detects an image part's Content-Type from its leading
// bytes. The empty result maps to application/octet-stream when the part is
// written.
func sniffContentType(data []byte) string {
	return sniff.Detect(data)
}
