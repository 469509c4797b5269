package docfold

import "time"

// Template is a stored, reusable document definition: a main content file,
// optional header/footer files, associated style and image resources, and a
// flat set of layout defaults applied to every render unless overridden.
//
// ID and Timestamp are assigned by the server and are never sent back as
// input when creating a template.
type Template struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Format      string     `json:"format,omitempty"` // source format, defaults to "html"
	Description string     `json:"description,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`

	MainFile   *TemplateFile `json:"main_file,omitempty"`
	HeaderFile *TemplateFile `json:"header_file,omitempty"`
	FooterFile *TemplateFile `json:"footer_file,omitempty"`
	Styles     []StyleFile   `json:"styles,omitempty"`
	Images     []ImageFile   `json:"images,omitempty"`

	// Layout defaults. All optional; unset fields are omitted from the wire
	// so the server applies its own defaults.
	Landscape          *bool    `json:"landscape,omitempty"`
	PaperFormat        *string  `json:"paper_format,omitempty"`
	MarginTop          *float64 `json:"margin_top,omitempty"`
	MarginRight        *float64 `json:"margin_right,omitempty"`
	MarginBottom       *float64 `json:"margin_bottom,omitempty"`
	MarginLeft         *float64 `json:"margin_left,omitempty"`
	Scale              *float64 `json:"scale,omitempty"`
	PageRange          *string  `json:"page_range,omitempty"`
	PrintBackground    *bool    `json:"print_background,omitempty"`
	HeaderEnabled      *bool    `json:"header_enabled,omitempty"`
	FooterEnabled      *bool    `json:"footer_enabled,omitempty"`
	TitleHeaderEnabled *bool    `json:"title_header_enabled,omitempty"`
}

// forCreate returns a copy safe to send as creation input: server-assigned
// identity and association fields are cleared and Format falls back to
// "html".
func (t Template) forCreate() Template {
	t.ID = ""
	t.Timestamp = nil
	t.MainFile = nil
	t.HeaderFile = nil
	t.FooterFile = nil
	t.Styles = nil
	t.Images = nil
	if t.Format == "" {
		t.Format = FormatHTML
	}
	return t
}

// TemplateFile describes a file stored as part of a template.
type TemplateFile struct {
	Filename string `json:"filename,omitempty"`
	Format   string `json:"format,omitempty"`
}

// StyleFile is a stylesheet resource attached to a template. ID, TemplateID
// and Timestamp are server-assigned.
type StyleFile struct {
	ID          string     `json:"id,omitempty"`
	TemplateID  string     `json:"template_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Format      string     `json:"format,omitempty"`
	Description string     `json:"description,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

func (s StyleFile) forCreate() StyleFile {
	s.ID = ""
	s.TemplateID = ""
	s.Timestamp = nil
	return s
}

// ImageFile is an image resource attached to a template. URI is the
// placeholder key the template refers to the image by. ID, TemplateID and
// Timestamp are server-assigned.
type ImageFile struct {
	ID          string     `json:"id,omitempty"`
	TemplateID  string     `json:"template_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Format      string     `json:"format,omitempty"`
	Description string     `json:"description,omitempty"`
	URI         string     `json:"uri,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

func (i ImageFile) forCreate() ImageFile {
	i.ID = ""
	i.TemplateID = ""
	i.Timestamp = nil
	return i
}

// RenderData is one flat record merged into a template during rendering.
type RenderData map[string]any

// RGB is a color triple serialized as a three-element JSON array.
type RGB [3]int

// Pointer helpers for filling optional DTO fields inline.

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Float64 returns a pointer to f.
func Float64(f float64) *float64 { return &f }

// String returns a pointer to s.
func String(s string) *string { return &s }
