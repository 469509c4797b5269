package docfold

// RenderOptions overrides layout and output settings for a single render
// call, independent of the defaults stored on a template. Every field is
// optional: unset fields are omitted from the serialized form entirely so
// the server's own defaults apply.
type RenderOptions struct {
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

	// Image output settings. Width/Height and W/H are aliases on the wire;
	// the service accepts either pair.
	X               *float64 `json:"x,omitempty"`
	Y               *float64 `json:"y,omitempty"`
	Width           *float64 `json:"width,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	W               *float64 `json:"w,omitempty"`
	H               *float64 `json:"h,omitempty"`
	KeepAspectRatio *bool    `json:"keep_aspect_ratio,omitempty"`
	BackgroundColor *RGB     `json:"background_color,omitempty"`
	Transparent     *bool    `json:"transparent,omitempty"`
	Compress        *bool    `json:"compress,omitempty"`

	// ShowText overlays the encoded value under a rendered barcode.
	ShowText *bool `json:"show_text,omitempty"`

	// Literal header/footer content for this render only, replacing any
	// header/footer files stored on the template.
	HeaderContent *string `json:"header_content,omitempty"`
	FooterContent *string `json:"footer_content,omitempty"`
}

// Metadata holds PDF document metadata applied by SetPDFMetadata.
type Metadata struct {
	Title    *string  `json:"title,omitempty"`
	Author   *string  `json:"author,omitempty"`
	Subject  *string  `json:"subject,omitempty"`
	Creator  *string  `json:"creator,omitempty"`
	Producer *string  `json:"producer,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// CompressOptions tunes CompressPDF. Quality is a percentage in [1,100]
// applied to embedded images.
type CompressOptions struct {
	Quality        *int  `json:"quality,omitempty"`
	RemoveMetadata *bool `json:"remove_metadata,omitempty"`
}

// EncryptOptions configures EncryptPDF. At least one password must be set;
// permission flags default to the server's most permissive settings when
// omitted.
type EncryptOptions struct {
	UserPassword  string `json:"user_password,omitempty"`
	OwnerPassword string `json:"owner_password,omitempty"`
	AllowPrint    *bool  `json:"allow_print,omitempty"`
	AllowCopy     *bool  `json:"allow_copy,omitempty"`
	AllowModify   *bool  `json:"allow_modify,omitempty"`
}
