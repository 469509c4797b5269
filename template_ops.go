package docfold

import (
	"context"
	"net/url"
)

// CreateTemplateRequest stores a new template: the main content file, layout
// settings and optional header/footer files.
type CreateTemplateRequest struct {
	// Template carries the name, source format and layout defaults. ID and
	// Timestamp are cleared before sending; the server assigns them.
	Template Template
	// Content is the main template file. Required.
	Content Input
	// Header and Footer are optional page header/footer files stored with
	// the template.
	Header Input
	Footer Input
}

// AddStylesheetRequest attaches a stylesheet to a stored template.
type AddStylesheetRequest struct {
	// TemplateID identifies the owning template. Required.
	TemplateID string
	// Style describes the stylesheet; server-assigned fields are cleared
	// before sending.
	Style StyleFile
	// Content is the stylesheet file. Required.
	Content Input
}

// AddImageRequest attaches an image resource to a stored template.
type AddImageRequest struct {
	// TemplateID identifies the owning template. Required.
	TemplateID string
	// Image describes the resource, including the URI placeholder the
	// template refers to it by. Server-assigned fields are cleared before
	// sending.
	Image ImageFile
	// Content is the image file. Required.
	Content Input
}

// ListTemplates returns the metadata of every stored template.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.getJSON(ctx, "/template", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateTemplate stores a new template and returns it with the
// server-assigned ID and timestamp.
func (c *Client) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	f := newForm()
	tmpl := req.Template
	if err := addContentParts(f, req.Content, req.Header, req.Footer, &tmpl); err != nil {
		return nil, err
	}
	var created Template
	if err := c.postFormJSON(ctx, "/template", f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTemplate fetches a stored template's metadata by ID.
func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var tmpl Template
	if err := c.getJSON(ctx, "/template/"+url.PathEscape(id), &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteTemplate removes a stored template. It reports true only when the
// service confirms the deletion with 204 No Content.
func (c *Client) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	return c.del(ctx, "/template/"+url.PathEscape(id))
}

// GetTemplateFile fetches the main content file of a stored template.
func (c *Client) GetTemplateFile(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return c.getBytes(ctx, "/template/file/"+url.PathEscape(id))
}

// AddStylesheet attaches a stylesheet to the template identified by
// req.TemplateID and returns the stored resource.
func (c *Client) AddStylesheet(ctx context.Context, req AddStylesheetRequest) (*StyleFile, error) {
	if req.TemplateID == "" {
		return nil, ErrMissingTemplateID
	}
	data, filename, err := req.Content.read()
	if err != nil {
		return nil, err
	}

	style := req.Style.forCreate()
	format := style.Format
	if format == "" {
		format = "css"
	}

	f := newForm()
	name := partName(filename, format, "file.css")
	if err := f.file(partFileData, name, data, formatContentType(format)); err != nil {
		return nil, err
	}
	if err := f.json(partTemplateData, style); err != nil {
		return nil, err
	}

	var created StyleFile
	if err := c.postFormJSON(ctx, "/template/css/"+url.PathEscape(req.TemplateID), f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteStylesheet removes a stylesheet resource by its own ID. It reports
// true only on 204 No Content.
func (c *Client) DeleteStylesheet(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	return c.del(ctx, "/template/css/"+url.PathEscape(id))
}

// GetStylesheetFile fetches a stylesheet resource's file content by its ID.
func (c *Client) GetStylesheetFile(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return c.getBytes(ctx, "/template/css/file/"+url.PathEscape(id))
}

// AddImage attaches an image resource to the template identified by
// req.TemplateID and returns the stored resource. The image's Content-Type
// is detected from its leading bytes.
func (c *Client) AddImage(ctx context.Context, req AddImageRequest) (*ImageFile, error) {
	if req.TemplateID == "" {
		return nil, ErrMissingTemplateID
	}
	data, filename, err := req.Content.read()
	if err != nil {
		return nil, err
	}

	img := req.Image.forCreate()

	f := newForm()
	name := partName(filename, img.Format, fallbackImage)
	if err := f.file(partFileData, name, data, sniffContentType(data)); err != nil {
		return nil, err
	}
	if err := f.json(partTemplateData, img); err != nil {
		return nil, err
	}

	var created ImageFile
	if err := c.postFormJSON(ctx, "/template/img/"+url.PathEscape(req.TemplateID), f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteImage removes an image resource by its own ID. It reports true only
// on 204 No Content.
func (c *Client) DeleteImage(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	return c.del(ctx, "/template/img/"+url.PathEscape(id))
}

// GetImageFile fetches an image resource's file content by its ID.
func (c *Client) GetImageFile(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return c.getBytes(ctx, "/template/img/file/"+url.PathEscape(id))
}
