package sandbox

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docfold/docfold-go"
	"github.com/docfold/docfold-go/internal/sniff"
)

const maxUploadSize = 64 << 20

// ImageIDHeader carries the ID under which a rendered image or barcode was
// stored, for later retrieval via GET /img/{id}.
const ImageIDHeader = "X-Docfold-Image-Id"

// TokenResponse is the response for GET /token
type TokenResponse struct {
	Valid bool `json:"valid"`
}

// ErrorResponse is the error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) sendError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) sendFile(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// formFile reads one uploaded part's content and filename.
func formFile(r *http.Request, name string) ([]byte, string, error) {
	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

// decodeFormJSON unmarshals a JSON side part. It reports whether the part
// was present.
func decodeFormJSON(r *http.Request, name string, v any) (bool, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, err
	}
	return true, nil
}

type zipEntry struct {
	Name string
	Data []byte
}

func buildZip(entries []zipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := zw.Create(e.Name)
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(e.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sourceContentType(format string) string {
	switch format {
	case "html":
		return "text/html"
	case "css":
		return "text/css"
	}
	return "application/octet-stream"
}

// handleToken handles GET /token
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, TokenResponse{Valid: true})
}

// handleRender handles POST /render/{format}/{id}
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "pdf" && format != "html" {
		s.sendError(w, http.StatusBadRequest, "unsupported output format")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	id := chi.URLParam(r, "id")
	tmpl, err := s.store.Template(id)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	if tmpl == nil {
		s.sendError(w, http.StatusNotFound, "template not found")
		return
	}

	var data map[string]any
	if _, err := decodeFormJSON(r, "render_data", &data); err != nil {
		s.sendError(w, http.StatusBadRequest, "render_data must be a JSON object")
		return
	}
	var opts docfold.RenderOptions
	if _, err := decodeFormJSON(r, "render_options", &opts); err != nil {
		s.sendError(w, http.StatusBadRequest, "render_options must be a JSON object")
		return
	}

	if format == "html" {
		content, err := s.store.Blob(blobTemplate + id)
		if err != nil {
			s.sendError(w, http.StatusInternalServerError, "failed to load template file")
			return
		}
		s.sendFile(w, "text/html", content)
		return
	}
	s.sendFile(w, "application/pdf", renderPDF(tmpl.Name, 1))
}

// handleRenderBatch handles POST /render/{format}/batch/{id}
func (s *Server) handleRenderBatch(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "pdf" && format != "html" {
		s.sendError(w, http.StatusBadRequest, "unsupported output format")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	id := chi.URLParam(r, "id")
	tmpl, err := s.store.Template(id)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	if tmpl == nil {
		s.sendError(w, http.StatusNotFound, "template not found")
		return
	}

	var data []map[string]any
	if _, err := decodeFormJSON(r, "render_data", &data); err != nil {
		s.sendError(w, http.StatusBadRequest, "render_data must be a JSON array")
		return
	}

	entries := make([]zipEntry, len(data))
	for i := range data {
		var content []byte
		if format == "html" {
			content, err = s.store.Blob(blobTemplate + id)
			if err != nil {
				s.sendError(w, http.StatusInternalServerError, "failed to load template file")
				return
			}
		} else {
			content = renderPDF(tmpl.Name, 1)
		}
		entries[i] = zipEntry{Name: fmt.Sprintf("document-%d.%s", i+1, format), Data: content}
	}

	archive, err := buildZip(entries)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to build archive")
		return
	}
	s.sendFile(w, "application/zip", archive)
}

// handleRenderContent handles POST /render/{format}
func (s *Server) handleRenderContent(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "pdf" && format != "html" {
		s.sendError(w, http.StatusBadRequest, "unsupported output format")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	content, filename, err := formFile(r, "file_data")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file_data is required")
		return
	}

	var tmpl docfold.Template
	if _, err := decodeFormJSON(r, "template_data", &tmpl); err != nil {
		s.sendError(w, http.StatusBadRequest, "template_data must be a JSON object")
		return
	}
	var data map[string]any
	if _, err := decodeFormJSON(r, "render_data", &data); err != nil {
		s.sendError(w, http.StatusBadRequest, "render_data must be a JSON object")
		return
	}

	if format == "html" {
		s.sendFile(w, "text/html", content)
		return
	}
	title := tmpl.Name
	if title == "" {
		title = filename
	}
	s.sendFile(w, "application/pdf", renderPDF(title, 1))
}

// handleRenderContentBatch handles POST /render/{format}/batch
func (s *Server) handleRenderContentBatch(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format != "pdf" && format != "html" {
		s.sendError(w, http.StatusBadRequest, "unsupported output format")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	content, filename, err := formFile(r, "file_data")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file_data is required")
		return
	}

	var tmpl docfold.Template
	if _, err := decodeFormJSON(r, "template_data", &tmpl); err != nil {
		s.sendError(w, http.StatusBadRequest, "template_data must be a JSON object")
		return
	}
	var data []map[string]any
	if _, err := decodeFormJSON(r, "render_data", &data); err != nil {
		s.sendError(w, http.StatusBadRequest, "render_data must be a JSON array")
		return
	}

	title := tmpl.Name
	if title == "" {
		title = filename
	}
	entries := make([]zipEntry, len(data))
	for i := range data {
		doc := content
		if format == "pdf" {
			doc = renderPDF(title, 1)
		}
		entries[i] = zipEntry{Name: fmt.Sprintf("document-%d.%s", i+1, format), Data: doc}
	}

	archive, err := buildZip(entries)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to build archive")
		return
	}
	s.sendFile(w, "application/zip", archive)
}

// handleRenderURL handles POST /pdf/url
func (s *Server) handleRenderURL(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	target := r.FormValue("url")
	if target == "" {
		s.sendError(w, http.StatusBadRequest, "url is required")
		return
	}
	s.sendFile(w, "application/pdf", renderPDF(target, 1))
}

// handleRenderImage handles POST /render/img
func (s *Server) handleRenderImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	if _, _, err := formFile(r, "file_data"); err != nil {
		s.sendError(w, http.StatusBadRequest, "file_data is required")
		return
	}

	var opts docfold.RenderOptions
	if _, err := decodeFormJSON(r, "render_options", &opts); err != nil {
		s.sendError(w, http.StatusBadRequest, "render_options must be a JSON object")
		return
	}

	width, height := optionDimensions(&opts)
	img, err := renderImage("png", width, height)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to render image")
		return
	}

	id := uuid.New().String()
	if err := s.store.PutBlob(blobOutput+id, img); err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	w.Header().Set(ImageIDHeader, id)
	s.sendFile(w, "image/png", img)
}

// optionDimensions extracts output dimensions from render options, accepting
// either the width/height or the w/h field pair.
func optionDimensions(opts *docfold.RenderOptions) (int, int) {
	width, height := 0, 0
	if opts.Width != nil {
		width = int(*opts.Width)
	} else if opts.W != nil {
		width = int(*opts.W)
	}
	if opts.Height != nil {
		height = int(*opts.Height)
	} else if opts.H != nil {
		height = int(*opts.H)
	}
	return width, height
}

// handleBarcode handles POST /render/barcode
func (s *Server) handleBarcode(w http.ResponseWriter, r *http.Request) {
	var req docfold.BarcodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Data == "" {
		s.sendError(w, http.StatusBadRequest, "data is required")
		return
	}

	img, err := renderBarcode(req)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := uuid.New().String()
	if err := s.store.PutBlob(blobOutput+id, img); err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to store image")
		return
	}
	w.Header().Set(ImageIDHeader, id)
	s.sendFile(w, "image/png", img)
}

// handleGetImage handles GET /img/{id}
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := s.store.Blob(blobOutput + id)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load image")
		return
	}
	if data == nil {
		s.sendError(w, http.StatusNotFound, "image not found")
		return
	}

	ct := sniff.Detect(data)
	if ct == "" {
		ct = "application/octet-stream"
	}
	s.sendFile(w, ct, data)
}

// handleSplit handles POST /pdf/split
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	splits, ok := s.parseSplits(w, r)
	if !ok {
		return
	}
	s.sendFile(w, "application/pdf", renderPDF("split", len(splits)))
}

// handleSplitZip handles POST /pdf/split-zip
func (s *Server) handleSplitZip(w http.ResponseWriter, r *http.Request) {
	splits, ok := s.parseSplits(w, r)
	if !ok {
		return
	}

	entries := make([]zipEntry, len(splits))
	for i, rng := range splits {
		entries[i] = zipEntry{
			Name: fmt.Sprintf("split-%d.pdf", i+1),
			Data: renderPDF(fmt.Sprintf("pages %d-%d", rng.From, rng.To), 1),
		}
	}
	archive, err := buildZip(entries)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to build archive")
		return
	}
	s.sendFile(w, "application/zip", archive)
}

// parseSplits validates the shared input shape of the split endpoints.
func (s *Server) parseSplits(w http.ResponseWriter, r *http.Request) ([]docfold.PageRange, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return nil, false
	}
	if _, _, err := formFile(r, "file"); err != nil {
		s.sendError(w, http.StatusBadRequest, "file is required")
		return nil, false
	}

	var splits []docfold.PageRange
	present, err := decodeFormJSON(r, "splits", &splits)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "splits must be a JSON array")
		return nil, false
	}
	if !present || len(splits) == 0 {
		s.sendError(w, http.StatusBadRequest, "at least one page range is required")
		return nil, false
	}
	return splits, true
}

// handleMerge handles POST /pdf/merge
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) < 2 {
		s.sendError(w, http.StatusBadRequest, "at least two files are required")
		return
	}
	s.sendFile(w, "application/pdf", renderPDF("merged", len(files)))
}

// handleMetadata handles POST /pdf/metadata
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	doc, _, err := formFile(r, "file")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file is required")
		return
	}
	var meta docfold.Metadata
	if _, err := decodeFormJSON(r, "metadata", &meta); err != nil {
		s.sendError(w, http.StatusBadRequest, "metadata must be a JSON object")
		return
	}
	s.sendFile(w, "application/pdf", doc)
}

// handleCompress handles POST /pdf/compress
func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	doc, _, err := formFile(r, "file")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file is required")
		return
	}
	var opts docfold.CompressOptions
	if _, err := decodeFormJSON(r, "options", &opts); err != nil {
		s.sendError(w, http.StatusBadRequest, "options must be a JSON object")
		return
	}
	s.sendFile(w, "application/pdf", doc)
}

// handleEncrypt handles POST /pdf/encrypt
func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	doc, _, err := formFile(r, "file")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file is required")
		return
	}
	var opts docfold.EncryptOptions
	if _, err := decodeFormJSON(r, "options", &opts); err != nil {
		s.sendError(w, http.StatusBadRequest, "options must be a JSON object")
		return
	}
	if opts.UserPassword == "" && opts.OwnerPassword == "" {
		s.sendError(w, http.StatusBadRequest, "a user or owner password is required")
		return
	}
	s.sendFile(w, "application/pdf", doc)
}

// handlePDFToImage handles POST /pdf/image/{format}
func (s *Server) handlePDFToImage(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	if _, _, err := formFile(r, "file"); err != nil {
		s.sendError(w, http.StatusBadRequest, "file is required")
		return
	}
	var opts docfold.RenderOptions
	if _, err := decodeFormJSON(r, "options", &opts); err != nil {
		s.sendError(w, http.StatusBadRequest, "options must be a JSON object")
		return
	}

	width, height := optionDimensions(&opts)
	img, err := renderImage(format, width, height)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "unsupported image format")
		return
	}
	s.sendFile(w, imageContentType(format), img)
}

// handleListTemplates handles GET /template
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.Templates()
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}
	s.sendJSON(w, http.StatusOK, templates)
}

// handleCreateTemplate handles POST /template
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	main, mainName, err := formFile(r, "file_data")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file_data is required")
		return
	}

	var tmpl docfold.Template
	present, err := decodeFormJSON(r, "template_data", &tmpl)
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "template_data must be a JSON object")
		return
	}
	if !present {
		s.sendError(w, http.StatusBadRequest, "template_data is required")
		return
	}
	if tmpl.Name == "" {
		s.sendError(w, http.StatusBadRequest, "name is required")
		return
	}
	if tmpl.Format == "" {
		tmpl.Format = "html"
	}

	var header, footer []byte
	var headerName, footerName string
	if data, name, err := formFile(r, "header_data"); err == nil {
		header, headerName = data, name
	} else if !errors.Is(err, http.ErrMissingFile) {
		s.sendError(w, http.StatusBadRequest, "invalid header_data")
		return
	}
	if data, name, err := formFile(r, "footer_data"); err == nil {
		footer, footerName = data, name
	} else if !errors.Is(err, http.ErrMissingFile) {
		s.sendError(w, http.StatusBadRequest, "invalid footer_data")
		return
	}

	if err := s.store.CreateTemplate(&tmpl, main, header, footer, mainName, headerName, footerName); err != nil {
		s.logger.Error("failed to create template", "error", err)
		s.sendError(w, http.StatusInternalServerError, "failed to create template")
		return
	}
	s.sendJSON(w, http.StatusCreated, tmpl)
}

// handleGetTemplate handles GET /template/{id}
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := s.store.Template(chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	if tmpl == nil {
		s.sendError(w, http.StatusNotFound, "template not found")
		return
	}
	s.sendJSON(w, http.StatusOK, tmpl)
}

// handleDeleteTemplate handles DELETE /template/{id}
func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	found, err := s.store.DeleteTemplate(chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}
	if !found {
		s.sendError(w, http.StatusNotFound, "template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetTemplateFile handles GET /template/file/{id}
func (s *Server) handleGetTemplateFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tmpl, err := s.store.Template(id)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load template")
		return
	}
	if tmpl == nil {
		s.sendError(w, http.StatusNotFound, "template not found")
		return
	}

	data, err := s.store.Blob(blobTemplate + id)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load template file")
		return
	}
	s.sendFile(w, sourceContentType(tmpl.Format), data)
}

// handleAddStyle handles POST /template/css/{id}
func (s *Server) handleAddStyle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	content, filename, err := formFile(r, "file_data")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file_data is required")
		return
	}

	var style docfold.StyleFile
	if _, err := decodeFormJSON(r, "template_data", &style); err != nil {
		s.sendError(w, http.StatusBadRequest, "template_data must be a JSON object")
		return
	}
	if style.Filename == "" {
		style.Filename = filename
	}

	if err := s.store.AddStyle(chi.URLParam(r, "id"), &style, content); err != nil {
		if errors.Is(err, errNotFound) {
			s.sendError(w, http.StatusNotFound, "template not found")
			return
		}
		s.logger.Error("failed to add style", "error", err)
		s.sendError(w, http.StatusInternalServerError, "failed to add style")
		return
	}
	s.sendJSON(w, http.StatusCreated, style)
}

// handleDeleteStyle handles DELETE /template/css/{id}
func (s *Server) handleDeleteStyle(w http.ResponseWriter, r *http.Request) {
	found, err := s.store.DeleteStyle(chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to delete style")
		return
	}
	if !found {
		s.sendError(w, http.StatusNotFound, "style not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetStyleFile handles GET /template/css/file/{id}
func (s *Server) handleGetStyleFile(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Blob(blobStyle + chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load style file")
		return
	}
	if data == nil {
		s.sendError(w, http.StatusNotFound, "style not found")
		return
	}
	s.sendFile(w, "text/css", data)
}

// handleAddImage handles POST /template/img/{id}
func (s *Server) handleAddImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	content, filename, err := formFile(r, "file_data")
	if err != nil {
		s.sendError(w, http.StatusBadRequest, "file_data is required")
		return
	}

	var img docfold.ImageFile
	if _, err := decodeFormJSON(r, "template_data", &img); err != nil {
		s.sendError(w, http.StatusBadRequest, "template_data must be a JSON object")
		return
	}
	if img.Filename == "" {
		img.Filename = filename
	}

	if err := s.store.AddImage(chi.URLParam(r, "id"), &img, content); err != nil {
		if errors.Is(err, errNotFound) {
			s.sendError(w, http.StatusNotFound, "template not found")
			return
		}
		s.logger.Error("failed to add image", "error", err)
		s.sendError(w, http.StatusInternalServerError, "failed to add image")
		return
	}
	s.sendJSON(w, http.StatusCreated, img)
}

// handleDeleteImage handles DELETE /template/img/{id}
func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	found, err := s.store.DeleteImage(chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}
	if !found {
		s.sendError(w, http.StatusNotFound, "image not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetImageFile handles GET /template/img/file/{id}
func (s *Server) handleGetImageFile(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Blob(blobImage + chi.URLParam(r, "id"))
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "failed to load image file")
		return
	}
	if data == nil {
		s.sendError(w, http.StatusNotFound, "image not found")
		return
	}

	ct := sniff.Detect(data)
	if ct == "" {
		ct = "application/octet-stream"
	}
	s.sendFile(w, ct, data)
}
