package docfold

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 fake")))

	doc, err := client.Render(context.Background(), RenderRequest{
		TemplateID: "tpl-1",
		Data:       RenderData{"customer": "ACME", "total": 12.5},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(doc) != "%PDF-1.4 fake" {
		t.Errorf("Render() = %q, want the response body", doc)
	}

	req := reqs[0]
	if req.method != http.MethodPost {
		t.Errorf("method = %v, want POST", req.method)
	}
	if req.path != "/v1/render/pdf/tpl-1" {
		t.Errorf("path = %v, want /v1/render/pdf/tpl-1", req.path)
	}

	parts := parseFormParts(t, req.contentType, req.body)
	data := partByName(parts, "render_data")
	if data == nil {
		t.Fatal("render_data part missing")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(data.body), &decoded); err != nil {
		t.Fatalf("render_data is not JSON: %v", err)
	}
	if decoded["customer"] != "ACME" || decoded["total"] != 12.5 {
		t.Errorf("render_data = %v, want the request data", decoded)
	}
	if partByName(parts, "render_options") != nil {
		t.Error("render_options sent without options")
	}
}

func TestRenderNilData(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("doc")))

	if _, err := client.Render(context.Background(), RenderRequest{TemplateID: "tpl-1"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	data := partByName(parts, "render_data")
	if data == nil {
		t.Fatal("render_data part missing")
	}
	// absent data must serialize as an empty object, never null
	if data.body != "{}" {
		t.Errorf("render_data = %q, want {}", data.body)
	}
}

func TestRenderFormatCase(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("doc")))

	if _, err := client.Render(context.Background(), RenderRequest{TemplateID: "tpl-1", Format: "HTML"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if reqs[0].path != "/v1/render/html/tpl-1" {
		t.Errorf("path = %v, want the lowercased format", reqs[0].path)
	}
}

func TestRenderBatch(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("PK\x03\x04fake")))

	_, err := client.RenderBatch(context.Background(), RenderBatchRequest{
		TemplateID: "tpl-1",
		Data:       []RenderData{{"n": 1}, {"n": 2}},
	})
	if err != nil {
		t.Fatalf("RenderBatch() error = %v", err)
	}
	if reqs[0].path != "/v1/render/pdf/batch/tpl-1" {
		t.Errorf("path = %v, want /v1/render/pdf/batch/tpl-1", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(partByName(parts, "render_data").body), &decoded); err != nil {
		t.Fatalf("render_data is not a JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("render_data has %d entries, want 2", len(decoded))
	}
}

func TestRenderBatchNilData(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("zip")))

	if _, err := client.RenderBatch(context.Background(), RenderBatchRequest{TemplateID: "tpl-1"}); err != nil {
		t.Fatalf("RenderBatch() error = %v", err)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	if body := partByName(parts, "render_data").body; body != "[]" {
		t.Errorf("render_data = %q, want []", body)
	}
}

func TestRenderContentParts(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 fake")))

	_, err := client.RenderContent(context.Background(), RenderContentRequest{
		Content: FromText("<h1>{{customer}}</h1>"),
		Data:    RenderData{"customer": "ACME"},
	})
	if err != nil {
		t.Fatalf("RenderContent() error = %v", err)
	}
	if reqs[0].path != "/v1/render/pdf" {
		t.Errorf("path = %v, want /v1/render/pdf", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)

	content := partByName(parts, "file_data")
	if content == nil {
		t.Fatal("file_data part missing")
	}
	if parts[0].name != "file_data" {
		t.Errorf("first part = %q, want file_data", parts[0].name)
	}
	if content.filename != "file.html" {
		t.Errorf("file_data filename = %q, want file.html", content.filename)
	}
	if content.contentType != "text/html" {
		t.Errorf("file_data content type = %q, want text/html", content.contentType)
	}
	if content.body != "<h1>{{customer}}</h1>" {
		t.Errorf("file_data body = %q, want the literal content", content.body)
	}

	tmplPart := partByName(parts, "template_data")
	if tmplPart == nil {
		t.Fatal("template_data part missing")
	}
	var tmpl map[string]any
	if err := json.Unmarshal([]byte(tmplPart.body), &tmpl); err != nil {
		t.Fatalf("template_data is not JSON: %v", err)
	}
	if tmpl["format"] != "html" {
		t.Errorf("template format = %v, want html", tmpl["format"])
	}
	if tmpl["title_header_enabled"] != false {
		t.Errorf("title_header_enabled = %v, want false", tmpl["title_header_enabled"])
	}
	if _, ok := tmpl["id"]; ok {
		t.Error("template_data must not carry an id")
	}
}

func TestRenderContentHeaderFooter(t *testing.T) {
	dir := t.TempDir()
	footPath := filepath.Join(dir, "foot.html")
	if err := os.WriteFile(footPath, []byte("<footer/>"), 0o644); err != nil {
		t.Fatalf("failed to write footer file: %v", err)
	}

	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("doc")))

	_, err := client.RenderContent(context.Background(), RenderContentRequest{
		Content: FromText("<p>body</p>"),
		Header:  FromText("<header/>"),
		Footer:  FromFile(footPath),
	})
	if err != nil {
		t.Fatalf("RenderContent() error = %v", err)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)

	header := partByName(parts, "header_data")
	if header == nil {
		t.Fatal("header_data part missing")
	}
	if header.filename != "header.html" {
		t.Errorf("header filename = %q, want header.html", header.filename)
	}
	if header.body != "<header/>" {
		t.Errorf("header body = %q, want the literal content", header.body)
	}

	footer := partByName(parts, "footer_data")
	if footer == nil {
		t.Fatal("footer_data part missing")
	}
	if footer.filename != "foot.html" {
		t.Errorf("footer filename = %q, want the source filename", footer.filename)
	}
}

func TestRenderContentTemplateOverride(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("doc")))

	now := time.Now()
	_, err := client.RenderContent(context.Background(), RenderContentRequest{
		Content: FromText("<p/>"),
		Template: &Template{
			ID:          "stale-id",
			Name:        "quote",
			Timestamp:   &now,
			PaperFormat: String("A5"),
		},
	})
	if err != nil {
		t.Fatalf("RenderContent() error = %v", err)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	var tmpl map[string]any
	if err := json.Unmarshal([]byte(partByName(parts, "template_data").body), &tmpl); err != nil {
		t.Fatalf("template_data is not JSON: %v", err)
	}
	if tmpl["name"] != "quote" {
		t.Errorf("name = %v, want quote", tmpl["name"])
	}
	if tmpl["format"] != "html" {
		t.Errorf("format = %v, want the html default", tmpl["format"])
	}
	if tmpl["paper_format"] != "A5" {
		t.Errorf("paper_format = %v, want A5", tmpl["paper_format"])
	}
	if _, ok := tmpl["id"]; ok {
		t.Error("server-assigned id sent as input")
	}
	if _, ok := tmpl["timestamp"]; ok {
		t.Error("server-assigned timestamp sent as input")
	}
}

func TestRenderContentBatch(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("zip")))

	_, err := client.RenderContentBatch(context.Background(), RenderContentBatchRequest{
		Content: FromText("<p/>"),
		Format:  "html",
		Data:    []RenderData{{"n": 1}},
	})
	if err != nil {
		t.Fatalf("RenderContentBatch() error = %v", err)
	}
	if reqs[0].path != "/v1/render/html/batch" {
		t.Errorf("path = %v, want /v1/render/html/batch", reqs[0].path)
	}
}

func TestRenderURL(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 fake")))

	_, err := client.RenderURL(context.Background(), RenderURLRequest{
		URL:     "https://example.com/report",
		Options: &RenderOptions{Landscape: Bool(true)},
	})
	if err != nil {
		t.Fatalf("RenderURL() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/url" {
		t.Errorf("path = %v, want /v1/pdf/url", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	if got := partByName(parts, "url"); got == nil || got.body != "https://example.com/report" {
		t.Errorf("url part = %+v, want the target address", got)
	}
	if partByName(parts, "render_options") == nil {
		t.Error("render_options part missing")
	}
}

func TestRenderImage(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("img")))

	pngData := []byte("\x89PNG\r\n\x1a\npixels")
	_, err := client.RenderImage(context.Background(), RenderImageRequest{
		Image:   FromBytes(pngData),
		Options: &RenderOptions{Width: Float64(200)},
	})
	if err != nil {
		t.Fatalf("RenderImage() error = %v", err)
	}
	if reqs[0].path != "/v1/render/img" {
		t.Errorf("path = %v, want /v1/render/img", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	img := partByName(parts, "file_data")
	if img == nil {
		t.Fatal("file_data part missing")
	}
	if img.filename != "image" {
		t.Errorf("filename = %q, want the image fallback", img.filename)
	}
	if img.contentType != "image/png" {
		t.Errorf("content type = %q, want image/png from sniffing", img.contentType)
	}
}

func TestGetImage(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("pixels")))

	data, err := client.GetImage(context.Background(), "out-1")
	if err != nil {
		t.Fatalf("GetImage() error = %v", err)
	}
	if !bytes.Equal(data, []byte("pixels")) {
		t.Errorf("GetImage() = %q, want the response body", data)
	}
	if reqs[0].method != http.MethodGet {
		t.Errorf("method = %v, want GET", reqs[0].method)
	}
	if reqs[0].path != "/v1/img/out-1" {
		t.Errorf("path = %v, want /v1/img/out-1", reqs[0].path)
	}
}

func TestRenderValidation(t *testing.T) {
	client, ct := newCountingClient()
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{"render no template id", func() error {
			_, err := client.Render(ctx, RenderRequest{})
			return err
		}, ErrMissingTemplateID},
		{"render bad format", func() error {
			_, err := client.Render(ctx, RenderRequest{TemplateID: "x", Format: "docx"})
			return err
		}, ErrUnsupportedFormat},
		{"batch no template id", func() error {
			_, err := client.RenderBatch(ctx, RenderBatchRequest{})
			return err
		}, ErrMissingTemplateID},
		{"content no input", func() error {
			_, err := client.RenderContent(ctx, RenderContentRequest{})
			return err
		}, ErrEmptyInput},
		{"url missing", func() error {
			_, err := client.RenderURL(ctx, RenderURLRequest{})
			return err
		}, ErrMissingURL},
		{"image id missing", func() error {
			_, err := client.GetImage(ctx, "")
			return err
		}, ErrMissingID},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}

	if ct.calls != 0 {
		t.Errorf("%d requests sent, want none before validation passes", ct.calls)
	}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{"empty defaults to pdf", "", "pdf", false},
		{"pdf", "pdf", "pdf", false},
		{"html", "html", "html", false},
		{"uppercase", "PDF", "pdf", false},
		{"docx", "docx", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeFormat(tc.format)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("error = %v, want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeFormat(%q) error = %v", tc.format, err)
			}
			if got != tc.want {
				t.Errorf("normalizeFormat(%q) = %q, want %q", tc.format, got, tc.want)
			}
		})
	}
}

func TestFormatContentType(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"html", "text/html"},
		{"HTML", "text/html"},
		{"css", "text/css"},
		{"pdf", "application/pdf"},
		{"odt", ""},
	}

	for _, tc := range tests {
		if got := formatContentType(tc.format); got != tc.want {
			t.Errorf("formatContentType(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestLoadRenderData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`{"customer":"ACME","count":3}`), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	data, err := LoadRenderData(path)
	if err != nil {
		t.Fatalf("LoadRenderData() error = %v", err)
	}
	if data["customer"] != "ACME" {
		t.Errorf("customer = %v, want ACME", data["customer"])
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	if _, err := LoadRenderData(bad); err == nil {
		t.Error("LoadRenderData() error = nil for malformed JSON")
	}

	if _, err := LoadRenderData(filepath.Join(dir, "absent.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadRenderData() error = %v, want ErrNotExist", err)
	}
}

func TestLoadBatchRenderData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.json")
	if err := os.WriteFile(path, []byte(`[{"n":1},{"n":2}]`), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	data, err := LoadBatchRenderData(path)
	if err != nil {
		t.Fatalf("LoadBatchRenderData() error = %v", err)
	}
	if len(data) != 2 {
		t.Errorf("len = %d, want 2", len(data))
	}

	obj := filepath.Join(dir, "object.json")
	if err := os.WriteFile(obj, []byte(`{"n":1}`), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	if _, err := LoadBatchRenderData(obj); err == nil {
		t.Error("LoadBatchRenderData() error = nil for a non-array document")
	}
}
