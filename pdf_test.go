package docfold

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestSplitPDF(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 fake")))

	_, err := client.SplitPDF(context.Background(), SplitPDFRequest{
		File:   FromBytes([]byte("%PDF-1.4 source")),
		Splits: []PageRange{{From: 1, To: 3}, {From: 5}},
	})
	if err != nil {
		t.Fatalf("SplitPDF() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/split" {
		t.Errorf("path = %v, want /v1/pdf/split", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)

	file := partByName(parts, "file")
	if file == nil {
		t.Fatal("file part missing")
	}
	if file.filename != "file.pdf" {
		t.Errorf("filename = %q, want file.pdf", file.filename)
	}
	if file.contentType != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", file.contentType)
	}

	splits := partByName(parts, "splits")
	if splits == nil {
		t.Fatal("splits part missing")
	}
	// open-ended ranges omit "to" entirely
	if splits.body != `[{"from":1,"to":3},{"from":5}]` {
		t.Errorf("splits = %q, want the serialized ranges", splits.body)
	}
}

func TestSplitPDFZip(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("PK\x03\x04fake")))

	_, err := client.SplitPDFZip(context.Background(), SplitPDFRequest{
		File:   FromBytes([]byte("%PDF-1.4 source")),
		Splits: []PageRange{{From: 1, To: 1}},
	})
	if err != nil {
		t.Fatalf("SplitPDFZip() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/split-zip" {
		t.Errorf("path = %v, want /v1/pdf/split-zip", reqs[0].path)
	}
}

func TestSplitPDFNoRanges(t *testing.T) {
	client, ct := newCountingClient()

	_, err := client.SplitPDF(context.Background(), SplitPDFRequest{File: FromBytes([]byte("x"))})
	if !errors.Is(err, ErrNoSplits) {
		t.Errorf("SplitPDF() error = %v, want ErrNoSplits", err)
	}
	if ct.calls != 0 {
		t.Errorf("%d requests sent, want none", ct.calls)
	}
}

func TestMergePDFs(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 merged")))

	_, err := client.MergePDFs(context.Background(), MergePDFsRequest{
		Files: []Input{
			FromBytes([]byte("doc-a")),
			FromBytes([]byte("doc-b")),
			FromBytes([]byte("doc-c")),
		},
	})
	if err != nil {
		t.Fatalf("MergePDFs() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/merge" {
		t.Errorf("path = %v, want /v1/pdf/merge", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	for i, p := range parts {
		if p.name != "file" {
			t.Errorf("part %d name = %q, want file", i, p.name)
		}
		if p.contentType != "application/pdf" {
			t.Errorf("part %d content type = %q, want application/pdf", i, p.contentType)
		}
	}
	// order must follow the request
	if parts[0].body != "doc-a" || parts[2].body != "doc-c" {
		t.Error("file parts out of order")
	}
}

func TestMergePDFsCount(t *testing.T) {
	client, ct := newCountingClient()
	ctx := context.Background()

	// the count check runs before any file is touched, so a nonexistent
	// path must not surface as a read error
	files := func(n int) []Input {
		out := make([]Input, n)
		for i := range out {
			out[i] = FromFile("/nonexistent/doc.pdf")
		}
		return out
	}

	tests := []struct {
		name  string
		count int
	}{
		{"none", 0},
		{"one", 1},
		{"over limit", 101},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.MergePDFs(ctx, MergePDFsRequest{Files: files(tc.count)})
			if !errors.Is(err, ErrMergeFileCount) {
				t.Errorf("MergePDFs() error = %v, want ErrMergeFileCount", err)
			}
		})
	}

	if ct.calls != 0 {
		t.Errorf("%d requests sent, want none", ct.calls)
	}
}

func TestSetPDFMetadata(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 updated")))

	_, err := client.SetPDFMetadata(context.Background(), SetPDFMetadataRequest{
		File:     FromBytes([]byte("doc")),
		Metadata: Metadata{Title: String("Q3 Report")},
	})
	if err != nil {
		t.Fatalf("SetPDFMetadata() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/metadata" {
		t.Errorf("path = %v, want /v1/pdf/metadata", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	meta := partByName(parts, "metadata")
	if meta == nil {
		t.Fatal("metadata part missing")
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(meta.body), &decoded); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if len(decoded) != 1 || decoded["title"] != "Q3 Report" {
		t.Errorf("metadata = %v, want only the title", decoded)
	}
}

func TestCompressPDF(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 small")))
	ctx := context.Background()

	if _, err := client.CompressPDF(ctx, CompressPDFRequest{File: FromBytes([]byte("doc"))}); err != nil {
		t.Fatalf("CompressPDF() error = %v", err)
	}
	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	if partByName(parts, "options") != nil {
		t.Error("options sent without compress options")
	}

	_, err := client.CompressPDF(ctx, CompressPDFRequest{
		File:    FromBytes([]byte("doc")),
		Options: &CompressOptions{Quality: Int(60)},
	})
	if err != nil {
		t.Fatalf("CompressPDF() error = %v", err)
	}
	parts = parseFormParts(t, reqs[1].contentType, reqs[1].body)
	opts := partByName(parts, "options")
	if opts == nil {
		t.Fatal("options part missing")
	}
	if opts.body != `{"quality":60}` {
		t.Errorf("options = %q, want the quality setting", opts.body)
	}
	if reqs[1].path != "/v1/pdf/compress" {
		t.Errorf("path = %v, want /v1/pdf/compress", reqs[1].path)
	}
}

func TestEncryptPDF(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("%PDF-1.4 locked")))

	_, err := client.EncryptPDF(context.Background(), EncryptPDFRequest{
		File:    FromBytes([]byte("doc")),
		Options: EncryptOptions{OwnerPassword: "s3cret", AllowPrint: Bool(true)},
	})
	if err != nil {
		t.Fatalf("EncryptPDF() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/encrypt" {
		t.Errorf("path = %v, want /v1/pdf/encrypt", reqs[0].path)
	}

	parts := parseFormParts(t, reqs[0].contentType, reqs[0].body)
	var decoded map[string]any
	if err := json.Unmarshal([]byte(partByName(parts, "options").body), &decoded); err != nil {
		t.Fatalf("options is not JSON: %v", err)
	}
	if decoded["owner_password"] != "s3cret" {
		t.Errorf("owner_password = %v, want s3cret", decoded["owner_password"])
	}
	if _, ok := decoded["user_password"]; ok {
		t.Error("empty user_password serialized")
	}
}

func TestEncryptPDFNoPassword(t *testing.T) {
	client, ct := newCountingClient()

	_, err := client.EncryptPDF(context.Background(), EncryptPDFRequest{File: FromBytes([]byte("doc"))})
	if !errors.Is(err, ErrMissingPassword) {
		t.Errorf("EncryptPDF() error = %v, want ErrMissingPassword", err)
	}
	if ct.calls != 0 {
		t.Errorf("%d requests sent, want none", ct.calls)
	}
}

func TestPDFToImage(t *testing.T) {
	var reqs []recordedRequest
	client := newTestClient(t, recordRequests(&reqs, []byte("img")))

	_, err := client.PDFToImage(context.Background(), PDFToImageRequest{
		File:   FromBytes([]byte("doc")),
		Format: "PNG",
	})
	if err != nil {
		t.Fatalf("PDFToImage() error = %v", err)
	}
	if reqs[0].path != "/v1/pdf/image/png" {
		t.Errorf("path = %v, want the lowercased format", reqs[0].path)
	}
}

func TestPDFToImageFormats(t *testing.T) {
	client, ct := newCountingClient()
	ctx := context.Background()

	for _, format := range []string{"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff"} {
		_, err := client.PDFToImage(ctx, PDFToImageRequest{File: FromBytes([]byte("doc")), Format: format})
		if err != nil {
			t.Errorf("PDFToImage(%s) error = %v", format, err)
		}
	}
	if ct.calls != 7 {
		t.Errorf("%d requests sent, want 7", ct.calls)
	}

	for _, format := range []string{"", "webp", "svg", "pdf"} {
		_, err := client.PDFToImage(ctx, PDFToImageRequest{File: FromBytes([]byte("doc")), Format: format})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("PDFToImage(%q) error = %v, want ErrUnsupportedFormat", format, err)
		}
	}
	if ct.calls != 7 {
		t.Errorf("%d requests sent, want no additional ones", ct.calls)
	}
}
