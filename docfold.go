// Package docfold is a client for the Docfold document-generation API.
//
// The service renders HTML templates to PDF or HTML, generates barcodes and
// images, and post-processes PDF documents (split, merge, compress, encrypt,
// metadata). This package covers the full surface: template, stylesheet and
// image management, stored-template and ad-hoc rendering, batch rendering,
// and the PDF toolbox.
//
// A Client is constructed once with an API key and is safe for concurrent
// use:
//
//	client := docfold.NewClient(apiKey)
//	pdf, err := client.Render(ctx, docfold.RenderRequest{
//		TemplateID: "a1f0…",
//		Data:       docfold.RenderData{"name": "Ada"},
//	})
//
// Operations return the produced document as raw bytes, or decoded metadata
// types for the management endpoints. Server-side failures are reported as
// *APIError; invalid arguments are rejected before any request is made.
package docfold

// Version is the version of this module, sent in the User-Agent header.
const Version = "1.2.0"
