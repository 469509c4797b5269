package docfold

import (
	"errors"
	"fmt"
)

// Sentinel errors for argument validation failures. These are always returned
// before any network or file I/O happens.
var (
	ErrEmptyInput        = errors.New("docfold: input has no content")
	ErrUnsupportedFormat = errors.New("docfold: unsupported format")
	ErrMergeFileCount    = errors.New("docfold: merge requires between 2 and 100 files")
	ErrMissingTemplateID = errors.New("docfold: template id is required")
	ErrMissingData       = errors.New("docfold: barcode data is required")
	ErrMissingURL        = errors.New("docfold: url is required")
	ErrMissingID         = errors.New("docfold: resource id is required")
	ErrNoSplits          = errors.New("docfold: at least one page range is required")
	ErrMissingPassword   = errors.New("docfold: a user or owner password is required")
)

// APIError is returned for every non-2xx response from the Docfold API. It
// carries the HTTP status and the raw response body verbatim so failures can
// be diagnosed against the service documentation.
type APIError struct {
	StatusCode int    // numeric status code, e.g. 404
	Status     string // status line as sent by the server, e.g. "404 Not Found"
	Body       string // raw response body text, unmodified
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("docfold: api error: %s", e.Status)
	}
	return fmt.Sprintf("docfold: api error: %s: %s", e.Status, e.Body)
}

// AsAPIError unwraps err into an *APIError if the error chain contains one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
