package docfold

import (
	"os"
	"path/filepath"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputPath
	inputBytes
	inputText
)

// Input identifies the source of a document payload: a file on disk, an
// in-memory byte buffer, or literal text content. The zero value means "no
// input". Using an explicit tag instead of a bare string removes the
// content-versus-path ambiguity; every operation resolves an Input to bytes
// through the same normalization step.
type Input struct {
	kind inputKind
	path string
	data []byte
	text string
}

// FromFile returns an Input that reads its content from path when the
// operation runs. The file is not touched until then.
func FromFile(path string) Input {
	return Input{kind: inputPath, path: path}
}

// FromBytes returns an Input backed by an in-memory buffer.
func FromBytes(data []byte) Input {
	return Input{kind: inputBytes, data: data}
}

// FromText returns an Input holding literal text content, e.g. an HTML
// document written inline.
func FromText(text string) Input {
	return Input{kind: inputText, text: text}
}

// IsZero reports whether no input was provided.
func (in Input) IsZero() bool {
	return in.kind == inputNone
}

// read resolves the input to its content and a suggested filename. The
// filename is empty unless the input names a file on disk. File read errors
// propagate unchanged from the os package.
func (in Input) read() ([]byte, string, error) {
	switch in.kind {
	case inputPath:
		data, err := os.ReadFile(in.path)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(in.path), nil
	case inputBytes:
		return in.data, "", nil
	case inputText:
		return []byte(in.text), "", nil
	default:
		return nil, "", ErrEmptyInput
	}
}

// partName picks the filename for a multipart file part: the source filename
// when reading from disk, a synthesized "file.<format>" when the format is
// known, and the given fallback otherwise.
func partName(resolved, format, fallback string) string {
	if resolved != "" {
		return resolved
	}
	if format != "" {
		return "file." + format
	}
	return fallback
}
