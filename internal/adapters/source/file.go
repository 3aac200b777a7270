package source

import (
	"context"
	_ "embed"
	"os"

	"github.com/okian/peloton/internal/domain/model"
)

//go:embed sample/cyclist-data.json
var sampleData []byte

// File reads the dataset from a local JSON file.
type File struct {
	path string
}

// NewFile creates a source backed by path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Location returns the file path.
func (f *File) Location() string { return f.path }

// Fetch reads and decodes the file.
func (f *File) Fetch(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: f.path, Kind: KindTransport, Err: err}
	}
	body, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &FetchError{URL: f.path, Kind: KindTransport, Err: err}
	}
	return decode(f.path, body)
}

type embedded struct{}

// Sample returns a source over the bundled copy of the 35-record dataset.
func Sample() Source { return embedded{} }

func (embedded) Location() string { return "embedded:cyclist-data.json" }

func (e embedded) Fetch(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{URL: e.Location(), Kind: KindTransport, Err: err}
	}
	return decode(e.Location(), sampleData)
}
