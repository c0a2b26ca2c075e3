package vapor

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Load opens a file and decodes it with the reader.
//
// Failing to open the file yields an error wrapping ErrInputUnavailable.
func Load[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, errors.Wrapf(ErrInputUnavailable, "load %s: %s", path, err)
	}
	defer f.Close()
	res, err := read(bufio.NewReader(f))
	if err != nil {
		return zero, errors.Wrapf(err, "load %s", path)
	}
	return res, nil
}

// Save creates a file and encodes value into it with the writer.
func Save[T any](path string, value T, write func(io.Writer, T) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	if err := write(f, value); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(f.Close(), "save %s", path)
}

// ReadMesh decodes an STL file, either binary or ASCII.
//
// Unreadable data yields an error wrapping ErrInputUnavailable.
func ReadMesh(r io.Reader) ([]*model3d.Triangle, error) {
	tris, err := model3d.ReadSTL(r)
	if err != nil {
		return nil, errors.Wrapf(ErrInputUnavailable, "read mesh: %s", err)
	}
	return tris, nil
}
