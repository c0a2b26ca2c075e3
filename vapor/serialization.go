package vapor

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// PointRecordSize is the number of bytes used to encode one Point.
const PointRecordSize = 16

// WritePoints serializes points in a 32-bit precision binary format.
//
// Each point is encoded as four little endian floats: x, y, z, and
// noiseness. There is no header, so the number of points is implied by the
// length of the data.
func WritePoints(w io.Writer, points []Point) error {
	bw := bufio.NewWriter(w)
	var record [PointRecordSize]byte
	for _, p := range points {
		encodePoint(record[:], p)
		if _, err := bw.Write(record[:]); err != nil {
			return errors.Wrap(err, "write points")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write points")
	}
	return nil
}

// ReadPoints reads the output written by WritePoints.
func ReadPoints(r io.Reader) ([]Point, error) {
	br := bufio.NewReader(r)
	var res []Point
	var record [PointRecordSize]byte
	for {
		if _, err := io.ReadFull(br, record[:]); err == io.EOF {
			return res, nil
		} else if err != nil {
			return nil, errors.Wrapf(err, "read points: record %d", len(res))
		}
		res = append(res, decodePoint(record[:]))
	}
}

func encodePoint(buf []byte, p Point) {
	values := [4]float64{p.Coord.X, p.Coord.Y, p.Coord.Z, p.Noiseness}
	for i, x := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(x)))
	}
}

func decodePoint(buf []byte) Point {
	var values [4]float64
	for i := range values {
		values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}
	return Point{
		Coord:     model3d.XYZ(values[0], values[1], values[2]),
		Noiseness: values[3],
	}
}
