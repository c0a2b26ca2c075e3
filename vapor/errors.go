package vapor

import "github.com/pkg/errors"

var (
	// ErrInputUnavailable is returned when a mesh source cannot be opened or
	// read.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrDegenerateMesh is returned for meshes without any surface area.
	ErrDegenerateMesh = errors.New("degenerate mesh")

	// ErrInvalidConfiguration is returned for target counts or densities that
	// the pipeline cannot honor.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// invalidConfig wraps ErrInvalidConfiguration with a formatted reason.
func invalidConfig(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
