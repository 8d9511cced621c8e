package capture

import "github.com/pkg/errors"

var (
	// ErrUnsupported means no listed format can be produced on this host.
	ErrUnsupported  = errors.New("recording format not supported")
	ErrBusy         = errors.New("recorder busy")
	ErrNotRecording = errors.New("not recording")
)
