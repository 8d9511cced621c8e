package capture

import (
	"image"
	"strings"

	"github.com/pkg/errors"
)

// Sink consumes a recorded frame stream.
type Sink interface {
	WriteFrame(img *image.RGBA) error
	// Close finalizes the file.
	Close() error
	// Abort releases the sink and removes whatever it wrote.
	Abort()
}

// Format is one entry of the container/codec preference list.
type Format struct {
	MIME string
	Ext  string
	FPS  int

	// Probe reports whether the host can produce this format.
	Probe func() bool
	Open  func(path string, width, height, fps int) (Sink, error)
}

func (f Format) Supported() bool {
	return f.Open != nil && (f.Probe == nil || f.Probe())
}

// DefaultPreference is tried in order; the first supported entry wins.
var DefaultPreference = []string{
	"video/webm;codecs=vp9",
	"video/webm",
	"video/mp4",
	"image/apng",
	"image/gif",
}

// Registry lists every format this build can write.
func Registry() []Format {
	return []Format{
		ffmpegFormat("video/webm;codecs=vp9", "webm", "libvpx-vp9"),
		ffmpegFormat("video/webm", "webm", "libvpx"),
		ffmpegFormat("video/mp4", "mp4", "libx264"),
		{MIME: "image/apng", Ext: "png", FPS: animFPS, Open: openAPNG},
		{MIME: "image/gif", Ext: "gif", FPS: animFPS, Open: openGIF},
	}
}

// ParsePreference splits a comma separated MIME list.
func ParsePreference(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Choose returns the first supported format in prefs.
func Choose(prefs []string) (Format, error) {
	return ChooseFrom(prefs, Registry())
}

func ChooseFrom(prefs []string, formats []Format) (Format, error) {
	for _, mime := range prefs {
		for _, f := range formats {
			if strings.EqualFold(f.MIME, mime) && f.Supported() {
				return f, nil
			}
		}
	}
	return Format{}, errors.Wrapf(ErrUnsupported, "tried %s", strings.Join(prefs, ", "))
}
