package capture

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/iburimskiy/loopvis/internal/config"
)

// ffmpegEncoders is the encoder listing of the ffmpeg on PATH, empty when
// there is none.
var ffmpegEncoders = sync.OnceValue(func() string {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return ""
	}
	out, err := exec.Command(path, "-hide_banner", "-encoders").Output()
	if err != nil {
		return ""
	}
	return string(out)
})

func ffmpegFormat(mime, ext, codec string) Format {
	return Format{
		MIME: mime,
		Ext:  ext,
		FPS:  config.StreamFPS,
		Probe: func() bool {
			return strings.Contains(ffmpegEncoders(), " "+codec+" ")
		},
		Open: func(path string, width, height, fps int) (Sink, error) {
			return openFFmpeg(codec, path, width, height, fps)
		},
	}
}

// ffmpegSink pipes raw RGBA frames to an ffmpeg process.
type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	path   string
	rect   image.Rectangle
}

func ffmpegArgs(codec, path string, width, height, fps int) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprint(fps),
		"-i", "pipe:0",
		// yuv420p needs even dimensions
		"-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2",
		"-c:v", codec,
		"-b:v", fmt.Sprint(config.VideoBitsPerSecond),
		"-pix_fmt", "yuv420p",
		path,
	}
}

func openFFmpeg(codec, path string, width, height, fps int) (Sink, error) {
	s := &ffmpegSink{
		path: path,
		rect: image.Rect(0, 0, width, height),
	}
	s.cmd = exec.Command("ffmpeg", ffmpegArgs(codec, path, width, height, fps)...)
	s.cmd.Stderr = &s.stderr
	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, errors.Wrap(err, "ffmpeg stdin")
	}
	if err := s.cmd.Start(); err != nil {
		stdin.Close()
		return nil, errors.Wrap(err, "start ffmpeg")
	}
	s.stdin = stdin
	return s, nil
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if img.Rect.Size() != s.rect.Size() {
		return errors.Errorf("frame size %v, recording %v", img.Rect.Size(), s.rect.Size())
	}
	w := 4 * s.rect.Dx()
	if img.Stride == w {
		_, err := s.stdin.Write(img.Pix[:w*s.rect.Dy()])
		return errors.Wrap(err, "pipe frame")
	}
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		i := img.PixOffset(img.Rect.Min.X, y)
		if _, err := s.stdin.Write(img.Pix[i : i+w]); err != nil {
			return errors.Wrap(err, "pipe frame")
		}
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return errors.Wrapf(err, "ffmpeg: %s", strings.TrimSpace(s.stderr.String()))
	}
	return nil
}

func (s *ffmpegSink) Abort() {
	s.stdin.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	os.Remove(s.path)
}
